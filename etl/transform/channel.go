package transform

import (
	"strings"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
)

// Flags holds the five channel opt-ins derived from the preferences
// column.
type Flags struct {
	Texto    bool
	Email    bool
	Telefono bool
	Whatsapp bool
	Fisica   bool
}

func (f Flags) active(canal string) bool {
	switch canal {
	case registro.CanalTexto:
		return f.Texto
	case registro.CanalEmail:
		return f.Email
	case registro.CanalTelefono:
		return f.Telefono
	case registro.CanalWhatsapp:
		return f.Whatsapp
	case registro.CanalFisica:
		return f.Fisica
	}
	return false
}

// FirstPhone returns the first non-blank phone in order, trimmed.
func FirstPhone(phones [3]string) string {
	for _, p := range phones {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return ""
}

// ResolveBestChannel picks one contact channel and value.
//
// Priority is texto > email > telefono > whatsapp > fisica; with no flag
// active the candidate defaults to texto. Phone channels take the first
// non-empty phone and fall back to the email address (reassigning the
// channel) when none exists. An email candidate without an address falls
// back to the first active phone channel that has a number. Fisica never
// carries a contact value. The function is total: worst case it returns
// the candidate with an empty value.
func ResolveBestChannel(flags Flags, phones [3]string, email string) (canal, contactarAl string) {
	candidate := registro.CanalTexto
	for _, c := range registro.ChannelPriority {
		if flags.active(c) {
			candidate = c
			break
		}
	}

	phone := FirstPhone(phones)
	email = strings.TrimSpace(email)

	switch candidate {
	case registro.CanalTexto, registro.CanalTelefono, registro.CanalWhatsapp:
		if phone != "" {
			return candidate, phone
		}
		if email != "" {
			return registro.CanalEmail, email
		}
		return candidate, ""

	case registro.CanalEmail:
		if email != "" {
			return registro.CanalEmail, email
		}
		if phone != "" {
			for _, c := range []string{registro.CanalTexto, registro.CanalTelefono, registro.CanalWhatsapp} {
				if flags.active(c) {
					return c, phone
				}
			}
		}
		return registro.CanalEmail, ""

	default: // fisica
		return registro.CanalFisica, ""
	}
}
