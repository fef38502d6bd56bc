package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
)

func TestFirstPhone(t *testing.T) {
	assert.Equal(t, "3001234567", FirstPhone([3]string{"3001234567", "6012345", ""}))
	assert.Equal(t, "6012345", FirstPhone([3]string{"   ", "6012345", "3009999999"}))
	assert.Equal(t, "3009999999", FirstPhone([3]string{"", "", " 3009999999 "}))
	assert.Equal(t, "", FirstPhone([3]string{"", "  ", ""}))
}

func TestResolveBestChannel(t *testing.T) {
	allPhones := [3]string{"3001234567", "6012345", ""}

	tests := []struct {
		name    string
		flags   Flags
		phones  [3]string
		email   string
		canal   string
		contact string
	}{
		{
			name:    "texto wins over every other flag",
			flags:   Flags{Texto: true, Email: true, Telefono: true, Whatsapp: true, Fisica: true},
			phones:  allPhones,
			canal:   registro.CanalTexto,
			contact: "3001234567",
		},
		{
			name:    "email beats telefono",
			flags:   Flags{Email: true, Telefono: true},
			phones:  allPhones,
			email:   "cliente@example.com",
			canal:   registro.CanalEmail,
			contact: "cliente@example.com",
		},
		{
			name:    "telefono beats whatsapp",
			flags:   Flags{Telefono: true, Whatsapp: true},
			phones:  allPhones,
			canal:   registro.CanalTelefono,
			contact: "3001234567",
		},
		{
			name:    "whatsapp beats fisica",
			flags:   Flags{Whatsapp: true, Fisica: true},
			phones:  allPhones,
			canal:   registro.CanalWhatsapp,
			contact: "3001234567",
		},
		{
			name:  "fisica carries no contact value",
			flags: Flags{Fisica: true},
			phones: [3]string{
				"3001234567", "", "",
			},
			canal:   registro.CanalFisica,
			contact: "",
		},
		{
			name:    "no flags defaults to texto with first phone",
			flags:   Flags{},
			phones:  allPhones,
			canal:   registro.CanalTexto,
			contact: "3001234567",
		},
		{
			name:    "texto without phones falls back to email",
			flags:   Flags{Texto: true},
			phones:  [3]string{"", "", ""},
			email:   "cliente@example.com",
			canal:   registro.CanalEmail,
			contact: "cliente@example.com",
		},
		{
			name:    "texto without phones or email stays texto empty",
			flags:   Flags{Texto: true},
			phones:  [3]string{"", "", ""},
			canal:   registro.CanalTexto,
			contact: "",
		},
		{
			name:    "email without address falls back to active phone channel",
			flags:   Flags{Email: true, Whatsapp: true},
			phones:  allPhones,
			canal:   registro.CanalWhatsapp,
			contact: "3001234567",
		},
		{
			name:    "email without address prefers telefono over whatsapp",
			flags:   Flags{Email: true, Telefono: true, Whatsapp: true},
			phones:  allPhones,
			canal:   registro.CanalTelefono,
			contact: "3001234567",
		},
		{
			name:    "email without address and no phone flags stays email empty",
			flags:   Flags{Email: true},
			phones:  allPhones,
			canal:   registro.CanalEmail,
			contact: "",
		},
		{
			name:    "second phone used when first is blank",
			flags:   Flags{Whatsapp: true},
			phones:  [3]string{"   ", "6012345", ""},
			canal:   registro.CanalWhatsapp,
			contact: "6012345",
		},
		{
			name:    "email value trimmed",
			flags:   Flags{Email: true},
			email:   "  cliente@example.com  ",
			canal:   registro.CanalEmail,
			contact: "cliente@example.com",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canal, contact := ResolveBestChannel(tt.flags, tt.phones, tt.email)
			assert.Equal(t, tt.canal, canal)
			assert.Equal(t, tt.contact, contact)
		})
	}
}
