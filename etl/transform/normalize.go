// Package transform applies the business rules that turn a 22-column raw
// row into a finished registro.Registro: sub-field decomposition, channel
// preference detection and best-channel resolution.
package transform

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Preference phrases as they appear in the source column. The "whastapp"
// misspelling ships in real files and must keep matching.
var (
	PhrasesTelefono = []string{"linea telefonica", "línea telefónica"}
	PhrasesWhatsapp = []string{"whastapp", "whatsapp"}
	PhrasesTexto    = []string{"mensaje de texto"}
	PhrasesEmail    = []string{"correo electronico", "correo electrónico"}
	PhrasesFisica   = []string{"correspondencia fisica", "correspondencia física"}
)

// foldTransformer lowercases after decomposing and dropping combining
// marks, so "FÍSICA" and "fisica" normalize identically.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns text lowercased and stripped of diacritics.
func Fold(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		// The remove transformer never fails on valid UTF-8; keep the
		// original text on malformed input rather than dropping data.
		folded = text
	}
	return strings.ToLower(folded)
}

// ContainsAny reports whether any phrase occurs in text, ignoring case and
// accents. Empty text matches nothing.
func ContainsAny(text string, phrases []string) bool {
	if text == "" {
		return false
	}
	t := Fold(text)
	for _, p := range phrases {
		if strings.Contains(t, Fold(p)) {
			return true
		}
	}
	return false
}
