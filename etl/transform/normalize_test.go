package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LÍNEA TELEFÓNICA", "linea telefonica"},
		{"Correspondencia FÍSICA", "correspondencia fisica"},
		{"correo electrónico", "correo electronico"},
		{"ñÑ", "nn"},
		{"sin acentos", "sin acentos"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "Fold(%q)", tt.in)
	}
}

func TestContainsAny(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		phrases []string
		want    bool
	}{
		{"exact phrase", "mensaje de texto", PhrasesTexto, true},
		{"uppercase accented", "Prefiere LÍNEA TELEFÓNICA al 300", PhrasesTelefono, true},
		{"accent-free input matches accented phrase", "correspondencia fisica", PhrasesFisica, true},
		{"misspelled whastapp in source data", "contactar por Whastapp", PhrasesWhatsapp, true},
		{"correct whatsapp spelling", "WhatsApp unicamente", PhrasesWhatsapp, true},
		{"phrase inside longer text", "enviar correo electrónico y whatsapp", PhrasesEmail, true},
		{"no match", "visitar oficina", PhrasesTelefono, false},
		{"empty text", "", PhrasesTexto, false},
		{"partial word does not match", "telefonica", PhrasesTelefono, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsAny(tt.text, tt.phrases))
		})
	}
}
