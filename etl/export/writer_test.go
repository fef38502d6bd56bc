package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
)

func sampleRecords() []*registro.Registro {
	return []*registro.Registro{
		{
			TipoDocumento: "CC",
			Documento:     "1032456789",
			Nombre:        "JOSÉ ÑÁÑEZ",
			Texto:         true,
			MejorCanal:    registro.CanalTexto,
			ContactarAl:   "3001234567",
		},
		{
			TipoDocumento: "CE",
			Documento:     "998877",
			Nombre:        `COMILLAS "SA"`,
			Fisica:        true,
			MejorCanal:    registro.CanalFisica,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, registro.Columns, rows[0])
	assert.Equal(t, "CC", rows[1][0])
	assert.Equal(t, "JOSÉ ÑÁÑEZ", rows[1][2])
	assert.Equal(t, `COMILLAS "SA"`, rows[2][2])

	// Flags serialize as "1"/"" at the texto/fisica positions.
	m := map[string]string{}
	for i, col := range registro.Columns {
		m[col] = rows[1][i]
	}
	assert.Equal(t, "1", m["texto"])
	assert.Equal(t, "", m["fisica"])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, registro.Columns, rows[0])
}

func TestWriteJSONIsValidAndOrdered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()))

	var parsed []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 2)
	assert.Equal(t, "CC", parsed[0]["tipo_documento"])
	assert.Equal(t, "1", parsed[0]["texto"])
	assert.Equal(t, "fisica", parsed[1]["mejor_canal"])

	// Keys appear in schema order, not alphabetical.
	text := buf.String()
	first := text[:strings.Index(text, ",\n")+1]
	prev := -1
	for _, col := range registro.Columns {
		idx := strings.Index(first, `"`+col+`": `)
		require.GreaterOrEqual(t, idx, 0, "missing key %q", col)
		assert.Greater(t, idx, prev, "key %q out of order", col)
		prev = idx
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))

	var parsed []any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Empty(t, parsed)
}
