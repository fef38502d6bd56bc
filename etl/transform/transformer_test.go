package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiTzGuzz/LLMSDATA/etl/fixedwidth"
	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
)

func TestNewTransformerValidatesDate(t *testing.T) {
	_, err := NewTransformer("20250115", "CLIENTES_20250115.txt")
	assert.NoError(t, err)

	for _, bad := range []string{"", "2025011", "202501155", "2025-01-1", "abcdefgh"} {
		_, err := NewTransformer(bad, "x.txt")
		assert.Error(t, err, "fecha %q", bad)
		assert.True(t, errx.IsCode(err, fixedwidth.CodeBadDate))
	}
}

func TestBuildRejectsWrongColumnCount(t *testing.T) {
	tr, err := NewTransformer("20250115", "x.txt")
	require.NoError(t, err)

	_, err = tr.Build(make([]string, 21))
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, registro.CodeBadColumnCount))

	_, err = tr.Build(make([]string, 23))
	assert.Error(t, err)
}

// rowLine renders a full 1615-character line from per-column cell values,
// left-padding each cell with spaces to its column width.
func rowLine(t *testing.T, cells map[int]string) string {
	t.Helper()
	widths := fixedwidth.DefaultLayout().Widths()
	var b strings.Builder
	for i, w := range widths {
		cell := cells[i]
		require.LessOrEqual(t, len([]rune(cell)), w, "cell %d too wide", i)
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", w-len([]rune(cell))))
	}
	return b.String()
}

func TestBuildFromFullLine(t *testing.T) {
	line := rowLine(t, map[int]string{
		0:  "0000000001",
		1:  "CC",
		2:  "1032456789",
		3:  "JOSÉ ÑÁÑEZ PÉREZ",
		4:  "VIDA1POL-998877",
		5:  "M125000000.00",
		6:  "58900.50",
		7:  "DC-556677",
		8:  "2025-01-01 00:00:00",
		9:  "30",
		10: "3001234567",
		11: "6015557788",
		13: "BOGOTA",
		14: "CUNDINAMARCA",
		15: "2024-06-15" + "1988-11-02" + "VEN" + "MARIA LOPEZ;PEDRO LOPEZ",
		16: "F" + "SUCURSAL CHAPINERO",
		17: "4321",
		18: "BANCOLOMBIA",
		19: "BANCOLOMBIA SA",
		20: "ACTIVO",
		21: "Cliente prefiere Línea telefónica, whastapp",
	})

	cols, err := fixedwidth.NewSplitter(fixedwidth.DefaultLayout()).Split(line)
	require.NoError(t, err)

	tr, err := NewTransformer("20250115", "CLIENTES_20250115.txt")
	require.NoError(t, err)

	rec, err := tr.Build(cols)
	require.NoError(t, err)

	assert.Equal(t, "CC", rec.TipoDocumento)
	assert.Equal(t, "1032456789", rec.Documento)
	assert.Equal(t, "JOSÉ ÑÁÑEZ PÉREZ", rec.Nombre)

	// Packed column decomposition.
	assert.Equal(t, "VIDA1", rec.Producto)
	assert.Equal(t, "POL-998877", rec.Poliza)
	assert.Equal(t, "M", rec.Periodo)
	assert.Equal(t, "125000000.00", rec.ValorAsegurado)
	assert.Equal(t, "58900.50", rec.ValorPrima)
	assert.Equal(t, "DC-556677", rec.DocCobro)

	// Dates keep only their first 10 characters.
	assert.Equal(t, "2025-01-01", rec.FechaIni)
	assert.Equal(t, "", rec.FechaFin)
	assert.Equal(t, "30", rec.Dias)

	assert.Equal(t, "3001234567", rec.Telefono1)
	assert.Equal(t, "6015557788", rec.Telefono2)
	assert.Equal(t, "", rec.Telefono3)
	assert.Equal(t, "BOGOTA", rec.Ciudad)
	assert.Equal(t, "CUNDINAMARCA", rec.Departamento)

	assert.Equal(t, "2024-06-15", rec.FechaVenta)
	assert.Equal(t, "1988-11-02", rec.FechaNacimiento)
	assert.Equal(t, "VEN", rec.TipoTrans)
	assert.Equal(t, "MARIA LOPEZ;PEDRO LOPEZ", rec.Beneficiarios)

	assert.Equal(t, "F", rec.Genero)
	assert.Equal(t, "SUCURSAL CHAPINERO", rec.Sucursal)
	assert.Equal(t, "4321", rec.UltimosDigitosCuenta)
	assert.Equal(t, "BANCOLOMBIA", rec.EntidadBancaria)
	assert.Equal(t, "BANCOLOMBIA SA", rec.NombreBanco)
	assert.Equal(t, "ACTIVO", rec.EstadoDebito)

	// Batch stamps derived from the ingestion date and source file.
	assert.Equal(t, "2025-01-15", rec.FechaEntregaColmena)
	assert.Equal(t, "01", rec.MesATrabajar)
	assert.Equal(t, "CLIENTES_20250115.txt", rec.NombreDB)

	// Preference flags from the phrases column.
	assert.True(t, rec.Telefono)
	assert.True(t, rec.Whatsapp)
	assert.False(t, rec.Texto)
	assert.False(t, rec.Email)
	assert.False(t, rec.Fisica)

	// telefono outranks whatsapp and takes the first phone.
	assert.Equal(t, registro.CanalTelefono, rec.MejorCanal)
	assert.Equal(t, "3001234567", rec.ContactarAl)
}

func TestBuildIsPure(t *testing.T) {
	cols := make([]string, fixedwidth.ColumnCount)
	cols[1] = "CC"
	cols[2] = "123"
	cols[21] = "mensaje de texto"

	tr, err := NewTransformer("20240601", "X_20240601.txt")
	require.NoError(t, err)

	a, err := tr.Build(cols)
	require.NoError(t, err)
	b, err := tr.Build(cols)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildShortRowIsLenient(t *testing.T) {
	// A 500-character line still parses; missing columns are empty.
	short := strings.Repeat("x", 500)
	cols, err := fixedwidth.NewSplitter(fixedwidth.DefaultLayout()).Split(short)
	require.NoError(t, err)

	tr, err := NewTransformer("20250115", "x.txt")
	require.NoError(t, err)

	rec, err := tr.Build(cols)
	require.NoError(t, err)

	// No preference text at all: default candidate with the first phone.
	assert.Equal(t, registro.CanalTexto, rec.MejorCanal)
	assert.Equal(t, strings.Repeat("x", 15), rec.ContactarAl)
	assert.Equal(t, "", rec.EstadoDebito)
	assert.Equal(t, "2025-01-15", rec.FechaEntregaColmena)
}

func TestBuildMesATrabajar(t *testing.T) {
	tr, err := NewTransformer("20251207", "x.txt")
	require.NoError(t, err)

	rec, err := tr.Build(make([]string, fixedwidth.ColumnCount))
	require.NoError(t, err)
	assert.Equal(t, "12", rec.MesATrabajar)
	assert.Equal(t, "2025-12-07", rec.FechaEntregaColmena)
}
