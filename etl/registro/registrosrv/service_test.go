package registrosrv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiTzGuzz/LLMSDATA/etl/fixedwidth"
	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
	"github.com/iiTzGuzz/LLMSDATA/pkg/fsx/fsxlocal"
	"github.com/iiTzGuzz/LLMSDATA/pkg/kernel"
)

type fakeRepo struct {
	inserted [][]*registro.Registro
	latest   []registro.StoredRegistro
	gotLimit int
	gotOpts  kernel.PaginationOptions
}

func (f *fakeRepo) BulkInsert(ctx context.Context, records []*registro.Registro) (int, error) {
	batch := append([]*registro.Registro(nil), records...)
	f.inserted = append(f.inserted, batch)
	return len(batch), nil
}

func (f *fakeRepo) Latest(ctx context.Context, limit int) ([]registro.StoredRegistro, error) {
	f.gotLimit = limit
	return f.latest, nil
}

func (f *fakeRepo) List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[registro.StoredRegistro], error) {
	f.gotOpts = opts
	total, _ := f.Count(ctx)
	return kernel.NewPaginated(f.latest, total, opts), nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	n := 0
	for _, b := range f.inserted {
		n += len(b)
	}
	return int64(n), nil
}

// fullLine renders a 1615-character record with the given document number
// and preference text.
func fullLine(t *testing.T, documento, preferencias string) string {
	t.Helper()
	widths := fixedwidth.DefaultLayout().Widths()
	cells := map[int]string{
		1:  "CC",
		2:  documento,
		3:  "CLIENTE PRUEBA",
		10: "3001234567",
		21: preferencias,
	}
	var b strings.Builder
	for i, w := range widths {
		cell := cells[i]
		require.LessOrEqual(t, len([]rune(cell)), w)
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", w-len([]rune(cell))))
	}
	return b.String()
}

func newTestService(t *testing.T) (*RegistroService, *fakeRepo, string) {
	t.Helper()
	dir := t.TempDir()
	repo := &fakeRepo{}
	svc := NewRegistroService(repo, fsxlocal.NewLocalFileSystem(dir), false)
	return svc, repo, dir
}

func TestProcessPath(t *testing.T) {
	svc, repo, dir := newTestService(t)

	input := filepath.Join(t.TempDir(), "CLIENTES_20250115.txt")
	content := fullLine(t, "100", "mensaje de texto") + "\n" +
		fullLine(t, "200", "correspondencia física") + "\n\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

	res, err := svc.ProcessPath(context.Background(), input, "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Insertados)
	assert.Equal(t, input, res.SavedAs)
	assert.NotEmpty(t, res.BatchID)
	require.Len(t, repo.inserted, 1)

	recs := repo.inserted[0]
	require.Len(t, recs, 2)
	assert.Equal(t, "100", recs[0].Documento)
	assert.Equal(t, registro.CanalTexto, recs[0].MejorCanal)
	assert.Equal(t, registro.CanalFisica, recs[1].MejorCanal)
	assert.Equal(t, "2025-01-15", recs[0].FechaEntregaColmena)

	// Exports land next to the uploads inside the storage root.
	assert.Equal(t, "exports/CLIENTES_20250115.csv", res.CSVPath)
	assert.Equal(t, "exports/CLIENTES_20250115.json", res.JSONPath)

	csvData, err := os.ReadFile(filepath.Join(dir, "exports", "CLIENTES_20250115.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csvData), strings.Join(registro.Columns, ",")))

	jsonData, err := os.ReadFile(filepath.Join(dir, "exports", "CLIENTES_20250115.json"))
	require.NoError(t, err)
	var parsed []map[string]string
	require.NoError(t, json.Unmarshal(jsonData, &parsed))
	require.Len(t, parsed, 2)
	assert.Equal(t, "1", parsed[1]["fisica"])
}

func TestProcessPathMissingFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ProcessPath(context.Background(), "/no/such/file.txt", "", "")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, registro.CodeFileNotFound))
}

func TestProcessPathDatelessNeedsOverride(t *testing.T) {
	svc, repo, _ := newTestService(t)

	input := filepath.Join(t.TempDir(), "sin-fecha.txt")
	require.NoError(t, os.WriteFile(input, []byte(fullLine(t, "1", "")+"\n"), 0o644))

	_, err := svc.ProcessPath(context.Background(), input, "", "")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, fixedwidth.CodeMissingDate))
	assert.Empty(t, repo.inserted)

	res, err := svc.ProcessPath(context.Background(), input, "20240630", "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Insertados)
	assert.Equal(t, "2024-06-30", repo.inserted[0][0].FechaEntregaColmena)
}

func TestSaveUploadAndProcessStored(t *testing.T) {
	svc, repo, dir := newTestService(t)
	ctx := context.Background()

	content := fullLine(t, "300", "whastapp")
	saved, err := svc.SaveUpload(ctx, strings.NewReader(content), "mi reporte.dat", "20250201")
	require.NoError(t, err)
	assert.Equal(t, "uploads/MI_REPORTE_20250201.txt", saved)

	_, err = os.Stat(filepath.Join(dir, "uploads", "MI_REPORTE_20250201.txt"))
	require.NoError(t, err)

	res, err := svc.ProcessStored(ctx, saved, "20250201", "mi reporte.dat")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Insertados)
	assert.Equal(t, saved, res.SavedAs)

	rec := repo.inserted[0][0]
	assert.Equal(t, "mi reporte.dat", rec.NombreDB)
	assert.True(t, rec.Whatsapp)
	assert.Equal(t, registro.CanalWhatsapp, rec.MejorCanal)
}

func TestStrictServiceRejectsShortLines(t *testing.T) {
	dir := t.TempDir()
	repo := &fakeRepo{}
	svc := NewRegistroService(repo, fsxlocal.NewLocalFileSystem(dir), true)

	input := filepath.Join(t.TempDir(), "X_20250101.txt")
	require.NoError(t, os.WriteFile(input, []byte("too short\n"), 0o644))

	_, err := svc.ProcessPath(context.Background(), input, "", "")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, fixedwidth.CodeBadLineLength))
}

func TestLatestClampsLimit(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Latest(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.gotLimit)

	_, err = svc.Latest(ctx, 10_000)
	require.NoError(t, err)
	assert.Equal(t, 500, repo.gotLimit)

	_, err = svc.Latest(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.gotLimit)
}

func TestListClampsPagination(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, kernel.PaginationOptions{})
	require.NoError(t, err)
	assert.Equal(t, kernel.PaginationOptions{Page: 1, PageSize: 50}, repo.gotOpts)

	_, err = svc.List(ctx, kernel.PaginationOptions{Page: 3, PageSize: 9_999})
	require.NoError(t, err)
	assert.Equal(t, kernel.PaginationOptions{Page: 3, PageSize: 500}, repo.gotOpts)

	_, err = svc.List(ctx, kernel.PaginationOptions{Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, kernel.PaginationOptions{Page: 2, PageSize: 20}, repo.gotOpts)
}

func TestDeleteExport(t *testing.T) {
	svc, _, dir := newTestService(t)
	ctx := context.Background()

	target := filepath.Join(dir, "exports", "OLD.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	require.NoError(t, svc.DeleteExport(ctx, "OLD.csv"))
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))

	// Idempotent: deleting again is fine.
	require.NoError(t, svc.DeleteExport(ctx, "OLD.csv"))

	err = svc.DeleteExport(ctx, "../etc/passwd")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, registro.CodeExportNotFound))
}

func TestReadExport(t *testing.T) {
	svc, _, dir := newTestService(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "exports"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exports", "X.csv"), []byte("a,b\n"), 0o644))

	data, err := svc.ReadExport(ctx, "X.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))

	for _, bad := range []string{"", "../secret", `..\secret`, "sub/X.csv", "missing.csv"} {
		_, err := svc.ReadExport(ctx, bad)
		require.Error(t, err, "filename %q", bad)
		assert.True(t, errx.IsCode(err, registro.CodeExportNotFound))
	}
}

func TestListExports(t *testing.T) {
	svc, _, dir := newTestService(t)
	ctx := context.Background()

	files, err := svc.ListExports(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "exports"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exports", "A.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exports", "A.json"), []byte("y"), 0o644))

	files, err = svc.ListExports(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestExportBaseName(t *testing.T) {
	assert.Equal(t, "CLIENTES_20250115", exportBaseName("CLIENTES_20250115.txt"))
	assert.Equal(t, "CLIENTES_20250115", exportBaseName("/tmp/CLIENTES_20250115.txt"))
	assert.Equal(t, "archivo", exportBaseName(`C:\datos\archivo.txt`))
	assert.Equal(t, "sin_extension", exportBaseName("sin_extension"))
}
