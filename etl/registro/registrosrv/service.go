package registrosrv

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/iiTzGuzz/LLMSDATA/etl/export"
	"github.com/iiTzGuzz/LLMSDATA/etl/fixedwidth"
	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
	"github.com/iiTzGuzz/LLMSDATA/etl/transform"
	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
	"github.com/iiTzGuzz/LLMSDATA/pkg/fsx"
	"github.com/iiTzGuzz/LLMSDATA/pkg/kernel"
	"github.com/iiTzGuzz/LLMSDATA/pkg/logx"
)

const (
	uploadPrefix = "uploads"
	exportPrefix = "exports"

	// insertBufferSize is how many transformed records accumulate before
	// a bulk insert is issued.
	insertBufferSize = 1000
)

// RegistroService orchestrates one ingestion run: parse, transform, bulk
// insert, export.
type RegistroService struct {
	repo       registro.Repository
	fileSystem fsx.FileSystem
	strict     bool
}

// NewRegistroService creates a new instance of the registro service.
func NewRegistroService(repo registro.Repository, fileSystem fsx.FileSystem, strictLength bool) *RegistroService {
	return &RegistroService{
		repo:       repo,
		fileSystem: fileSystem,
		strict:     strictLength,
	}
}

// SaveUpload normalizes the uploaded name to NOMBRE_YYYYMMDD.txt and
// persists the stream under the uploads prefix. Returns the storage path.
func (s *RegistroService) SaveUpload(ctx context.Context, r io.Reader, originalName, fecha string) (string, error) {
	name, err := fixedwidth.NormalizeFilename(originalName, fecha)
	if err != nil {
		return "", err
	}
	dest := s.fileSystem.Join(uploadPrefix, name)
	if err := s.fileSystem.WriteFileStream(ctx, dest, r); err != nil {
		return "", errx.Wrap(err, "failed to store uploaded file", errx.TypeInternal)
	}
	return dest, nil
}

// ProcessStored parses a file previously persisted with SaveUpload.
func (s *RegistroService) ProcessStored(ctx context.Context, storedPath, fecha, originalName string) (*registro.ProcessResult, error) {
	data, err := s.fileSystem.ReadFile(ctx, storedPath)
	if err != nil {
		return nil, registro.ErrFileNotFound().WithDetail("path", storedPath).WithCause(err)
	}
	res, err := s.process(ctx, bytes.NewReader(data), path.Base(storedPath), fecha, originalName)
	if err != nil {
		return nil, err
	}
	res.SavedAs = storedPath
	return res, nil
}

// ProcessPath parses a file straight off the local disk, streaming it
// without loading it whole.
func (s *RegistroService) ProcessPath(ctx context.Context, filePath, fecha, originalName string) (*registro.ProcessResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, registro.ErrFileNotFound().WithDetail("path", filePath).WithCause(err)
	}
	defer f.Close()

	res, err := s.process(ctx, f, path.Base(filePath), fecha, originalName)
	if err != nil {
		return nil, err
	}
	res.SavedAs = filePath
	return res, nil
}

// process runs the pipeline over one reader. Rows are transformed in file
// order and inserted in buffered batches; the finished records are kept
// for the CSV/JSON exports written at the end.
func (s *RegistroService) process(ctx context.Context, r io.Reader, fileName, fecha, originalName string) (*registro.ProcessResult, error) {
	var parserOpts []fixedwidth.ParserOption
	if fecha != "" {
		parserOpts = append(parserOpts, fixedwidth.WithDateOverride(fecha))
	}
	if s.strict {
		parserOpts = append(parserOpts, fixedwidth.WithSplitterOptions(fixedwidth.WithStrictLength()))
	}

	parser, err := fixedwidth.NewParser(r, fileName, parserOpts...)
	if err != nil {
		return nil, err
	}

	sourceName := originalName
	if sourceName == "" {
		sourceName = fileName
	}
	transformer, err := transform.NewTransformer(parser.Date(), sourceName)
	if err != nil {
		return nil, err
	}

	batchID := kernel.NewBatchID()
	logx.Infof("Processing %s (fecha=%s, batch=%s)", sourceName, parser.Date(), batchID)

	var (
		all      []*registro.Registro
		buffer   []*registro.Registro
		inserted int
	)

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		n, err := s.repo.BulkInsert(ctx, buffer)
		inserted += n
		buffer = buffer[:0]
		return err
	}

	err = parser.IterRows(func(lineNo int, cols []string) error {
		rec, err := transformer.Build(cols)
		if err != nil {
			return err
		}
		all = append(all, rec)
		buffer = append(buffer, rec)
		if len(buffer) >= insertBufferSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	result := &registro.ProcessResult{
		BatchID:    batchID,
		Insertados: inserted,
	}

	base := exportBaseName(sourceName)
	if csvPath, jsonPath, err := s.writeExports(ctx, base, all); err != nil {
		// Records are already persisted; a failed export should not fail
		// the whole run.
		logx.Errorf("Failed to write exports for %s: %v", sourceName, err)
	} else {
		result.CSVPath = csvPath
		result.JSONPath = jsonPath
	}

	logx.Infof("Processed %s: %d registros insertados", sourceName, inserted)
	return result, nil
}

func exportBaseName(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

func (s *RegistroService) writeExports(ctx context.Context, base string, records []*registro.Registro) (csvPath, jsonPath string, err error) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		return "", "", err
	}
	csvPath = s.fileSystem.Join(exportPrefix, base+".csv")
	if err := s.fileSystem.WriteFileStream(ctx, csvPath, &buf); err != nil {
		return "", "", err
	}

	buf.Reset()
	if err := export.WriteJSON(&buf, records); err != nil {
		return "", "", err
	}
	jsonPath = s.fileSystem.Join(exportPrefix, base+".json")
	if err := s.fileSystem.WriteFileStream(ctx, jsonPath, &buf); err != nil {
		return "", "", err
	}
	return csvPath, jsonPath, nil
}

// Latest returns the most recently inserted rows, clamping limit to the
// 1..500 range with a default of 50.
func (s *RegistroService) Latest(ctx context.Context, limit int) ([]registro.StoredRegistro, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	return s.repo.Latest(ctx, limit)
}

// List returns one page of stored rows, newest first. Page defaults to 1
// and page size is clamped to the 1..500 range with a default of 50.
func (s *RegistroService) List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[registro.StoredRegistro], error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 50
	}
	if opts.PageSize > 500 {
		opts.PageSize = 500
	}
	return s.repo.List(ctx, opts)
}

// ListExports lists the generated export files.
func (s *RegistroService) ListExports(ctx context.Context) ([]fsx.FileInfo, error) {
	files, err := s.fileSystem.List(ctx, exportPrefix)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list exports", errx.TypeInternal)
	}
	return files, nil
}

// ReadExport returns the content of one export file by bare filename.
func (s *RegistroService) ReadExport(ctx context.Context, filename string) ([]byte, error) {
	// Reject path traversal; exports are addressed by bare name only.
	if filename == "" || strings.ContainsAny(filename, `/\`) {
		return nil, registro.ErrExportNotFound().WithDetail("filename", filename)
	}
	data, err := s.fileSystem.ReadFile(ctx, s.fileSystem.Join(exportPrefix, filename))
	if err != nil {
		return nil, registro.ErrExportNotFound().WithDetail("filename", filename).WithCause(err)
	}
	return data, nil
}

// DeleteExport removes one export file by bare filename. Deleting a file
// that is already gone succeeds.
func (s *RegistroService) DeleteExport(ctx context.Context, filename string) error {
	if filename == "" || strings.ContainsAny(filename, `/\`) {
		return registro.ErrExportNotFound().WithDetail("filename", filename)
	}
	if err := s.fileSystem.DeleteFile(ctx, s.fileSystem.Join(exportPrefix, filename)); err != nil {
		return errx.Wrap(err, "failed to delete export", errx.TypeInternal)
	}
	return nil
}
