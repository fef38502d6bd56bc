package registro

import (
	"net/http"

	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("REGISTRO")

// Error codes
var (
	CodeBadColumnCount = ErrRegistry.Register("BAD_COLUMN_COUNT", errx.TypeValidation, http.StatusBadRequest, "Row does not have exactly 22 columns")
	CodeFileNotFound   = ErrRegistry.Register("FILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Input file not found")
	CodeExportNotFound = ErrRegistry.Register("EXPORT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Export file not found")
	CodeInsertFailed   = ErrRegistry.Register("INSERT_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Bulk insert failed")
	CodeBadRequest     = ErrRegistry.Register("BAD_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
)

// Helper functions
func ErrBadColumnCount() *errx.Error {
	return ErrRegistry.New(CodeBadColumnCount)
}

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileNotFound)
}

func ErrExportNotFound() *errx.Error {
	return ErrRegistry.New(CodeExportNotFound)
}

func ErrInsertFailed() *errx.Error {
	return ErrRegistry.New(CodeInsertFailed)
}

func ErrBadRequest(message string) *errx.Error {
	return ErrRegistry.NewWithMessage(CodeBadRequest, message)
}
