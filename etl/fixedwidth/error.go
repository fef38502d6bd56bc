package fixedwidth

import (
	"net/http"

	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("PARSER")

// Error codes
var (
	CodeBadLayout     = ErrRegistry.Register("BAD_LAYOUT", errx.TypeInternal, http.StatusInternalServerError, "Fixed-width layout is inconsistent")
	CodeMissingDate   = ErrRegistry.Register("MISSING_DATE", errx.TypeValidation, http.StatusBadRequest, "No YYYYMMDD date in filename and no override provided")
	CodeBadDate       = ErrRegistry.Register("BAD_DATE", errx.TypeValidation, http.StatusBadRequest, "Ingestion date must be an 8-digit YYYYMMDD string")
	CodeBadLineLength = ErrRegistry.Register("BAD_LINE_LENGTH", errx.TypeValidation, http.StatusBadRequest, "Line length does not match the layout")
	CodeBadFilename   = ErrRegistry.Register("BAD_FILENAME", errx.TypeValidation, http.StatusBadRequest, "Cannot normalize filename")
)

// Helper functions
func ErrBadLayout() *errx.Error {
	return ErrRegistry.New(CodeBadLayout)
}

func ErrMissingDate() *errx.Error {
	return ErrRegistry.New(CodeMissingDate)
}

func ErrBadDate() *errx.Error {
	return ErrRegistry.New(CodeBadDate)
}

func ErrBadLineLength() *errx.Error {
	return ErrRegistry.New(CodeBadLineLength)
}

func ErrBadFilename() *errx.Error {
	return ErrRegistry.New(CodeBadFilename)
}
