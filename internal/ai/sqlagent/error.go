package sqlagent

import (
	"net/http"

	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AGENT")

var (
	CodeAgentUnavailable = ErrRegistry.Register("UNAVAILABLE", errx.TypeExternal, http.StatusServiceUnavailable, "Agente no disponible: falta OPENAI_API_KEY")
	CodeAgentFailed      = ErrRegistry.Register("FAILED", errx.TypeExternal, http.StatusBadGateway, "El agente no pudo responder la consulta")
	CodeEmptyInstruction = ErrRegistry.Register("EMPTY_INSTRUCTION", errx.TypeValidation, http.StatusBadRequest, "El campo instruccion es obligatorio")
)

func ErrAgentUnavailable() *errx.Error {
	return ErrRegistry.New(CodeAgentUnavailable)
}

func ErrAgentFailed(cause error) *errx.Error {
	return ErrRegistry.New(CodeAgentFailed).WithCause(cause)
}

func ErrEmptyInstruction() *errx.Error {
	return ErrRegistry.New(CodeEmptyInstruction)
}
