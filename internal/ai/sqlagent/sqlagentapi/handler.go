package sqlagentapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/iiTzGuzz/LLMSDATA/internal/ai/sqlagent"
	"github.com/iiTzGuzz/LLMSDATA/pkg/iam/auth"
	"github.com/iiTzGuzz/LLMSDATA/pkg/logx"
)

// Handlers exposes the natural-language query endpoint.
type Handlers struct {
	provider *sqlagent.Provider
}

func NewHandlers(provider *sqlagent.Provider) *Handlers {
	return &Handlers{provider: provider}
}

type consultaRequest struct {
	Instruccion string `json:"instruccion"`
}

type consultaResponse struct {
	OK          bool           `json:"ok"`
	Instruccion string         `json:"instruccion"`
	Output      map[string]any `json:"output"`
}

// Consulta runs one instruction through the agent.
// POST /api/consulta-llm
func (h *Handlers) Consulta(c *fiber.Ctx) error {
	var req consultaRequest
	if err := c.BodyParser(&req); err != nil {
		return sqlagent.ErrEmptyInstruction().WithDetail("error", err.Error())
	}
	req.Instruccion = strings.TrimSpace(req.Instruccion)
	if req.Instruccion == "" {
		return sqlagent.ErrEmptyInstruction()
	}

	agent, err := h.provider.Get()
	if err != nil {
		return err
	}

	output, err := agent.Query(c.Context(), req.Instruccion)
	if err != nil {
		logx.Errorf("Agent query failed: %v", err)
		return sqlagent.ErrAgentFailed(err)
	}

	return c.JSON(consultaResponse{
		OK:          true,
		Instruccion: req.Instruccion,
		Output:      output,
	})
}

// RegisterRoutes mounts the agent endpoint under /api.
func RegisterRoutes(app *fiber.App, h *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api", authMiddleware.Authenticate())
	api.Post("/consulta-llm", h.Consulta)
}
