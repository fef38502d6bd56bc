package registroapi

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
	"github.com/iiTzGuzz/LLMSDATA/etl/registro/registrosrv"
	"github.com/iiTzGuzz/LLMSDATA/pkg/iam/auth"
	"github.com/iiTzGuzz/LLMSDATA/pkg/kernel"
)

// Handlers provides HTTP handlers for file processing and record queries
type Handlers struct {
	service *registrosrv.RegistroService
}

// NewHandlers creates a new registro handlers instance
func NewHandlers(service *registrosrv.RegistroService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// UploadAndProcess receives a fixed-width file, stores it under a
// normalized NOMBRE_YYYYMMDD.txt name and runs the pipeline.
// POST /api/procesar-archivo/upload
func (h *Handlers) UploadAndProcess(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return registro.ErrBadRequest("Falta campo 'file'")
	}

	fecha := c.FormValue("fecha")
	if fecha != "" && !isYYYYMMDD(fecha) {
		return registro.ErrBadRequest("El campo 'fecha' debe ser YYYYMMDD")
	}

	uploaded, err := fileHeader.Open()
	if err != nil {
		return registro.ErrBadRequest("No se pudo abrir el archivo subido").WithDetail("error", err.Error())
	}
	defer uploaded.Close()

	savedAs, err := h.service.SaveUpload(c.Context(), uploaded, fileHeader.Filename, fecha)
	if err != nil {
		return err
	}

	result, err := h.service.ProcessStored(c.Context(), savedAs, fecha, fileHeader.Filename)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(registro.UploadResponse{
		OK:         true,
		SavedAs:    savedAs,
		Insertados: result.Insertados,
		BatchID:    result.BatchID,
	})
}

// ProcessPath runs the pipeline over a file already on disk.
// POST /api/procesar-archivo
func (h *Handlers) ProcessPath(c *fiber.Ctx) error {
	var req registro.ProcessPathRequest
	if err := c.BodyParser(&req); err != nil {
		return registro.ErrBadRequest("Cuerpo JSON inválido").WithDetail("error", err.Error())
	}
	if req.Path == "" {
		return registro.ErrBadRequest("Falta 'path'")
	}
	if req.Fecha != "" && !isYYYYMMDD(req.Fecha) {
		return registro.ErrBadRequest("El campo 'fecha' debe ser YYYYMMDD")
	}

	result, err := h.service.ProcessPath(c.Context(), req.Path, req.Fecha, req.OriginalName)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"ok":         true,
		"insertados": result.Insertados,
		"batch_id":   result.BatchID,
	})
}

// Latest returns the last N inserted rows.
// GET /api/registros/ultimos?limit=
func (h *Handlers) Latest(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	rows, err := h.service.Latest(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(registro.LatestResponse{
		OK:    true,
		Count: len(rows),
		Rows:  rows,
	})
}

// List returns one page of stored rows, newest first.
// GET /api/registros?page=&page_size=
func (h *Handlers) List(c *fiber.Ctx) error {
	opts := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 50),
	}

	page, err := h.service.List(c.Context(), opts)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// ListExports lists the generated CSV/JSON export files.
// GET /api/exports
func (h *Handlers) ListExports(c *fiber.Ctx) error {
	files, err := h.service.ListExports(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(registro.ExportsResponse{OK: true, Files: files})
}

// DownloadExport streams one export file back to the client.
// GET /api/exports/:filename
func (h *Handlers) DownloadExport(c *fiber.Ctx) error {
	filename := c.Params("filename")

	data, err := h.service.ReadExport(c.Context(), filename)
	if err != nil {
		return err
	}

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(filename, ".csv"):
		contentType = "text/csv; charset=utf-8"
	case strings.HasSuffix(filename, ".json"):
		contentType = "application/json; charset=utf-8"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendStream(bytes.NewReader(data))
}

// DeleteExport removes one export file.
// DELETE /api/exports/:filename
func (h *Handlers) DeleteExport(c *fiber.Ctx) error {
	if err := h.service.DeleteExport(c.Context(), c.Params("filename")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func isYYYYMMDD(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RegisterRoutes registers all processing and query routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api")

	api.Post("/procesar-archivo/upload",
		authMiddleware.Authenticate(),
		handlers.UploadAndProcess,
	)

	api.Post("/procesar-archivo",
		authMiddleware.Authenticate(),
		handlers.ProcessPath,
	)

	api.Get("/registros/ultimos",
		authMiddleware.Authenticate(),
		handlers.Latest,
	)

	api.Get("/registros",
		authMiddleware.Authenticate(),
		handlers.List,
	)

	api.Get("/exports",
		authMiddleware.Authenticate(),
		handlers.ListExports,
	)

	api.Get("/exports/:filename",
		authMiddleware.Authenticate(),
		handlers.DownloadExport,
	)

	api.Delete("/exports/:filename",
		authMiddleware.Authenticate(),
		handlers.DeleteExport,
	)
}
