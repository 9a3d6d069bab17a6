package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturas-api/internal/application/audit"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
)

// AuditHandler lista la bitácora del usuario.
type AuditHandler struct {
	rec *audit.Recorder
}

func NewAuditHandler(rec *audit.Recorder) *AuditHandler {
	return &AuditHandler{rec: rec}
}

// List GET /api/audit-logs?limit=&offset=
func (h *AuditHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit/offset inválidos"})
	}
	out, err := h.rec.List(c.UserContext(), userID, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
