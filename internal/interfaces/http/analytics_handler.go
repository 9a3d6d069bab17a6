package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturas-api/internal/application/analytics"
)

// AnalyticsHandler expone las métricas del tablero.
type AnalyticsHandler struct {
	uc *analytics.DashboardUseCase
}

func NewAnalyticsHandler(uc *analytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas de facturación
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/analytics/stats [get]
func (h *AnalyticsHandler) Stats(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetStats(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Revenue godoc
// @Summary      Serie de ingresos
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        period  query  string  false  "weekly | month | monthly (por defecto weekly)"
// @Success      200  {object}  dto.RevenueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/revenue [get]
func (h *AnalyticsHandler) Revenue(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetRevenue(c.UserContext(), userID, c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary GET /api/analytics/summary?period=
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetSummary(c.UserContext(), userID, c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
