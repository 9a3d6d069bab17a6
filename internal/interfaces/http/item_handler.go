package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/application/inventory"
)

// ItemHandler maneja el catálogo de artículos y sus existencias.
type ItemHandler struct {
	uc *inventory.CatalogUseCase
}

func NewItemHandler(uc *inventory.CatalogUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo de catálogo
// @Description  Si no se envía tax_rate_percent se usa la tasa por defecto de la categoría.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CatalogItemRequest  true  "artículo"
// @Success      201   {object}  dto.CatalogItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/items?low_stock=true
func (h *ItemHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), userID, c.QueryBool("low_stock", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/items/:id
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/items/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Ajustar existencias
// @Description  quantity es absoluta; unit_cost opcional recalcula el costo promedio ponderado.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID del artículo"
// @Param        body  body  dto.RestockRequest   true  "cantidad"
// @Success      200   {object}  dto.CatalogItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [put]
func (h *ItemHandler) Restock(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Restock(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/items/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
