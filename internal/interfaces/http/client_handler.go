package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
)

// ClientHandler CRUD de clientes del usuario autenticado.
type ClientHandler struct {
	uc *billing.ClientUseCase
}

func NewClientHandler(uc *billing.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
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

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
