package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	docs *billing.DocumentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, docs *billing.DocumentUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, docs: docs}
}

// Create godoc
// @Summary      Crear factura
// @Description  Calcula totales, asigna número INV-NNN si no se envía y descuenta existencias en segundo plano.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateInvoice(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/invoices?status=&q=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListInvoices(c.UserContext(), userID, c.Query("status"), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextNumber GET /api/invoices/next-number
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	n, err := h.uc.NextNumber(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NextNumberResponse{InvoiceNumber: n})
}

// GetByID obtiene el detalle completo de una factura con su estado efectivo.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetInvoice(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Send POST /api/invoices/:id/send
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.MarkSent(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Registrar pago
// @Description  payment_date opcional (YYYY-MM-DD o RFC3339); por defecto la fecha actual.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true   "ID de la factura"
// @Param        body  body  dto.MarkPaidRequest  false  "fecha de pago"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pay [post]
func (h *InvoiceHandler) Pay(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.MarkPaidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	paymentDate, err := billing.ParsePaymentDate(in.PaymentDate)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.MarkPaid(c.UserContext(), userID, c.Params("id"), paymentDate)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/invoices/:id (solo borradores)
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteInvoice(c.UserContext(), userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	b, name, err := h.docs.DownloadInvoicePDF(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	return c.Send(b)
}

// XML GET /api/invoices/:id/xml
func (h *InvoiceHandler) XML(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	b, name, err := h.docs.ExportInvoiceXML(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	return c.Send(b)
}

// SweepOverdue persiste el estado vencido de las facturas abiertas con fecha pasada
// del usuario autenticado. El barrido global solo existe en invoicectl.
// POST /api/invoices/sweep-overdue
func (h *InvoiceHandler) SweepOverdue(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	n, err := h.uc.SweepOverdueForUser(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SweepResponse{Updated: n})
}
