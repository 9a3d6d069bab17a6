package dto

import "github.com/shopspring/decimal"

// PartyDTO instantánea de emisor/receptor.
type PartyDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Si ClientID viene informado y BilledTo no, se copia la instantánea del cliente.
// InvoiceNumber es opcional; vacío = se asigna el siguiente INV-NNN.
type CreateInvoiceRequest struct {
	ClientID       string            `json:"client_id,omitempty"`
	BilledTo       *PartyDTO         `json:"billed_to,omitempty"`
	BilledFrom     PartyDTO          `json:"billed_from"`
	InvoiceNumber  string            `json:"invoice_number,omitempty"`
	IssueDate      string            `json:"issue_date,omitempty"` // YYYY-MM-DD; vacío = hoy
	DueDate        string            `json:"due_date,omitempty"`   // YYYY-MM-DD
	Status         string            `json:"status,omitempty"`     // draft | sent; vacío = draft
	LineItems      []LineItemRequest `json:"line_items"`
	FlatTaxPercent decimal.Decimal   `json:"flat_tax_percent"`
	Currency       string            `json:"currency,omitempty"`
	Notes          string            `json:"notes,omitempty"`
}

// LineItemRequest línea de factura. Con CatalogItemID, los campos nil se heredan del catálogo.
type LineItemRequest struct {
	ID             string           `json:"id,omitempty"`
	CatalogItemID  string           `json:"catalog_item_id,omitempty"`
	Description    string           `json:"description"`
	Quantity       int              `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	TaxRatePercent *decimal.Decimal `json:"tax_rate_percent,omitempty"`
	CostPrice      *decimal.Decimal `json:"cost_price,omitempty"`
}

// LineItemResponse línea en la respuesta.
type LineItemResponse struct {
	ID             string          `json:"id"`
	CatalogItemID  string          `json:"catalog_item_id,omitempty"`
	Description    string          `json:"description"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	Amount         decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura con líneas para GET /api/invoices/:id.
// Status es el estado almacenado; EffectiveStatus aplica la regla de vencimiento.
type InvoiceResponse struct {
	ID              string             `json:"id"`
	InvoiceNumber   string             `json:"invoice_number"`
	IssueDate       string             `json:"issue_date"`
	DueDate         *string            `json:"due_date,omitempty"`
	Status          string             `json:"status"`
	EffectiveStatus string             `json:"effective_status"`
	BilledTo        PartyDTO           `json:"billed_to"`
	BilledFrom      PartyDTO           `json:"billed_from"`
	LineItems       []LineItemResponse `json:"line_items"`
	FlatTaxPercent  decimal.Decimal    `json:"flat_tax_percent"`
	TaxModel        string             `json:"tax_model"`
	Currency        string             `json:"currency"`
	Notes           string             `json:"notes,omitempty"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	TaxAmount       decimal.Decimal    `json:"tax_amount"`
	Total           decimal.Decimal    `json:"total"`
	TotalFormatted  string             `json:"total_formatted"`
	PaymentDate     *string            `json:"payment_date,omitempty"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

// MarkPaidRequest body para POST /api/invoices/:id/pay. Sin fecha = ahora.
type MarkPaidRequest struct {
	PaymentDate string `json:"payment_date,omitempty"` // YYYY-MM-DD o RFC3339
}

// NextNumberResponse respuesta de GET /api/invoices/next-number.
type NextNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}

// SweepResponse respuesta del barrido de vencidas.
type SweepResponse struct {
	Updated int `json:"updated"`
}

// ClientRequest body para POST/PUT /api/clients.
type ClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
