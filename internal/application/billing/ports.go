package billing

import (
	"context"

	"github.com/jhoicas/Facturas-api/internal/application/inventory"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

// StockProcessor aplica los descuentos de existencias de una factura recién creada.
// Retorna de inmediato; el lote se completa en segundo plano.
type StockProcessor interface {
	Dispatch(ctx context.Context, userID string, inv *entity.Invoice) *inventory.Dispatch
}

// AuditRecorder agrega entradas a la bitácora sin propagar errores.
type AuditRecorder interface {
	Record(ctx context.Context, userID, action, entityType, entityID, details string)
}

// CacheInvalidator descarta resultados derivados (analítica) de un usuario tras una mutación.
type CacheInvalidator interface {
	InvalidateUser(userID string)
}

// InvoicePDFGenerator genera la representación gráfica de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, effective entity.Status, locale string) ([]byte, error)
}

// InvoiceXMLExporter exporta la factura como documento XML.
type InvoiceXMLExporter interface {
	ExportInvoiceXML(inv *entity.Invoice, effective entity.Status) ([]byte, error)
}
