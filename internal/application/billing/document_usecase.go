package billing

import (
	"context"
	"fmt"
)

// DocumentUseCase genera los documentos descargables de una factura (PDF y XML).
type DocumentUseCase struct {
	invoices *InvoiceUseCase
	pdf      InvoicePDFGenerator
	xml      InvoiceXMLExporter
	locale   string
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(invoices *InvoiceUseCase, pdf InvoicePDFGenerator, xml InvoiceXMLExporter, locale string) *DocumentUseCase {
	return &DocumentUseCase{invoices: invoices, pdf: pdf, xml: xml, locale: locale}
}

// DownloadInvoicePDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *DocumentUseCase) DownloadInvoicePDF(ctx context.Context, userID, id string) ([]byte, string, error) {
	inv, effective, err := uc.invoices.GetEntity(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateInvoicePDF(ctx, inv, effective, uc.locale)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("factura_%s.pdf", inv.InvoiceNumber), nil
}

// ExportInvoiceXML devuelve el XML de la factura y el nombre de archivo sugerido.
func (uc *DocumentUseCase) ExportInvoiceXML(ctx context.Context, userID, id string) ([]byte, string, error) {
	inv, effective, err := uc.invoices.GetEntity(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xml.ExportInvoiceXML(inv, effective)
	if err != nil {
		return nil, "", fmt.Errorf("xml: exportación fallida: %w", err)
	}
	return b, fmt.Sprintf("factura_%s.xml", inv.InvoiceNumber), nil
}
