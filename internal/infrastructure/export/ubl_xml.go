// Package export serializa facturas a XML con estructura UBL 2.1 (sin firma).
package export

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/integrity"
	"github.com/jhoicas/Facturas-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

const xmlDate = "2006-01-02"

var _ billing.InvoiceXMLExporter = (*UBLExporter)(nil)

// UBLExporter implementa billing.InvoiceXMLExporter.
type UBLExporter struct {
	indent int
}

// NewUBLExporter construye el exportador con sangría de 2 espacios.
func NewUBLExporter() *UBLExporter { return &UBLExporter{indent: 2} }

// ExportInvoiceXML genera el documento. Los importes se escriben con 2 decimales;
// el cálculo interno sigue siendo exacto.
func (e *UBLExporter) ExportInvoiceXML(inv *entity.Invoice, effective entity.Status) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("export: factura nil")
	}
	if err := integrity.VerifyTotals(inv); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	fingerprint, err := integrity.Fingerprint(inv)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "ID", inv.InvoiceNumber)
	uuid := cbc(root, "UUID", fingerprint)
	uuid.CreateAttr("schemeName", "SHA-384")
	cbc(root, "IssueDate", inv.IssueDate.Format(xmlDate))
	if inv.DueDate != nil {
		cbc(root, "DueDate", inv.DueDate.Format(xmlDate))
	}
	cbc(root, "InvoiceTypeCode", "380")
	if inv.Notes != "" {
		cbc(root, "Note", inv.Notes)
	}
	cbc(root, "DocumentCurrencyCode", inv.Currency)
	// Estado efectivo: no es parte de UBL, va como nota con prefijo.
	cbc(root, "Note", "status:"+string(effective))

	party(root.CreateElement("cac:AccountingSupplierParty"), inv.BilledFrom)
	party(root.CreateElement("cac:AccountingCustomerParty"), inv.BilledTo)

	if inv.PaymentDate != nil {
		pm := root.CreateElement("cac:PaymentMeans")
		cbc(pm, "PaymentMeansCode", "1")
		cbc(pm, "PaymentDueDate", inv.PaymentDate.Format(xmlDate))
	}

	totals := money.ComputeTotals(inv.LineItems, inv.FlatTaxPercent)
	taxTotal := root.CreateElement("cac:TaxTotal")
	amount(taxTotal, "TaxAmount", inv.TaxAmount, inv.Currency)
	if totals.Model == money.TaxModelFlat {
		taxSubtotal(taxTotal, inv.Subtotal, inv.TaxAmount, inv.FlatTaxPercent, inv.Currency)
	}

	lmt := root.CreateElement("cac:LegalMonetaryTotal")
	amount(lmt, "LineExtensionAmount", inv.Subtotal, inv.Currency)
	amount(lmt, "TaxExclusiveAmount", inv.Subtotal, inv.Currency)
	amount(lmt, "TaxInclusiveAmount", inv.Total, inv.Currency)
	amount(lmt, "PayableAmount", inv.Total, inv.Currency)

	for i, l := range inv.LineItems {
		line := root.CreateElement("cac:InvoiceLine")
		cbc(line, "ID", fmt.Sprint(i+1))
		q := cbc(line, "InvoicedQuantity", fmt.Sprint(l.Quantity))
		q.CreateAttr("unitCode", "EA")
		amount(line, "LineExtensionAmount", l.Amount(), inv.Currency)
		if !l.TaxRatePercent.IsZero() {
			lt := line.CreateElement("cac:TaxTotal")
			tax := l.Amount().Mul(l.TaxRatePercent).Div(decimal.NewFromInt(100))
			amount(lt, "TaxAmount", tax, inv.Currency)
			taxSubtotal(lt, l.Amount(), tax, l.TaxRatePercent, inv.Currency)
		}
		item := line.CreateElement("cac:Item")
		cbc(item, "Description", l.Description)
		if l.CatalogItemID != "" {
			sid := item.CreateElement("cac:SellersItemIdentification")
			cbc(sid, "ID", l.CatalogItemID)
		}
		price := line.CreateElement("cac:Price")
		amount(price, "PriceAmount", l.UnitPrice, inv.Currency)
	}

	doc.Indent(e.indent)
	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar xml: %w", err)
	}
	return b, nil
}

func cbc(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + tag)
	el.SetText(value)
	return el
}

func amount(parent *etree.Element, tag string, v decimal.Decimal, currency string) {
	el := cbc(parent, tag, v.StringFixed(2))
	el.CreateAttr("currencyID", currency)
}

func taxSubtotal(parent *etree.Element, taxable, tax, percent decimal.Decimal, currency string) {
	st := parent.CreateElement("cac:TaxSubtotal")
	amount(st, "TaxableAmount", taxable, currency)
	amount(st, "TaxAmount", tax, currency)
	cat := st.CreateElement("cac:TaxCategory")
	cbc(cat, "Percent", percent.String())
}

func party(parent *etree.Element, p entity.Party) {
	pe := parent.CreateElement("cac:Party")
	name := pe.CreateElement("cac:PartyName")
	cbc(name, "Name", p.Name)
	if p.Address != "" {
		addr := pe.CreateElement("cac:PostalAddress")
		al := addr.CreateElement("cac:AddressLine")
		cbc(al, "Line", p.Address)
	}
	if p.Email != "" || p.Phone != "" {
		c := pe.CreateElement("cac:Contact")
		if p.Phone != "" {
			cbc(c, "Telephone", p.Phone)
		}
		if p.Email != "" {
			cbc(c, "ElectronicMail", p.Email)
		}
	}
}
