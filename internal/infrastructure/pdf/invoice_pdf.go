// Package pdf genera la representación gráfica de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  EMISOR (BilledFrom)          │  N° Factura + fechas + estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAR A (BilledTo)                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Imp% | Importe         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / TOTAL                        │
//	│  NOTAS + QR de referencia                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/integrity"
	"github.com/jhoicas/Facturas-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

const dateLayout = "02/01/2006"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorPaid    = &props.Color{Red: 20, Green: 130, Blue: 60}
	colorOverdue = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var statusLabels = map[entity.Status]string{
	entity.StatusDraft:   "BORRADOR",
	entity.StatusSent:    "ENVIADA",
	entity.StatusPaid:    "PAGADA",
	entity.StatusOverdue: "VENCIDA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
// effective es el estado efectivo (una factura vencida se muestra VENCIDA aunque esté guardada como enviada).
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.Invoice,
	effective entity.Status,
	locale string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.InvoiceNumber, true).
		WithAuthor(inv.BilledFrom.Name, true).
		Build()

	m := maroto.New(cfg)
	fmtMoney := func(d decimal.Decimal) string { return money.Format(d, inv.Currency, locale) }

	m.AddRows(headerRow(inv, effective))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("FACTURAR A", inv.BilledTo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(lineRows(inv.LineItems, fmtMoney)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv, fmtMoney))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(inv, fmtMoney))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y número, fechas y estado (der).
func headerRow(inv *entity.Invoice, effective entity.Status) core.Row {
	from := inv.BilledFrom
	contact := joinNonEmpty("  |  ", from.Address, from.Email, from.Phone)

	due := "—"
	if inv.DueDate != nil {
		due = inv.DueDate.Format(dateLayout)
	}

	return row.New(24).Add(
		col.New(7).Add(
			text.New(nonEmpty(from.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(contact, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Emisión: "+inv.IssueDate.Format(dateLayout)+"   Vence: "+due, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New(statusLabels[effective], props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 18, Color: statusColor(effective),
			}),
		),
	)
}

func partyRow(title string, p entity.Party) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(p.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(joinNonEmpty("  |  ", p.Address, p.Email, p.Phone), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio unit.", 2, align.Right),
		h("Imp.%", 1, align.Center),
		h("Importe", 3, align.Right),
	)
}

// lineRows: una fila por línea. El importe es quantity × unitPrice, antes de impuestos.
func lineRows(lines []entity.LineItem, fmtMoney func(decimal.Decimal) string) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rate := "—"
		if !l.TaxRatePercent.IsZero() {
			rate = l.TaxRatePercent.String() + "%"
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmtMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(rate, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(fmtMoney(l.Amount()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalsRow(inv *entity.Invoice, fmtMoney func(decimal.Decimal) string) core.Row {
	taxLabel := "Impuesto (por línea):"
	if money.ComputeTotals(inv.LineItems, inv.FlatTaxPercent).Model == money.TaxModelFlat {
		taxLabel = fmt.Sprintf("Impuesto (%s%%):", inv.FlatTaxPercent.String())
	}
	label := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2})
	}
	value := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Size: size, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(5),
		col.New(4).Add(
			label("Subtotal:", 9),
			text.New(taxLabel, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 11, Color: colorPrimary}),
		),
		col.New(3).Add(
			value(fmtMoney(inv.Subtotal), 9),
			text.New(fmtMoney(inv.TaxAmount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(fmtMoney(inv.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 11, Color: colorPrimary}),
		),
	)
}

// footerRow: notas y un QR con la referencia de pago (número, total y prefijo de la huella).
func footerRow(inv *entity.Invoice, fmtMoney func(decimal.Decimal) string) core.Row {
	ref := fmt.Sprintf("%s|%s|%s", inv.InvoiceNumber, inv.Total.StringFixed(2), inv.Currency)
	paid := ""
	if fp, err := integrity.Fingerprint(inv); err == nil {
		ref += "|" + fp[:16]
	}
	if inv.PaymentDate != nil {
		paid = "Pagada el " + inv.PaymentDate.Format(dateLayout) + " por " + fmtMoney(inv.Total)
	}
	return row.New(36).Add(
		col.New(9).Add(
			text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(inv.Notes, "—"), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(paid, props.Text{Size: 8, Top: 26, Color: colorPaid}),
		),
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusColor(s entity.Status) *props.Color {
	switch s {
	case entity.StatusPaid:
		return colorPaid
	case entity.StatusOverdue:
		return colorOverdue
	}
	return colorGray
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
