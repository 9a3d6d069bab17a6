// Package integrity calcula la huella de un documento de factura y verifica la coherencia
// de los totales guardados contra sus líneas.
//
// La huella es SHA-384 sobre una cadena sin separadores en orden fijo:
// Número + FechaEmisión + Subtotal + Impuesto + Total + Moneda + Emisor + Receptor.
// Los montos van sin separador de miles, con punto decimal y 2 decimales (ej: 1500.00).
package integrity

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var whitespace = regexp.MustCompile(`\s+`)

// Fingerprint devuelve la huella hexadecimal (96 caracteres) de la factura.
// Solo usa campos inmutables: cambiar el estado o la fecha de pago no la altera.
func Fingerprint(inv *entity.Invoice) (string, error) {
	if inv == nil {
		return "", fmt.Errorf("integrity: factura nil")
	}
	number := whitespace.ReplaceAllString(strings.TrimSpace(inv.InvoiceNumber), "")
	if number == "" {
		return "", fmt.Errorf("integrity: número de factura obligatorio")
	}
	if inv.IssueDate.IsZero() {
		return "", fmt.Errorf("integrity: fecha de emisión obligatoria")
	}

	chain := number +
		inv.IssueDate.Format("2006-01-02") +
		formatAmount(inv.Subtotal) +
		formatAmount(inv.TaxAmount) +
		formatAmount(inv.Total) +
		strings.ToUpper(inv.Currency) +
		strings.TrimSpace(inv.BilledFrom.Name) +
		strings.TrimSpace(inv.BilledTo.Name)

	hash := sha512.Sum384([]byte(chain))
	return hex.EncodeToString(hash[:]), nil
}

func formatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
