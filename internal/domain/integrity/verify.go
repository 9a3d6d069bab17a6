package integrity

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/money"
)

// ErrTotalsMismatch los totales guardados no coinciden con los recalculados desde las líneas.
var ErrTotalsMismatch = errors.New("totales de la factura inconsistentes")

// VerifyTotals recalcula subtotal, impuesto y total desde las líneas y el porcentaje plano
// y los compara de forma exacta con los guardados. Reporta todas las diferencias juntas.
func VerifyTotals(inv *entity.Invoice) error {
	if inv == nil {
		return fmt.Errorf("%w: factura nil", ErrTotalsMismatch)
	}
	want := money.ComputeTotals(inv.LineItems, inv.FlatTaxPercent)

	var errs []error
	if !inv.Subtotal.Equal(want.Subtotal) {
		errs = append(errs, fmt.Errorf("%w: subtotal %s, esperado %s", ErrTotalsMismatch, inv.Subtotal, want.Subtotal))
	}
	if !inv.TaxAmount.Equal(want.TaxAmount) {
		errs = append(errs, fmt.Errorf("%w: impuesto %s, esperado %s", ErrTotalsMismatch, inv.TaxAmount, want.TaxAmount))
	}
	if !inv.Total.Equal(want.Total) {
		errs = append(errs, fmt.Errorf("%w: total %s, esperado %s", ErrTotalsMismatch, inv.Total, want.Total))
	}
	return errors.Join(errs...)
}
