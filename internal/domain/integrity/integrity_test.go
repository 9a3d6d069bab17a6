package integrity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/integrity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vector calculado con SHA-384 sobre
// "INV-001" + "2025-03-01" + "1000.00" + "180.00" + "1180.00" + "USD" + "Yo SAS" + "ACME".
const wantFingerprint = "456ac43a8a6565ce3c27690851e2b15eb925359217a6918f5a20cd31775c4e37887707a75fd6e8824609ee698b432ea2"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sample() *entity.Invoice {
	return &entity.Invoice{
		InvoiceNumber:  " INV-001 ",
		IssueDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:         entity.StatusSent,
		BilledFrom:     entity.Party{Name: "Yo SAS"},
		BilledTo:       entity.Party{Name: "ACME"},
		LineItems:      []entity.LineItem{{Description: "Horas", Quantity: 10, UnitPrice: d("100")}},
		FlatTaxPercent: d("18"),
		Currency:       "usd",
		Subtotal:       d("1000"),
		TaxAmount:      d("180"),
		Total:          d("1180"),
	}
}

func TestFingerprint_VectorConocido(t *testing.T) {
	got, err := integrity.Fingerprint(sample())
	require.NoError(t, err)
	assert.Equal(t, wantFingerprint, got)
	assert.Len(t, got, 96)
}

func TestFingerprint_NoDependeDelEstado(t *testing.T) {
	inv := sample()
	before, err := integrity.Fingerprint(inv)
	require.NoError(t, err)

	paid := time.Now()
	inv.Status = entity.StatusPaid
	inv.PaymentDate = &paid
	after, err := integrity.Fingerprint(inv)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	inv.Total = d("1180.01")
	changed, err := integrity.Fingerprint(inv)
	require.NoError(t, err)
	assert.NotEqual(t, before, changed)
}

func TestFingerprint_CamposObligatorios(t *testing.T) {
	_, err := integrity.Fingerprint(nil)
	assert.Error(t, err)

	inv := sample()
	inv.InvoiceNumber = "  "
	_, err = integrity.Fingerprint(inv)
	assert.Error(t, err)

	inv = sample()
	inv.IssueDate = time.Time{}
	_, err = integrity.Fingerprint(inv)
	assert.Error(t, err)
}

func TestVerifyTotals(t *testing.T) {
	assert.NoError(t, integrity.VerifyTotals(sample()))

	inv := sample()
	inv.TaxAmount = d("179.99")
	inv.Total = d("1179.99")
	err := integrity.VerifyTotals(inv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, integrity.ErrTotalsMismatch))
	assert.Contains(t, err.Error(), "impuesto")
	assert.Contains(t, err.Error(), "total")
	assert.NotContains(t, err.Error(), "subtotal")
}
