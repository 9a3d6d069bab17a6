package localstore_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/localstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := localstore.Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = localstore.Close(db) })
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(t time.Time) *time.Time { return &t }

func sampleInvoice(userID, id, number string) *entity.Invoice {
	issue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID:            id,
		UserID:        userID,
		InvoiceNumber: number,
		IssueDate:     issue,
		DueDate:       ptr(issue.AddDate(0, 0, 15)),
		Status:        entity.StatusSent,
		BilledTo:      entity.Party{Name: "ACME", Email: "pagos@acme.io"},
		BilledFrom:    entity.Party{Name: "Yo SAS"},
		LineItems: []entity.LineItem{
			{Description: "Horas", Quantity: 3, UnitPrice: dec("0.333"), TaxRatePercent: dec("18")},
			{CatalogItemID: "it-1", Description: "Cable", Quantity: 2, UnitPrice: dec("10.10")},
		},
		FlatTaxPercent: decimal.Zero,
		Currency:       "USD",
		Subtotal:       dec("21.199"),
		TaxAmount:      dec("0.17982"),
		Total:          dec("21.37882"),
		CreatedAt:      issue,
		UpdatedAt:      issue,
	}
}

func TestInvoiceRepo_RoundTrip(t *testing.T) {
	db := openDB(t)
	repo := localstore.NewInvoiceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleInvoice("u1", "inv-1", "INV-001")))

	got, err := repo.GetByID(ctx, "u1", "inv-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INV-001", got.InvoiceNumber)
	assert.Equal(t, entity.StatusSent, got.Status)
	assert.Equal(t, "ACME", got.BilledTo.Name)
	require.Len(t, got.LineItems, 2)
	assert.Equal(t, "Horas", got.LineItems[0].Description)
	assert.Equal(t, "it-1", got.LineItems[1].CatalogItemID)
	// Decimales exactos, sin pasar por REAL.
	assert.True(t, dec("21.37882").Equal(got.Total), got.Total.String())
	assert.True(t, dec("0.333").Equal(got.LineItems[0].UnitPrice))

	// Otro usuario no la ve.
	other, err := repo.GetByID(ctx, "u2", "inv-1")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestInvoiceRepo_IdsDeLineaPorFactura(t *testing.T) {
	db := openDB(t)
	repo := localstore.NewInvoiceRepository(db)
	ctx := context.Background()

	withLineIDs := func(inv *entity.Invoice) *entity.Invoice {
		inv.LineItems[0].ID = "1"
		inv.LineItems[1].ID = "2"
		return inv
	}
	require.NoError(t, repo.Create(ctx, withLineIDs(sampleInvoice("u1", "inv-a", "INV-001"))))
	require.NoError(t, repo.Create(ctx, withLineIDs(sampleInvoice("u1", "inv-b", "INV-002"))))
	require.NoError(t, repo.Create(ctx, withLineIDs(sampleInvoice("u2", "inv-c", "INV-001"))))

	for _, tc := range []struct{ user, id string }{{"u1", "inv-a"}, {"u1", "inv-b"}, {"u2", "inv-c"}} {
		got, err := repo.GetByID(ctx, tc.user, tc.id)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.LineItems, 2, tc.id)
		assert.Equal(t, "1", got.LineItems[0].ID)
		assert.Equal(t, "Horas", got.LineItems[0].Description)
		assert.Equal(t, "2", got.LineItems[1].ID)
	}

	// Borrar una factura no toca las líneas homónimas de las demás.
	require.NoError(t, repo.Delete(ctx, "u1", "inv-b"))
	got, err := repo.GetByID(ctx, "u1", "inv-a")
	require.NoError(t, err)
	assert.Len(t, got.LineItems, 2)
}

func TestInvoiceRepo_NumeroDuplicado(t *testing.T) {
	db := openDB(t)
	repo := localstore.NewInvoiceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleInvoice("u1", "inv-1", "INV-001")))
	err := repo.Create(ctx, sampleInvoice("u1", "inv-2", "INV-001"))
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "err = %v", err)

	// El mismo número en otro tenant es válido.
	require.NoError(t, repo.Create(ctx, sampleInvoice("u2", "inv-3", "INV-001")))

	exists, err := repo.ExistsNumber(ctx, "u1", "INV-001")
	require.NoError(t, err)
	assert.True(t, exists)

	numbers, err := repo.ListNumbers(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-001"}, numbers)
}

func TestInvoiceRepo_EstadoYBarrido(t *testing.T) {
	db := openDB(t)
	repo := localstore.NewInvoiceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleInvoice("u1", "inv-1", "INV-001")))
	paid := sampleInvoice("u1", "inv-2", "INV-002")
	paid.Status = entity.StatusPaid
	require.NoError(t, repo.Create(ctx, paid))

	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	due, err := repo.ListOpenPastDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "inv-1", due[0].ID)

	inv := due[0]
	inv.Status = entity.StatusPaid
	inv.PaymentDate = ptr(now)
	inv.UpdatedAt = now
	require.NoError(t, repo.UpdateStatus(ctx, inv))

	got, err := repo.GetByID(ctx, "u1", "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, got.Status)
	require.NotNil(t, got.PaymentDate)
	assert.True(t, now.Equal(*got.PaymentDate))

	missing := &entity.Invoice{ID: "nope", UserID: "u1", Status: entity.StatusPaid, UpdatedAt: now}
	assert.True(t, errors.Is(repo.UpdateStatus(ctx, missing), domain.ErrNotFound))
}

func TestInvoiceRepo_Delete(t *testing.T) {
	db := openDB(t)
	repo := localstore.NewInvoiceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleInvoice("u1", "inv-1", "INV-001")))
	assert.True(t, errors.Is(repo.Delete(ctx, "u2", "inv-1"), domain.ErrNotFound))
	require.NoError(t, repo.Delete(ctx, "u1", "inv-1"))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCatalogItemRepo(t *testing.T) {
	db := openDB(t)
	repo := localstore.NewCatalogItemRepository(db)
	ctx := context.Background()
	now := time.Now()

	item := &entity.CatalogItem{
		ID: "it-1", UserID: "u1", Name: "Cable", UnitPrice: dec("10.10"), CostPrice: dec("6"),
		TaxRatePercent: dec("18"), QuantityOnHand: 10, LowStockThreshold: 3, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.DeductQuantity(ctx, "u1", "it-1", 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.QuantityOnHand)
	got, err = repo.DeductQuantity(ctx, "u1", "it-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, got.QuantityOnHand)
	assert.Equal(t, 3, got.LowStockThreshold)

	// Nunca por debajo de cero.
	got, err = repo.DeductQuantity(ctx, "u1", "it-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.QuantityOnHand)

	got, err = repo.GetByID(ctx, "u1", "it-1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.QuantityOnHand)

	got.TaxRatePercent = decimal.Zero
	got.Name = "Cable UTP"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, "u1", "it-1")
	require.NoError(t, err)
	assert.Equal(t, "Cable UTP", got.Name)
	assert.True(t, got.TaxRatePercent.IsZero())

	other, err := repo.DeductQuantity(ctx, "u2", "it-1", 1)
	require.NoError(t, err)
	assert.Nil(t, other)
	require.NoError(t, repo.Delete(ctx, "u1", "it-1"))
	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserYClientRepo(t *testing.T) {
	db := openDB(t)
	users := localstore.NewUserRepository(db)
	clients := localstore.NewClientRepository(db)
	ctx := context.Background()
	now := time.Now()

	u := &entity.User{ID: "u1", Email: "a@b.co", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Create(ctx, u))
	err := users.Create(ctx, &entity.User{ID: "u2", Email: "a@b.co", PasswordHash: "h", CreatedAt: now, UpdatedAt: now})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists), "err = %v", err)

	got, err := users.GetByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	none, err := users.GetByID(ctx, "zz")
	require.NoError(t, err)
	assert.Nil(t, none)

	c := &entity.Client{ID: "c1", UserID: "u1", Name: "ACME", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, clients.Create(ctx, c))
	c.Email = "hola@acme.io"
	require.NoError(t, clients.Update(ctx, c))
	gc, err := clients.GetByID(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "hola@acme.io", gc.Email)
	assert.True(t, errors.Is(clients.Delete(ctx, "u1", "zz"), domain.ErrNotFound))
}

func TestAuditLogRepo_OrdenDescendente(t *testing.T) {
	db := openDB(t)
	repo := localstore.NewAuditLogRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(ctx, &entity.AuditLogEntry{
			ID: id, UserID: "u1", Action: entity.AuditActionCreate, EntityType: entity.EntityInvoice,
			EntityID: "inv", Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	list, err := repo.ListByUser(ctx, "u1", 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}
