package billing_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Facturas-api/internal/application/inventory"
	"github.com/jhoicas/Facturas-api/internal/application/ports"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

// ── Facturas ──────────────────────────────────────────────────────────────────

type fakeInvoices struct {
	mu             sync.Mutex
	byID           map[string]*entity.Invoice
	duplicateTimes int // cuántas veces Create simula una colisión de número
	createCalls    int
	failStatus     map[string]bool
}

func newFakeInvoices(invs ...*entity.Invoice) *fakeInvoices {
	f := &fakeInvoices{byID: map[string]*entity.Invoice{}, failStatus: map[string]bool{}}
	for _, inv := range invs {
		f.byID[inv.ID] = inv
	}
	return f
}

func (f *fakeInvoices) Create(_ context.Context, inv *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.duplicateTimes > 0 {
		f.duplicateTimes--
		return domain.ErrDuplicate
	}
	for _, other := range f.byID {
		if other.UserID == inv.UserID && other.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *inv
	f.byID[inv.ID] = &cp
	return nil
}

func (f *fakeInvoices) GetByID(_ context.Context, userID, id string) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.byID[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoices) ListByUser(_ context.Context, userID string) ([]*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range f.byID {
		if inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvoices) ListNumbers(ctx context.Context, userID string) ([]string, error) {
	invs, _ := f.ListByUser(ctx, userID)
	out := make([]string, 0, len(invs))
	for _, inv := range invs {
		out = append(out, inv.InvoiceNumber)
	}
	return out, nil
}

func (f *fakeInvoices) ExistsNumber(ctx context.Context, userID, number string) (bool, error) {
	nums, _ := f.ListNumbers(ctx, userID)
	for _, n := range nums {
		if n == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInvoices) UpdateStatus(_ context.Context, inv *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStatus[inv.ID] {
		return context.DeadlineExceeded
	}
	stored, ok := f.byID[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = inv.Status
	stored.PaymentDate = inv.PaymentDate
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (f *fakeInvoices) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv, ok := f.byID[id]; !ok || inv.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeInvoices) ListOpenPastDue(ctx context.Context, now time.Time) ([]*entity.Invoice, error) {
	return f.ListOpenPastDueByUser(ctx, "", now)
}

// ListOpenPastDueByUser con userID vacío no filtra por usuario.
func (f *fakeInvoices) ListOpenPastDueByUser(_ context.Context, userID string, now time.Time) ([]*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range f.byID {
		if userID != "" && inv.UserID != userID {
			continue
		}
		if inv.Status != entity.StatusPaid && inv.Status != entity.StatusOverdue &&
			inv.DueDate != nil && inv.DueDate.Before(now) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvoices) get(id string) *entity.Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// ── Clientes y catálogo ───────────────────────────────────────────────────────

type fakeClients struct {
	byID map[string]*entity.Client
}

func newFakeClients(cs ...*entity.Client) *fakeClients {
	f := &fakeClients{byID: map[string]*entity.Client{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeClients) Create(_ context.Context, c *entity.Client) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeClients) GetByID(_ context.Context, userID, id string) (*entity.Client, error) {
	c, ok := f.byID[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClients) ListByUser(_ context.Context, userID string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range f.byID {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeClients) Update(_ context.Context, c *entity.Client) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeClients) Delete(_ context.Context, _, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeItems struct {
	byID map[string]*entity.CatalogItem
}

func (f *fakeItems) Create(context.Context, *entity.CatalogItem) error { return nil }
func (f *fakeItems) GetByID(_ context.Context, userID, id string) (*entity.CatalogItem, error) {
	it, ok := f.byID[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}
func (f *fakeItems) ListByUser(context.Context, string) ([]*entity.CatalogItem, error) {
	return nil, nil
}
func (f *fakeItems) Update(context.Context, *entity.CatalogItem) error { return nil }
func (f *fakeItems) DeductQuantity(context.Context, string, string, int) (*entity.CatalogItem, error) {
	return nil, nil
}
func (f *fakeItems) Delete(context.Context, string, string) error { return nil }

// ── Efectos secundarios ───────────────────────────────────────────────────────

type fakeStock struct {
	dispatched []*entity.Invoice
}

func (f *fakeStock) Dispatch(_ context.Context, _ string, inv *entity.Invoice) *inventory.Dispatch {
	f.dispatched = append(f.dispatched, inv)
	return nil
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _, action, _, _, _ string) {
	f.actions = append(f.actions, action)
}

type fakePublisher struct {
	events []ports.Event
}

func (f *fakePublisher) Publish(_ context.Context, e ports.Event) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) names() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Name)
	}
	return out
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateUser(userID string) {
	f.invalidated = append(f.invalidated, userID)
}
