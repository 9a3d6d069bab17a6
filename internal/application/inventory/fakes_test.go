package inventory_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Facturas-api/internal/application/ports"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

type fakeItems struct {
	mu        sync.Mutex
	items     map[string]*entity.CatalogItem
	failWrite map[string]bool
}

func newFakeItems(items ...*entity.CatalogItem) *fakeItems {
	f := &fakeItems{items: map[string]*entity.CatalogItem{}, failWrite: map[string]bool{}}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeItems) Create(_ context.Context, it *entity.CatalogItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f *fakeItems) GetByID(_ context.Context, userID, id string) (*entity.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItems) ListByUser(_ context.Context, userID string) ([]*entity.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.CatalogItem
	for _, it := range f.items {
		if it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeItems) Update(_ context.Context, it *entity.CatalogItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

// DeductQuantity bajo el mismo candado que el resto, como el UPDATE atómico del almacén.
func (f *fakeItems) DeductQuantity(_ context.Context, userID, id string, qty int) (*entity.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite[id] {
		return nil, errors.New("escritura rechazada")
	}
	it, ok := f.items[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	it.QuantityOnHand = max(it.QuantityOnHand-qty, 0)
	cp := *it
	return &cp, nil
}

func (f *fakeItems) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeItems) qty(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].QuantityOnHand
}

type auditCall struct {
	UserID, Action, EntityType, EntityID, Details string
}

type fakeAudit struct {
	mu    sync.Mutex
	calls []auditCall
}

func (f *fakeAudit) Record(_ context.Context, userID, action, entityType, entityID, details string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, auditCall{userID, action, entityType, entityID, details})
}

func (f *fakeAudit) actions(action string) []auditCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []auditCall
	for _, c := range f.calls {
		if c.Action == action {
			out = append(out, c)
		}
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []ports.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e ports.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Name)
	}
	return out
}
