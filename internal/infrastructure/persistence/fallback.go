package persistence

import (
	"context"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

// fallback ejecuta op contra el primario y, si falla por infraestructura
// (no por un error de dominio), repite contra el secundario.
func fallback[T any](ctx context.Context, log *logger.Logger, op string, primary, secondary func(context.Context) (T, error)) (T, error) {
	out, err := primary(ctx)
	if err == nil || domain.IsDomainError(err) || ctx.Err() != nil {
		return out, err
	}
	log.Warn().Err(err).Str("op", op).Msg("almacenamiento remoto no disponible, usando local")
	return secondary(ctx)
}

func fallbackErr(ctx context.Context, log *logger.Logger, op string, primary, secondary func(context.Context) error) error {
	_, err := fallback(ctx, log, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, primary(ctx) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, secondary(ctx) },
	)
	return err
}

// ── Facturas ──────────────────────────────────────────────────────────────────

type fallbackInvoices struct {
	primary, secondary repository.InvoiceRepository
	log                *logger.Logger
}

var _ repository.InvoiceRepository = (*fallbackInvoices)(nil)

func (f *fallbackInvoices) Create(ctx context.Context, inv *entity.Invoice) error {
	return fallbackErr(ctx, f.log, "invoice.create",
		func(ctx context.Context) error { return f.primary.Create(ctx, inv) },
		func(ctx context.Context) error { return f.secondary.Create(ctx, inv) })
}

func (f *fallbackInvoices) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	return fallback(ctx, f.log, "invoice.get",
		func(ctx context.Context) (*entity.Invoice, error) { return f.primary.GetByID(ctx, userID, id) },
		func(ctx context.Context) (*entity.Invoice, error) { return f.secondary.GetByID(ctx, userID, id) })
}

func (f *fallbackInvoices) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	return fallback(ctx, f.log, "invoice.list",
		func(ctx context.Context) ([]*entity.Invoice, error) { return f.primary.ListByUser(ctx, userID) },
		func(ctx context.Context) ([]*entity.Invoice, error) { return f.secondary.ListByUser(ctx, userID) })
}

func (f *fallbackInvoices) ListNumbers(ctx context.Context, userID string) ([]string, error) {
	return fallback(ctx, f.log, "invoice.numbers",
		func(ctx context.Context) ([]string, error) { return f.primary.ListNumbers(ctx, userID) },
		func(ctx context.Context) ([]string, error) { return f.secondary.ListNumbers(ctx, userID) })
}

func (f *fallbackInvoices) ExistsNumber(ctx context.Context, userID, number string) (bool, error) {
	return fallback(ctx, f.log, "invoice.exists_number",
		func(ctx context.Context) (bool, error) { return f.primary.ExistsNumber(ctx, userID, number) },
		func(ctx context.Context) (bool, error) { return f.secondary.ExistsNumber(ctx, userID, number) })
}

func (f *fallbackInvoices) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	return fallbackErr(ctx, f.log, "invoice.update_status",
		func(ctx context.Context) error { return f.primary.UpdateStatus(ctx, inv) },
		func(ctx context.Context) error { return f.secondary.UpdateStatus(ctx, inv) })
}

func (f *fallbackInvoices) Delete(ctx context.Context, userID, id string) error {
	return fallbackErr(ctx, f.log, "invoice.delete",
		func(ctx context.Context) error { return f.primary.Delete(ctx, userID, id) },
		func(ctx context.Context) error { return f.secondary.Delete(ctx, userID, id) })
}

func (f *fallbackInvoices) ListOpenPastDue(ctx context.Context, now time.Time) ([]*entity.Invoice, error) {
	return fallback(ctx, f.log, "invoice.past_due",
		func(ctx context.Context) ([]*entity.Invoice, error) { return f.primary.ListOpenPastDue(ctx, now) },
		func(ctx context.Context) ([]*entity.Invoice, error) { return f.secondary.ListOpenPastDue(ctx, now) })
}

func (f *fallbackInvoices) ListOpenPastDueByUser(ctx context.Context, userID string, now time.Time) ([]*entity.Invoice, error) {
	return fallback(ctx, f.log, "invoice.past_due_user",
		func(ctx context.Context) ([]*entity.Invoice, error) {
			return f.primary.ListOpenPastDueByUser(ctx, userID, now)
		},
		func(ctx context.Context) ([]*entity.Invoice, error) {
			return f.secondary.ListOpenPastDueByUser(ctx, userID, now)
		})
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type fallbackClients struct {
	primary, secondary repository.ClientRepository
	log                *logger.Logger
}

var _ repository.ClientRepository = (*fallbackClients)(nil)

func (f *fallbackClients) Create(ctx context.Context, c *entity.Client) error {
	return fallbackErr(ctx, f.log, "client.create",
		func(ctx context.Context) error { return f.primary.Create(ctx, c) },
		func(ctx context.Context) error { return f.secondary.Create(ctx, c) })
}

func (f *fallbackClients) GetByID(ctx context.Context, userID, id string) (*entity.Client, error) {
	return fallback(ctx, f.log, "client.get",
		func(ctx context.Context) (*entity.Client, error) { return f.primary.GetByID(ctx, userID, id) },
		func(ctx context.Context) (*entity.Client, error) { return f.secondary.GetByID(ctx, userID, id) })
}

func (f *fallbackClients) ListByUser(ctx context.Context, userID string) ([]*entity.Client, error) {
	return fallback(ctx, f.log, "client.list",
		func(ctx context.Context) ([]*entity.Client, error) { return f.primary.ListByUser(ctx, userID) },
		func(ctx context.Context) ([]*entity.Client, error) { return f.secondary.ListByUser(ctx, userID) })
}

func (f *fallbackClients) Update(ctx context.Context, c *entity.Client) error {
	return fallbackErr(ctx, f.log, "client.update",
		func(ctx context.Context) error { return f.primary.Update(ctx, c) },
		func(ctx context.Context) error { return f.secondary.Update(ctx, c) })
}

func (f *fallbackClients) Delete(ctx context.Context, userID, id string) error {
	return fallbackErr(ctx, f.log, "client.delete",
		func(ctx context.Context) error { return f.primary.Delete(ctx, userID, id) },
		func(ctx context.Context) error { return f.secondary.Delete(ctx, userID, id) })
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

type fallbackItems struct {
	primary, secondary repository.CatalogItemRepository
	log                *logger.Logger
}

var _ repository.CatalogItemRepository = (*fallbackItems)(nil)

func (f *fallbackItems) Create(ctx context.Context, it *entity.CatalogItem) error {
	return fallbackErr(ctx, f.log, "item.create",
		func(ctx context.Context) error { return f.primary.Create(ctx, it) },
		func(ctx context.Context) error { return f.secondary.Create(ctx, it) })
}

func (f *fallbackItems) GetByID(ctx context.Context, userID, id string) (*entity.CatalogItem, error) {
	return fallback(ctx, f.log, "item.get",
		func(ctx context.Context) (*entity.CatalogItem, error) { return f.primary.GetByID(ctx, userID, id) },
		func(ctx context.Context) (*entity.CatalogItem, error) { return f.secondary.GetByID(ctx, userID, id) })
}

func (f *fallbackItems) ListByUser(ctx context.Context, userID string) ([]*entity.CatalogItem, error) {
	return fallback(ctx, f.log, "item.list",
		func(ctx context.Context) ([]*entity.CatalogItem, error) { return f.primary.ListByUser(ctx, userID) },
		func(ctx context.Context) ([]*entity.CatalogItem, error) { return f.secondary.ListByUser(ctx, userID) })
}

func (f *fallbackItems) Update(ctx context.Context, it *entity.CatalogItem) error {
	return fallbackErr(ctx, f.log, "item.update",
		func(ctx context.Context) error { return f.primary.Update(ctx, it) },
		func(ctx context.Context) error { return f.secondary.Update(ctx, it) })
}

func (f *fallbackItems) DeductQuantity(ctx context.Context, userID, id string, qty int) (*entity.CatalogItem, error) {
	return fallback(ctx, f.log, "item.deduct_quantity",
		func(ctx context.Context) (*entity.CatalogItem, error) {
			return f.primary.DeductQuantity(ctx, userID, id, qty)
		},
		func(ctx context.Context) (*entity.CatalogItem, error) {
			return f.secondary.DeductQuantity(ctx, userID, id, qty)
		})
}

func (f *fallbackItems) Delete(ctx context.Context, userID, id string) error {
	return fallbackErr(ctx, f.log, "item.delete",
		func(ctx context.Context) error { return f.primary.Delete(ctx, userID, id) },
		func(ctx context.Context) error { return f.secondary.Delete(ctx, userID, id) })
}

// ── Usuarios y bitácora ───────────────────────────────────────────────────────

type fallbackUsers struct {
	primary, secondary repository.UserRepository
	log                *logger.Logger
}

var _ repository.UserRepository = (*fallbackUsers)(nil)

func (f *fallbackUsers) Create(ctx context.Context, u *entity.User) error {
	return fallbackErr(ctx, f.log, "user.create",
		func(ctx context.Context) error { return f.primary.Create(ctx, u) },
		func(ctx context.Context) error { return f.secondary.Create(ctx, u) })
}

func (f *fallbackUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return fallback(ctx, f.log, "user.get",
		func(ctx context.Context) (*entity.User, error) { return f.primary.GetByID(ctx, id) },
		func(ctx context.Context) (*entity.User, error) { return f.secondary.GetByID(ctx, id) })
}

func (f *fallbackUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return fallback(ctx, f.log, "user.get_by_email",
		func(ctx context.Context) (*entity.User, error) { return f.primary.GetByEmail(ctx, email) },
		func(ctx context.Context) (*entity.User, error) { return f.secondary.GetByEmail(ctx, email) })
}

type fallbackAudit struct {
	primary, secondary repository.AuditLogRepository
	log                *logger.Logger
}

var _ repository.AuditLogRepository = (*fallbackAudit)(nil)

func (f *fallbackAudit) Append(ctx context.Context, e *entity.AuditLogEntry) error {
	return fallbackErr(ctx, f.log, "audit.append",
		func(ctx context.Context) error { return f.primary.Append(ctx, e) },
		func(ctx context.Context) error { return f.secondary.Append(ctx, e) })
}

func (f *fallbackAudit) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	return fallback(ctx, f.log, "audit.list",
		func(ctx context.Context) ([]*entity.AuditLogEntry, error) {
			return f.primary.ListByUser(ctx, userID, limit, offset)
		},
		func(ctx context.Context) ([]*entity.AuditLogEntry, error) {
			return f.secondary.ListByUser(ctx, userID, limit, offset)
		})
}
