package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

type InvoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

func orderedLines(db *gorm.DB) *gorm.DB { return db.Order("position") }

// Create guarda cabecera y líneas (GORM crea la asociación en la misma transacción).
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	for i := range inv.LineItems {
		if inv.LineItems[i].ID == "" {
			inv.LineItems[i].ID = uuid.New().String()
		}
	}
	if err := r.db.WithContext(ctx).Create(toInvoiceModel(inv)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	var m invoiceModel
	err := r.db.WithContext(ctx).Preload("LineItems", orderedLines).
		Where("user_id = ? AND id = ?", userID, id).First(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return m.toEntity()
}

func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	var ms []invoiceModel
	err := r.db.WithContext(ctx).Preload("LineItems", orderedLines).
		Where("user_id = ?", userID).
		Order("issue_date DESC, invoice_number DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return toEntities(ms)
}

func (r *InvoiceRepo) ListNumbers(ctx context.Context, userID string) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&invoiceModel{}).
		Where("user_id = ?", userID).Pluck("invoice_number", &numbers).Error
	if err != nil {
		return nil, fmt.Errorf("list invoice numbers: %w", err)
	}
	return numbers, nil
}

func (r *InvoiceRepo) ExistsNumber(ctx context.Context, userID, number string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&invoiceModel{}).
		Where("user_id = ? AND invoice_number = ?", userID, number).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("exists invoice number: %w", err)
	}
	return n > 0, nil
}

// UpdateStatus escribe payment_date aunque sea NULL (por eso el mapa y no el struct).
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	res := r.db.WithContext(ctx).Model(&invoiceModel{}).
		Where("user_id = ? AND id = ?", inv.UserID, inv.ID).
		Updates(map[string]any{
			"status":       string(inv.Status),
			"payment_date": utcPtr(inv.PaymentDate),
			"updated_at":   inv.UpdatedAt.UTC(),
		})
	if err := notFoundIfNone(res, "factura"); err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&invoiceModel{})
		if err := notFoundIfNone(res, "factura"); err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&lineItemModel{}).Error; err != nil {
			return fmt.Errorf("delete invoice lines: %w", err)
		}
		return nil
	})
}

// ListOpenPastDue compara en UTC: todas las fechas se guardan normalizadas a UTC.
func (r *InvoiceRepo) ListOpenPastDue(ctx context.Context, now time.Time) ([]*entity.Invoice, error) {
	return r.listPastDue(r.db.WithContext(ctx), now)
}

func (r *InvoiceRepo) ListOpenPastDueByUser(ctx context.Context, userID string, now time.Time) ([]*entity.Invoice, error) {
	return r.listPastDue(r.db.WithContext(ctx).Where("user_id = ?", userID), now)
}

func (r *InvoiceRepo) listPastDue(q *gorm.DB, now time.Time) ([]*entity.Invoice, error) {
	var ms []invoiceModel
	err := q.
		Where("status NOT IN ? AND due_date IS NOT NULL AND due_date < ?",
			[]string{string(entity.StatusPaid), string(entity.StatusOverdue)}, now.UTC()).
		Order("due_date").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("list past due invoices: %w", err)
	}
	return toEntities(ms)
}

func toEntities(ms []invoiceModel) ([]*entity.Invoice, error) {
	list := make([]*entity.Invoice, 0, len(ms))
	for i := range ms {
		inv, err := ms[i].toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, nil
}
