package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Todas las lecturas filtran por userID (partición por tenant).
type InvoiceRepository interface {
	// Create guarda la factura con sus líneas. Devuelve domain.ErrDuplicate si el
	// número ya existe para el usuario (índice único user_id + invoice_number).
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error)
	ListNumbers(ctx context.Context, userID string) ([]string, error)
	ExistsNumber(ctx context.Context, userID, number string) (bool, error)
	// UpdateStatus persiste solo status, payment_date y updated_at.
	UpdateStatus(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, userID, id string) error
	// ListOpenPastDue devuelve, para todos los usuarios, las facturas no pagadas
	// ni marcadas vencidas cuyo vencimiento es anterior a now.
	ListOpenPastDue(ctx context.Context, now time.Time) ([]*entity.Invoice, error)
	// ListOpenPastDueByUser aplica el mismo criterio solo a las facturas de userID.
	ListOpenPastDueByUser(ctx context.Context, userID string, now time.Time) ([]*entity.Invoice, error)
}
