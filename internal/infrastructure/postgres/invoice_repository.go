package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, user_id, invoice_number, issue_date, due_date, status, billed_to, billed_from,
	flat_tax_percent, currency, notes, subtotal, tax_amount, total, payment_date, created_at, updated_at`

// partyDoc es la forma JSONB de la instantánea emisor/receptor.
type partyDoc struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func toPartyDoc(p entity.Party) partyDoc {
	return partyDoc{Name: p.Name, Email: p.Email, Address: p.Address, Phone: p.Phone}
}

func (d partyDoc) party() entity.Party {
	return entity.Party{Name: d.Name, Email: d.Email, Address: d.Address, Phone: d.Phone}
}

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera y las líneas en una sola transacción.
// La restricción única (user_id, invoice_number) se traduce a domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	return runInTx(ctx, r.q, func(tx pgx.Tx) error {
		query := `INSERT INTO invoices (` + invoiceColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
		_, err := tx.Exec(ctx, query,
			inv.ID, inv.UserID, inv.InvoiceNumber, inv.IssueDate, inv.DueDate, string(inv.Status),
			toPartyDoc(inv.BilledTo), toPartyDoc(inv.BilledFrom),
			inv.FlatTaxPercent, inv.Currency, nullIfEmpty(inv.Notes),
			inv.Subtotal, inv.TaxAmount, inv.Total, inv.PaymentDate, inv.CreatedAt, inv.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
			}
			return fmt.Errorf("insert invoice: %w", err)
		}

		batch := &pgx.Batch{}
		for i := range inv.LineItems {
			l := &inv.LineItems[i]
			if l.ID == "" {
				l.ID = uuid.New().String()
			}
			batch.Queue(`
				INSERT INTO invoice_line_items
				    (id, invoice_id, position, catalog_item_id, description, quantity, unit_price, tax_rate_percent, cost_price)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				l.ID, inv.ID, i, nullIfEmpty(l.CatalogItemID), l.Description, l.Quantity,
				l.UnitPrice, l.TaxRatePercent, l.CostPrice,
			)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: id de línea repetido en la factura", domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert invoice lines: %w", err)
		}
		return nil
	})
}

// GetByID obtiene una factura completa (con líneas) del usuario.
func (r *InvoiceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 AND id = $2`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListByUser lista las facturas del usuario (con líneas), más recientes primero.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY issue_date DESC, invoice_number DESC`
	list, err := r.queryInvoices(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListNumbers devuelve todos los números de factura del usuario.
func (r *InvoiceRepo) ListNumbers(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT invoice_number FROM invoices WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoice numbers: %w", err)
	}
	numbers, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan invoice numbers: %w", err)
	}
	return numbers, nil
}

// ExistsNumber indica si el número ya está usado por el usuario.
func (r *InvoiceRepo) ExistsNumber(ctx context.Context, userID, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE user_id = $1 AND invoice_number = $2)`,
		userID, number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists invoice number: %w", err)
	}
	return exists, nil
}

// UpdateStatus persiste solo status, payment_date y updated_at.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET status = $3, payment_date = $4, updated_at = $5
		WHERE user_id = $1 AND id = $2`,
		inv.UserID, inv.ID, string(inv.Status), inv.PaymentDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return expectAffected(tag, "factura")
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return expectAffected(tag, "factura")
}

// ListOpenPastDue devuelve cabeceras (sin líneas) de todos los usuarios para el barrido de vencidas.
func (r *InvoiceRepo) ListOpenPastDue(ctx context.Context, now time.Time) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE status NOT IN ('paid', 'overdue') AND due_date IS NOT NULL AND due_date < $1
		ORDER BY due_date`
	return r.queryInvoices(ctx, query, now)
}

// ListOpenPastDueByUser igual que ListOpenPastDue, limitado al usuario.
func (r *InvoiceRepo) ListOpenPastDueByUser(ctx context.Context, userID string, now time.Time) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE user_id = $1 AND status NOT IN ('paid', 'overdue') AND due_date IS NOT NULL AND due_date < $2
		ORDER BY due_date`
	return r.queryInvoices(ctx, query, userID, now)
}

func (r *InvoiceRepo) queryInvoices(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// attachLines carga las líneas de varias facturas en una sola consulta.
func (r *InvoiceRepo) attachLines(ctx context.Context, invs []*entity.Invoice) error {
	if len(invs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Invoice, len(invs))
	ids := make([]string, 0, len(invs))
	for _, inv := range invs {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT invoice_id, id, catalog_item_id, description, quantity, unit_price, tax_rate_percent, cost_price
		FROM invoice_line_items WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var invoiceID string
		var catalogID *string
		var l entity.LineItem
		if err := rows.Scan(&invoiceID, &l.ID, &catalogID, &l.Description, &l.Quantity,
			&l.UnitPrice, &l.TaxRatePercent, &l.CostPrice); err != nil {
			return fmt.Errorf("scan invoice line: %w", err)
		}
		l.CatalogItemID = derefStr(catalogID)
		if inv, ok := byID[invoiceID]; ok {
			inv.LineItems = append(inv.LineItems, l)
		}
	}
	return rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	var notes *string
	var billedTo, billedFrom partyDoc
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &status,
		&billedTo, &billedFrom, &inv.FlatTaxPercent, &inv.Currency, &notes,
		&inv.Subtotal, &inv.TaxAmount, &inv.Total, &inv.PaymentDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	// Filas legadas pueden traer "Pending" u otras variantes de mayúsculas.
	if inv.Status, err = entity.ParseStatus(status); err != nil {
		return nil, err
	}
	inv.BilledTo = billedTo.party()
	inv.BilledFrom = billedFrom.party()
	inv.Notes = derefStr(notes)
	return &inv, nil
}
