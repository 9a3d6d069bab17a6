package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/application/ports"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/lifecycle"
	"github.com/jhoicas/Facturas-api/internal/domain/money"
	"github.com/jhoicas/Facturas-api/internal/domain/numbering"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// Config valores por defecto de facturación.
type Config struct {
	DefaultCurrency string
	Locale          string
	NumberRetries   int
}

// InvoiceUseCase casos de uso de facturas: creación, consulta, transiciones de estado y barrido.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	clients   repository.ClientRepository
	items     repository.CatalogItemRepository
	stock     StockProcessor
	audit     AuditRecorder
	publisher ports.EventPublisher
	cache     CacheInvalidator
	log       *logger.Logger
	cfg       Config
	now       func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	items repository.CatalogItemRepository,
	stock StockProcessor,
	audit AuditRecorder,
	publisher ports.EventPublisher,
	cache CacheInvalidator,
	log *logger.Logger,
	cfg Config,
) *InvoiceUseCase {
	if cfg.NumberRetries < 1 {
		cfg.NumberRetries = 1
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}
	return &InvoiceUseCase{
		invoices:  invoices,
		clients:   clients,
		items:     items,
		stock:     stock,
		audit:     audit,
		publisher: publisher,
		cache:     cache,
		log:       log.WithComponent("billing"),
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests y CLI).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// ── Creación ──────────────────────────────────────────────────────────────────

// CreateInvoice valida el borrador, calcula totales, asigna o valida el número,
// persiste la factura y despacha los descuentos de existencias sin esperarlos.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := uc.now()

	status := entity.StatusDraft
	if strings.TrimSpace(in.Status) != "" {
		st, err := entity.ParseStatus(in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if st != entity.StatusDraft && st != entity.StatusSent {
			return nil, fmt.Errorf("%w: una factura nueva solo puede ser draft o sent", domain.ErrInvalidInput)
		}
		status = st
	}

	billedTo, err := uc.resolveBilledTo(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	issue := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if in.IssueDate != "" {
		if issue, err = parseDate(in.IssueDate, now.Location()); err != nil {
			return nil, fmt.Errorf("%w: issue_date: %v", domain.ErrInvalidInput, err)
		}
	}
	var due *time.Time
	if in.DueDate != "" {
		d, err := parseDate(in.DueDate, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: due_date: %v", domain.ErrInvalidInput, err)
		}
		if d.Before(issue) {
			return nil, fmt.Errorf("%w: due_date anterior a issue_date", domain.ErrInvalidInput)
		}
		due = &d
	}

	if err := money.ValidatePercent(in.FlatTaxPercent); err != nil {
		return nil, err
	}
	lines, err := uc.buildLines(ctx, userID, in.LineItems)
	if err != nil {
		return nil, err
	}
	if err := money.ValidateLines(lines); err != nil {
		return nil, err
	}
	totals := money.ComputeTotals(lines, in.FlatTaxPercent)

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = uc.cfg.DefaultCurrency
	}

	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		UserID:         userID,
		IssueDate:      issue,
		DueDate:        due,
		Status:         status,
		BilledTo:       billedTo,
		BilledFrom:     partyFromDTO(in.BilledFrom),
		LineItems:      lines,
		FlatTaxPercent: in.FlatTaxPercent,
		Currency:       currency,
		Notes:          in.Notes,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.persistWithNumber(ctx, inv, strings.TrimSpace(in.InvoiceNumber)); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("user_id", userID).
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("total", inv.Total.String()).
		Msg("factura creada")

	uc.audit.Record(ctx, userID, entity.AuditActionCreate, entity.EntityInvoice, inv.ID,
		fmt.Sprintf("%s por %s %s", inv.InvoiceNumber, inv.Total.StringFixed(2), inv.Currency))
	uc.emit(ctx, ports.EventInvoiceCreated, inv)
	if inv.Status == entity.StatusSent {
		uc.emit(ctx, ports.EventInvoiceSent, inv)
	}
	uc.cache.InvalidateUser(userID)
	uc.stock.Dispatch(ctx, userID, inv)

	return uc.toResponse(inv), nil
}

// persistWithNumber guarda la factura. Con número explícito lo valida una vez;
// sin él asigna el siguiente y reintenta si el almacén lo rechaza como duplicado.
func (uc *InvoiceUseCase) persistWithNumber(ctx context.Context, inv *entity.Invoice, requested string) error {
	if requested != "" {
		exists, err := uc.invoices.ExistsNumber(ctx, inv.UserID, requested)
		if err != nil {
			return fmt.Errorf("verificar número: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: el número %s ya existe", domain.ErrDuplicate, requested)
		}
		inv.InvoiceNumber = requested
		return uc.invoices.Create(ctx, inv)
	}

	var lastErr error
	for attempt := 1; attempt <= uc.cfg.NumberRetries; attempt++ {
		numbers, err := uc.invoices.ListNumbers(ctx, inv.UserID)
		if err != nil {
			return fmt.Errorf("listar números: %w", err)
		}
		inv.InvoiceNumber = numbering.Next(numbers)
		lastErr = uc.invoices.Create(ctx, inv)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, domain.ErrDuplicate) {
			return lastErr
		}
		uc.log.Warn().
			Str("user_id", inv.UserID).
			Str("invoice_number", inv.InvoiceNumber).
			Int("attempt", attempt).
			Msg("número de factura tomado por otra petición, reintentando")
	}
	return lastErr
}

func (uc *InvoiceUseCase) resolveBilledTo(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (entity.Party, error) {
	if in.BilledTo != nil && strings.TrimSpace(in.BilledTo.Name) != "" {
		return partyFromDTO(*in.BilledTo), nil
	}
	if in.ClientID == "" {
		return entity.Party{}, fmt.Errorf("%w: se requiere client_id o billed_to.name", domain.ErrInvalidInput)
	}
	c, err := uc.clients.GetByID(ctx, userID, in.ClientID)
	if err != nil {
		return entity.Party{}, err
	}
	if c == nil {
		return entity.Party{}, fmt.Errorf("cliente %s: %w", in.ClientID, domain.ErrNotFound)
	}
	return c.Snapshot(), nil
}

// buildLines convierte las líneas recibidas; las que referencian el catálogo heredan
// descripción, precio, tasa y costo cuando no vienen informados.
func (uc *InvoiceUseCase) buildLines(ctx context.Context, userID string, in []dto.LineItemRequest) ([]entity.LineItem, error) {
	lines := make([]entity.LineItem, 0, len(in))
	for i, l := range in {
		line := entity.LineItem{
			ID:            strings.TrimSpace(l.ID),
			CatalogItemID: strings.TrimSpace(l.CatalogItemID),
			Description:   strings.TrimSpace(l.Description),
			Quantity:      l.Quantity,
		}
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		if line.CatalogItemID != "" {
			item, err := uc.items.GetByID(ctx, userID, line.CatalogItemID)
			if err != nil {
				return nil, err
			}
			if item == nil {
				return nil, fmt.Errorf("línea %d: artículo %s: %w", i+1, line.CatalogItemID, domain.ErrNotFound)
			}
			if line.Description == "" {
				line.Description = item.Name
			}
			line.UnitPrice = item.UnitPrice
			line.TaxRatePercent = item.TaxRatePercent
			line.CostPrice = item.CostPrice
		}
		if l.UnitPrice != nil {
			line.UnitPrice = *l.UnitPrice
		}
		if l.TaxRatePercent != nil {
			line.TaxRatePercent = *l.TaxRatePercent
		}
		if l.CostPrice != nil {
			line.CostPrice = *l.CostPrice
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// ── Consulta ──────────────────────────────────────────────────────────────────

// GetInvoice obtiene una factura del usuario.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv), nil
}

// ListInvoices lista las facturas del usuario, más recientes primero.
// status filtra por estado efectivo (misma regla que la analítica); q busca en número y cliente.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, userID, status, q string) ([]*dto.InvoiceResponse, error) {
	var want entity.Status
	if s := strings.TrimSpace(status); s != "" && !strings.EqualFold(s, "all") {
		st, err := entity.ParseStatus(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		want = st
	}
	q = strings.ToLower(strings.TrimSpace(q))

	invs, err := uc.invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(invs, func(i, j int) bool {
		if !invs[i].IssueDate.Equal(invs[j].IssueDate) {
			return invs[i].IssueDate.After(invs[j].IssueDate)
		}
		return invs[i].CreatedAt.After(invs[j].CreatedAt)
	})

	now := uc.now()
	out := make([]*dto.InvoiceResponse, 0, len(invs))
	for _, inv := range invs {
		if want != "" && lifecycle.EffectiveStatus(inv, now) != want {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(inv.InvoiceNumber), q) &&
			!strings.Contains(strings.ToLower(inv.BilledTo.Name), q) {
			continue
		}
		out = append(out, uc.toResponse(inv))
	}
	return out, nil
}

// NextNumber devuelve el número que recibiría la próxima factura sin número explícito.
func (uc *InvoiceUseCase) NextNumber(ctx context.Context, userID string) (string, error) {
	numbers, err := uc.invoices.ListNumbers(ctx, userID)
	if err != nil {
		return "", err
	}
	return numbering.Next(numbers), nil
}

// GetEntity devuelve la entidad y su estado efectivo (documentos PDF/XML).
func (uc *InvoiceUseCase) GetEntity(ctx context.Context, userID, id string) (*entity.Invoice, entity.Status, error) {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	return inv, lifecycle.EffectiveStatus(inv, uc.now()), nil
}

// ── Transiciones ──────────────────────────────────────────────────────────────

// MarkSent pasa un borrador a enviada.
func (uc *InvoiceUseCase) MarkSent(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckTransition(inv.Status, entity.StatusSent); err != nil {
		return nil, err
	}
	prev := inv.Status
	inv.Status = entity.StatusSent
	inv.UpdatedAt = uc.now()
	if err := uc.invoices.UpdateStatus(ctx, inv); err != nil {
		return nil, err
	}
	uc.afterTransition(ctx, inv, prev, ports.EventInvoiceSent)
	return uc.toResponse(inv), nil
}

// MarkPaid marca la factura como pagada. Sin fecha de pago se usa el instante actual.
// Una factura pagada no admite más transiciones.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, userID, id string, paymentDate *time.Time) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckTransition(inv.Status, entity.StatusPaid); err != nil {
		return nil, err
	}
	now := uc.now()
	paid := now
	if paymentDate != nil {
		paid = *paymentDate
	}
	prev := inv.Status
	inv.Status = entity.StatusPaid
	inv.PaymentDate = &paid
	inv.UpdatedAt = now
	if err := uc.invoices.UpdateStatus(ctx, inv); err != nil {
		return nil, err
	}
	uc.afterTransition(ctx, inv, prev, ports.EventInvoicePaid)
	return uc.toResponse(inv), nil
}

// DeleteInvoice elimina una factura. Solo se permiten borradores; las existencias
// descontadas al crearla no se reponen.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, userID, id string) error {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return err
	}
	if inv.Status != entity.StatusDraft {
		return fmt.Errorf("%w: solo se pueden eliminar borradores (estado %s)", domain.ErrConflict, inv.Status)
	}
	if err := uc.invoices.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, entity.EntityInvoice, id, inv.InvoiceNumber)
	uc.cache.InvalidateUser(userID)
	return nil
}

// SweepOverdue persiste el estado overdue en las facturas no pagadas de todos los
// usuarios con vencimiento anterior a now. Es el proceso batch opcional de operación
// (invoicectl); la lectura no depende de él.
// Devuelve cuántas facturas se actualizaron. Un fallo en una factura no detiene las demás.
func (uc *InvoiceUseCase) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	candidates, err := uc.invoices.ListOpenPastDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("barrido de vencidas: %w", err)
	}
	return uc.markOverdue(ctx, candidates, now)
}

// SweepOverdueForUser aplica el mismo barrido solo a las facturas de userID,
// con el reloj del caso de uso.
func (uc *InvoiceUseCase) SweepOverdueForUser(ctx context.Context, userID string) (int, error) {
	now := uc.now()
	candidates, err := uc.invoices.ListOpenPastDueByUser(ctx, userID, now)
	if err != nil {
		return 0, fmt.Errorf("barrido de vencidas: %w", err)
	}
	return uc.markOverdue(ctx, candidates, now)
}

func (uc *InvoiceUseCase) markOverdue(ctx context.Context, candidates []*entity.Invoice, now time.Time) (int, error) {
	updated := 0
	for _, inv := range lifecycle.SweepOverdue(candidates, now) {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		prev := inv.Status
		inv.Status = entity.StatusOverdue
		inv.UpdatedAt = now
		if err := uc.invoices.UpdateStatus(ctx, inv); err != nil {
			uc.log.Error().Err(err).
				Str("user_id", inv.UserID).
				Str("invoice_id", inv.ID).
				Msg("no se pudo marcar la factura como vencida")
			continue
		}
		updated++
		uc.afterTransition(ctx, inv, prev, ports.EventInvoiceOverdue)
	}
	uc.log.Info().Int("updated", updated).Int("candidates", len(candidates)).Msg("barrido de vencidas terminado")
	return updated, nil
}

func (uc *InvoiceUseCase) afterTransition(ctx context.Context, inv *entity.Invoice, prev entity.Status, event string) {
	uc.audit.Record(ctx, inv.UserID, entity.AuditActionStatusChange, entity.EntityInvoice, inv.ID,
		fmt.Sprintf("%s: %s → %s", inv.InvoiceNumber, prev, inv.Status))
	uc.emit(ctx, event, inv)
	uc.cache.InvalidateUser(inv.UserID)
}

func (uc *InvoiceUseCase) emit(ctx context.Context, name string, inv *entity.Invoice) {
	ev := ports.Event{
		Name:       name,
		UserID:     inv.UserID,
		EntityID:   inv.ID,
		OccurredAt: uc.now(),
		Payload: map[string]any{
			"invoice_number": inv.InvoiceNumber,
			"status":         string(inv.Status),
			"total":          inv.Total.String(),
			"currency":       inv.Currency,
		},
	}
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).
			Str("event", name).
			Str("invoice_id", inv.ID).
			Msg("no se pudo publicar el evento")
	}
}

func (uc *InvoiceUseCase) load(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// ParsePaymentDate acepta YYYY-MM-DD o RFC3339; vacío = nil (ahora).
func ParsePaymentDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: payment_date inválida %q", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
}
