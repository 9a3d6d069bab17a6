package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Facturas-api/internal/application/ports"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/inventory"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/jhoicas/Facturas-api/pkg/logger"
	"github.com/sourcegraph/conc/pool"
)

// ItemResult resultado del descuento de un artículo.
type ItemResult struct {
	CatalogItemID string
	Quantity      int // unidades descontadas (suma de las líneas del artículo)
	NewQuantity   int
	LowStock      bool
	Err           error
}

// Dispatch lote de descuentos en curso de una factura.
type Dispatch struct {
	done    chan struct{}
	mu      sync.Mutex
	results []ItemResult
}

// Wait bloquea hasta que terminan todas las tareas del lote y devuelve sus resultados.
// La creación de la factura no llama a Wait.
func (d *Dispatch) Wait() []ItemResult {
	<-d.done
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ItemResult, len(d.results))
	copy(out, d.results)
	return out
}

func (d *Dispatch) add(r ItemResult) {
	d.mu.Lock()
	d.results = append(d.results, r)
	d.mu.Unlock()
}

// StockProcessor aplica los descuentos de existencias al crear una factura.
// Cada artículo es una tarea independiente en un pool acotado; un fallo en un artículo
// no afecta a los demás ni a la factura, y solo se registra en el log.
type StockProcessor struct {
	items     repository.CatalogItemRepository
	audit     AuditRecorder
	publisher ports.EventPublisher
	log       *logger.Logger
	workers   int
	timeout   time.Duration
}

// NewStockProcessor construye el procesador.
func NewStockProcessor(
	items repository.CatalogItemRepository,
	audit AuditRecorder,
	publisher ports.EventPublisher,
	log *logger.Logger,
	workers int,
	timeout time.Duration,
) *StockProcessor {
	if workers < 1 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StockProcessor{
		items:     items,
		audit:     audit,
		publisher: publisher,
		log:       log.WithComponent("stock"),
		workers:   workers,
		timeout:   timeout,
	}
}

// Dispatch lanza el descuento de existencias de la factura y retorna sin esperar.
// El trabajo se desacopla del contexto de la petición: cancelar la petición no
// cancela ni revierte los descuentos ya despachados.
func (p *StockProcessor) Dispatch(ctx context.Context, userID string, inv *entity.Invoice) *Dispatch {
	d := &Dispatch{done: make(chan struct{})}

	// Cantidades agregadas por artículo; las líneas de texto libre se omiten.
	order := make([]string, 0, len(inv.LineItems))
	qty := make(map[string]int, len(inv.LineItems))
	for _, l := range inv.LineItems {
		if l.CatalogItemID == "" || l.Quantity <= 0 {
			continue
		}
		if _, seen := qty[l.CatalogItemID]; !seen {
			order = append(order, l.CatalogItemID)
		}
		qty[l.CatalogItemID] += l.Quantity
	}
	if len(order) == 0 {
		close(d.done)
		return d
	}

	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	wp := pool.New().WithMaxGoroutines(p.workers)

	go func() {
		defer close(d.done)
		defer cancel()
		for _, itemID := range order {
			itemID, n := itemID, qty[itemID]
			wp.Go(func() {
				d.add(p.deduct(bg, userID, inv, itemID, n))
			})
		}
		wp.Wait()
	}()
	return d
}

func (p *StockProcessor) deduct(ctx context.Context, userID string, inv *entity.Invoice, itemID string, qty int) (res ItemResult) {
	res = ItemResult{CatalogItemID: itemID, Quantity: qty}
	log := p.log.With().
		Str("user_id", userID).
		Str("invoice_id", inv.ID).
		Str("item_id", itemID).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic descontando existencias: %v", r)
		}
		if res.Err != nil {
			log.Error().Err(res.Err).Int("quantity", qty).Msg("descuento de existencias fallido")
		}
	}()

	// Leer y escribir por separado perdería descuentos de facturas simultáneas.
	item, err := p.items.DeductQuantity(ctx, userID, itemID, qty)
	if err != nil {
		res.Err = fmt.Errorf("descontar existencia: %w", err)
		return res
	}
	if item == nil {
		res.Err = fmt.Errorf("artículo %s: %w", itemID, domain.ErrNotFound)
		return res
	}

	res.NewQuantity = item.QuantityOnHand
	res.LowStock = inventory.IsLowStock(item)
	log.Debug().Int("deducted", qty).Int("to", item.QuantityOnHand).Msg("existencia descontada")

	if res.LowStock {
		details := fmt.Sprintf("%s: existencia %d (umbral %d) por factura %s",
			item.Name, item.QuantityOnHand, item.LowStockThreshold, inv.InvoiceNumber)
		p.audit.Record(ctx, userID, entity.AuditActionLowStock, entity.EntityCatalogItem, itemID, details)
		ev := ports.Event{
			Name:       ports.EventStockLow,
			UserID:     userID,
			EntityID:   itemID,
			OccurredAt: time.Now(),
			Payload: map[string]any{
				"name":       item.Name,
				"quantity":   item.QuantityOnHand,
				"threshold":  item.LowStockThreshold,
				"invoice_id": inv.ID,
			},
		}
		if err := p.publisher.Publish(ctx, ev); err != nil {
			log.Warn().Err(err).Str("event", ev.Name).Msg("no se pudo publicar el evento")
		}
	}
	return res
}
