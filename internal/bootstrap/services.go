// Package bootstrap arma los casos de uso a partir de la configuración.
// Lo comparten el servidor HTTP y la CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/application/analytics"
	"github.com/jhoicas/Facturas-api/internal/application/audit"
	"github.com/jhoicas/Facturas-api/internal/application/auth"
	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/application/inventory"
	"github.com/jhoicas/Facturas-api/internal/application/ports"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/events"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Facturas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Facturas-api/pkg/config"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

// Services casos de uso listos para usar.
type Services struct {
	Store     *persistence.Store
	Publisher ports.EventPublisher

	Audit     *audit.Recorder
	Auth      *auth.AuthUseCase
	Clients   *billing.ClientUseCase
	Invoices  *billing.InvoiceUseCase
	Documents *billing.DocumentUseCase
	Catalog   *inventory.CatalogUseCase
	Dashboard *analytics.DashboardUseCase
}

// Build abre la persistencia y el publicador de eventos y construye los casos de uso.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, error) {
	store, err := persistence.Open(ctx, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("persistencia: %w", err)
	}
	publisher, err := events.NewPublisher(cfg.Events, log)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("eventos: %w", err)
	}
	return Wire(cfg, store, publisher, log), nil
}

// Wire construye los casos de uso sobre un store y un publicador ya abiertos.
func Wire(cfg *config.Config, store *persistence.Store, publisher ports.EventPublisher, log *logger.Logger) *Services {
	recorder := audit.NewRecorder(store.Audit, log)
	catalogUC := inventory.NewCatalogUseCase(store.Items, recorder)
	// El tablero cuenta el inventario bajo y a la vez invalida su caché tras cada mutación.
	dashboardUC := analytics.NewDashboardUseCase(store.Invoices, catalogUC, cfg.Analytics.CacheSize, cfg.Analytics.CacheTTL)
	stock := inventory.NewStockProcessor(store.Items, recorder, publisher, log, cfg.Inventory.Workers, cfg.Inventory.Timeout)

	invoiceUC := billing.NewInvoiceUseCase(
		store.Invoices, store.Clients, store.Items,
		stock, recorder, publisher, dashboardUC, log,
		billing.Config{
			DefaultCurrency: cfg.Billing.DefaultCurrency,
			Locale:          cfg.Billing.Locale,
			NumberRetries:   cfg.Billing.NumberRetries,
		},
	)
	documentUC := billing.NewDocumentUseCase(invoiceUC, infrapdf.NewMarotoPDFGenerator(), export.NewUBLExporter(), cfg.Billing.Locale)

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	return &Services{
		Store:     store,
		Publisher: publisher,
		Audit:     recorder,
		Auth:      authUC,
		Clients:   billing.NewClientUseCase(store.Clients, recorder),
		Invoices:  invoiceUC,
		Documents: documentUC,
		Catalog:   catalogUC,
		Dashboard: dashboardUC,
	}
}

// Close cierra el publicador y la persistencia.
func (s *Services) Close() error {
	return errors.Join(s.Publisher.Close(), s.Store.Close())
}
