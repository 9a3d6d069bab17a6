// Package persistence elige el proveedor de almacenamiento (PostgreSQL, SQLite
// o respaldo remoto->local) y expone los repositorios ya cableados.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/localstore"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturas-api/pkg/config"
	"github.com/jhoicas/Facturas-api/pkg/logger"
	"gorm.io/gorm"
)

// Store agrupa los repositorios del proveedor activo.
type Store struct {
	Users    repository.UserRepository
	Clients  repository.ClientRepository
	Items    repository.CatalogItemRepository
	Invoices repository.InvoiceRepository
	Audit    repository.AuditLogRepository

	closers []func() error
}

// Close libera conexiones en orden inverso de apertura.
func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open construye el Store según STORAGE_DRIVER.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		return openPostgres(ctx, cfg.DB)
	case config.StorageSQLite:
		return openSQLite(cfg.Storage.SQLitePath)
	case config.StorageFallback:
		remote, err := openPostgres(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		local, err := openSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			_ = remote.Close()
			return nil, err
		}
		return NewFallbackStore(remote, local, log.WithComponent("persistence")), nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conectar a PostgreSQL: %w", err)
	}
	return &Store{
		Users:    postgres.NewUserRepository(pool),
		Clients:  postgres.NewClientRepository(pool),
		Items:    postgres.NewCatalogItemRepository(pool),
		Invoices: postgres.NewInvoiceRepository(pool),
		Audit:    postgres.NewAuditLogRepository(pool),
		closers:  []func() error{func() error { pool.Close(); return nil }},
	}, nil
}

func openSQLite(path string) (*Store, error) {
	db, err := localstore.Open(path)
	if err != nil {
		return nil, err
	}
	return NewGormStore(db), nil
}

// NewGormStore envuelve una conexión GORM ya abierta (útil en tests y en la CLI).
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:    localstore.NewUserRepository(db),
		Clients:  localstore.NewClientRepository(db),
		Items:    localstore.NewCatalogItemRepository(db),
		Invoices: localstore.NewInvoiceRepository(db),
		Audit:    localstore.NewAuditLogRepository(db),
		closers:  []func() error{func() error { return localstore.Close(db) }},
	}
}

// NewFallbackStore usa primary y cae a secondary ante errores de infraestructura.
// Los errores de dominio (no encontrado, duplicado...) se devuelven tal cual.
func NewFallbackStore(primary, secondary *Store, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		Users:    &fallbackUsers{primary: primary.Users, secondary: secondary.Users, log: log},
		Clients:  &fallbackClients{primary: primary.Clients, secondary: secondary.Clients, log: log},
		Items:    &fallbackItems{primary: primary.Items, secondary: secondary.Items, log: log},
		Invoices: &fallbackInvoices{primary: primary.Invoices, secondary: secondary.Invoices, log: log},
		Audit:    &fallbackAudit{primary: primary.Audit, secondary: secondary.Audit, log: log},
		closers:  []func() error{primary.Close, secondary.Close},
	}
}
