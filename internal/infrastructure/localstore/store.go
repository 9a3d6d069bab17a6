// Package localstore es el almacenamiento local (SQLite vía GORM). Sirve como
// proveedor único en modo sqlite y como secundario del adaptador de respaldo.
package localstore

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open abre (o crea) la base SQLite y aplica AutoMigrate.
// path acepta DSN de SQLite, p. ej. "file:test?mode=memory&cache=shared".
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("sqlite foreign_keys: %w", err)
	}
	if err := db.AutoMigrate(
		&userModel{},
		&clientModel{},
		&catalogItemModel{},
		&invoiceModel{},
		&lineItemModel{},
		&auditLogModel{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// Close libera la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFoundIfNone(res *gorm.DB, what string) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
