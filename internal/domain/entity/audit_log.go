package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditActionCreate       = "create"
	AuditActionUpdate       = "update"
	AuditActionDelete       = "delete"
	AuditActionStatusChange = "status_change"
	AuditActionRestock      = "restock"
	AuditActionLowStock     = "low_stock"
)

// Tipos de entidad auditados.
const (
	EntityInvoice     = "invoice"
	EntityClient      = "client"
	EntityCatalogItem = "catalog_item"
)

// AuditLogEntry es una entrada de bitácora: solo se agrega, nunca se modifica ni se borra.
type AuditLogEntry struct {
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Details    string
	Timestamp  time.Time
}
