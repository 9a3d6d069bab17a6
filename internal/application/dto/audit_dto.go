package dto

import "time"

// AuditLogResponse entrada de bitácora en GET /api/audit-logs.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
