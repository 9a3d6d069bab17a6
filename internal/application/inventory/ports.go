package inventory

import (
	"context"
)

// AuditRecorder puerto hacia la bitácora (implementado por audit.Recorder).
type AuditRecorder interface {
	Record(ctx context.Context, userID, action, entityType, entityID, details string)
}
