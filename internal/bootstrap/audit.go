package bootstrap

import "context"

// AuditLog is a lifecycle event of the process itself (start, shutdown).
// Admin actions on attendance data go to the activity log instead.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

const (
	AuditServerStart    = "SERVER_START"
	AuditServerShutdown = "SERVER_SHUTDOWN"
)
