package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"locallibrary/internal/entities"
)

// EventLogger persists audit events. Implemented by
// internal/database/audit.Repository.
type EventLogger interface {
	LogEvent(event *entities.AuditEvent) error
}

// RecordAuditEventTask carries one audit event to be written by a worker.
type RecordAuditEventTask struct {
	Event entities.AuditEvent `json:"event"`
}

// Config returns the queue configuration for audit-event tasks.
func (t RecordAuditEventTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "record_audit_event",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RecordAuditEventProcessor creates a processor function for
// RecordAuditEventTask.
func RecordAuditEventProcessor(logger EventLogger) backlite.QueueProcessor[RecordAuditEventTask] {
	return func(ctx context.Context, task RecordAuditEventTask) error {
		if logger == nil {
			return fmt.Errorf("audit event logger not configured")
		}
		if err := logger.LogEvent(&task.Event); err != nil {
			return fmt.Errorf("record audit event: %w", err)
		}
		return nil
	}
}

// NewRecordAuditEventQueue creates a backlite queue for audit-event tasks.
func NewRecordAuditEventQueue(logger EventLogger) backlite.Queue {
	return backlite.NewQueue(RecordAuditEventProcessor(logger))
}
