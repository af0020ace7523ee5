package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locallibrary/internal/entities"
)

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	// The queue lives in its own database next to the main one
	tasksDBPath := filepath.Join(tmpDir, "library-tasks.db")
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

type capturingLogger struct {
	events chan entities.AuditEvent
}

func (l *capturingLogger) LogEvent(event *entities.AuditEvent) error {
	l.events <- *event
	return nil
}

func TestRecordAuditEventTask_Processed(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	logger := &capturingLogger{events: make(chan entities.AuditEvent, 1)}
	client.Register(NewRecordAuditEventQueue(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(RecordAuditEventTask{Event: entities.AuditEvent{
		UserID:     7,
		EventType:  entities.AuditEventLoan,
		Action:     "book_issue",
		InstanceID: "copy-1",
		Status:     entities.AuditStatusSuccess,
	}}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case event := <-logger.events:
		assert.Equal(t, uint(7), event.UserID)
		assert.Equal(t, "copy-1", event.InstanceID)
	case <-time.After(5 * time.Second):
		t.Fatal("audit event was not written within timeout")
	}
}

func TestRecordAuditEventTaskConfig(t *testing.T) {
	cfg := RecordAuditEventTask{}.Config()

	assert.Equal(t, "record_audit_event", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.NotNil(t, cfg.Retention)
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{}.Config()

	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}
