package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditrepo "locallibrary/internal/database/audit"
	"locallibrary/internal/entities"
	"locallibrary/internal/loans"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditrepo.NewRepository(db)
	svc := NewService(repo, nil)

	return svc, db
}

// waitForEvent polls until the async write lands.
func waitForEvent(t *testing.T, db *gorm.DB) entities.AuditEvent {
	t.Helper()

	var saved entities.AuditEvent
	require.Eventually(t, func() bool {
		return db.First(&saved).Error == nil
	}, 2*time.Second, 10*time.Millisecond, "audit event was not written")
	return saved
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		UserID:      1,
		EventType:   entities.AuditEventLoan,
		Action:      "book_issue",
		Description: "Test loan event",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "book_issue", saved.Action)
}

func TestService_RecordIssue_Success(t *testing.T) {
	svc, db := setupTestService(t)

	instance := &entities.BookInstance{
		ID:     "copy-1",
		BookID: 3,
		Book:   entities.Book{Title: "Emma"},
	}
	due := time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC)

	svc.RecordIssue(42, instance, due, nil)

	saved := waitForEvent(t, db)
	assert.Equal(t, uint(42), saved.UserID)
	assert.Equal(t, entities.AuditEventLoan, saved.EventType)
	assert.Equal(t, "book_issue", saved.Action)
	assert.Equal(t, "copy-1", saved.InstanceID)
	assert.Equal(t, entities.AuditStatusSuccess, saved.Status)
	assert.Contains(t, saved.Metadata, "2024-03-22")
	assert.Contains(t, saved.Description, "Emma")
}

func TestService_RecordIssue_Rejected(t *testing.T) {
	svc, db := setupTestService(t)

	instance := &entities.BookInstance{
		ID:     "copy-1",
		BookID: 3,
		Book:   entities.Book{Title: "Emma"},
	}
	due := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	svc.RecordIssue(42, instance, due, loans.ErrDateInPast)

	saved := waitForEvent(t, db)
	assert.Equal(t, entities.AuditStatusFailed, saved.Status)
	assert.NotEmpty(t, saved.ErrorMsg)
}

func TestService_RecordLogin(t *testing.T) {
	svc, db := setupTestService(t)

	svc.RecordLogin(7, "alice", nil)

	saved := waitForEvent(t, db)
	assert.Equal(t, uint(7), saved.UserID)
	assert.Equal(t, entities.AuditEventAuth, saved.EventType)
	assert.Equal(t, "login", saved.Action)
	assert.Equal(t, entities.AuditStatusSuccess, saved.Status)
	assert.Contains(t, saved.Description, "alice")
}
