// Package audit provides the loan audit trail. Events are written through
// the task queue when one is available so the request path never blocks on
// an audit insert.
package audit

import (
	"encoding/json"
	"log"
	"time"

	auditrepo "locallibrary/internal/database/audit"
	"locallibrary/internal/entities"
	"locallibrary/internal/tasks"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo       *auditrepo.Repository
	taskClient *tasks.Client
}

// NewService creates a new audit service. taskClient may be nil, in which
// case events are written directly in a background goroutine.
func NewService(repo *auditrepo.Repository, taskClient *tasks.Client) *Service {
	return &Service{repo: repo, taskClient: taskClient}
}

// Log records a generic audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// RecordIssue records the outcome of an issue attempt. Satisfies
// loans.IssueRecorder.
func (s *Service) RecordIssue(actorID uint, instance *entities.BookInstance, dueBack time.Time, issueErr error) {
	event := entities.AuditEvent{
		UserID:      actorID,
		EventType:   entities.AuditEventLoan,
		Action:      "book_issue",
		Description: "Issued \"" + instance.Book.Title + "\"",
		InstanceID:  instance.ID,
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"due_back": dueBack.Format("2006-01-02"),
		"book_id":  instance.BookID,
	}
	if mdBytes, err := json.Marshal(metadata); err == nil {
		event.Metadata = string(mdBytes)
	}

	if issueErr != nil {
		event.Status = entities.AuditStatusFailed
		event.Description = "Rejected issue of \"" + instance.Book.Title + "\""
		event.ErrorMsg = truncate(issueErr.Error(), 500)
	}

	s.dispatch(event)
}

// RecordLogin records a successful or failed login attempt.
func (s *Service) RecordLogin(userID uint, username string, loginErr error) {
	event := entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventAuth,
		Action:      "login",
		Description: "Login for " + username,
		Status:      entities.AuditStatusSuccess,
	}
	if loginErr != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(loginErr.Error(), 500)
	}

	s.dispatch(event)
}

// dispatch hands the event to the task queue, falling back to an async
// direct write when no queue is configured.
func (s *Service) dispatch(event entities.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if s.taskClient != nil {
		_, err := s.taskClient.Add(tasks.RecordAuditEventTask{Event: event}).Save()
		if err == nil {
			return
		}
		log.Printf("Failed to enqueue audit event, writing directly: %v", err)
	}

	go func() {
		if err := s.repo.LogEvent(&event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
