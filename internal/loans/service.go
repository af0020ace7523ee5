package loans

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"locallibrary/internal/entities"
)

// ErrInstanceNotFound is returned when the requested copy does not exist.
var ErrInstanceNotFound = errors.New("book instance not found")

// InstanceStore is the persistence surface the issue workflow needs.
// Implemented by internal/database/instances.Repository.
type InstanceStore interface {
	GetInstanceByID(id string) (*entities.BookInstance, error)
	MarkOnLoan(id string, dueBack time.Time) error
}

// IssueRecorder receives the outcome of every issue attempt for the audit
// trail. A nil issueErr means the copy went out on loan.
type IssueRecorder interface {
	RecordIssue(actorID uint, instance *entities.BookInstance, dueBack time.Time, issueErr error)
}

// Service runs the two-phase issue workflow. Phase 1 proposes a due date
// for the form; phase 2 validates the submitted date and persists the
// status change. The workflow is stateless across phases: phase 2 always
// re-fetches the copy by ID.
type Service struct {
	instances InstanceStore
	recorder  IssueRecorder
	now       func() time.Time
}

// NewService creates the issue workflow service. The recorder may be nil,
// in which case issue attempts are not audited.
func NewService(instances InstanceStore, recorder IssueRecorder) *Service {
	return &Service{
		instances: instances,
		recorder:  recorder,
		now:       time.Now,
	}
}

// ProposeIssue looks up a copy for the issue form and returns it together
// with the proposed due date (today + 3 weeks). Returns
// ErrInstanceNotFound for an unknown ID.
func (s *Service) ProposeIssue(instanceID string) (*entities.BookInstance, time.Time, error) {
	instance, err := s.instances.GetInstanceByID(instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, ErrInstanceNotFound
		}
		return nil, time.Time{}, fmt.Errorf("lookup instance %s: %w", instanceID, err)
	}
	return instance, DefaultIssueDate(s.now()), nil
}

// Issue validates the submitted due date and, if acceptable, marks the
// copy as on loan with that date. The copy is re-fetched by ID so that a
// stale form cannot smuggle in client-side state.
//
// On a validation error the copy is returned alongside the error so the
// caller can re-render the form; nothing is persisted. Only a successful
// issue mutates the record, and it touches status and due_back only.
func (s *Service) Issue(instanceID string, issueDate time.Time, actorID uint) (*entities.BookInstance, error) {
	instance, err := s.instances.GetInstanceByID(instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("lookup instance %s: %w", instanceID, err)
	}

	if err := ValidateIssueDate(issueDate, s.now()); err != nil {
		if s.recorder != nil {
			s.recorder.RecordIssue(actorID, instance, issueDate, err)
		}
		return instance, err
	}

	if err := s.instances.MarkOnLoan(instanceID, issueDate); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("mark instance %s on loan: %w", instanceID, err)
	}

	instance.Status = entities.StatusOnLoan
	instance.DueBack = &issueDate

	if s.recorder != nil {
		s.recorder.RecordIssue(actorID, instance, issueDate, nil)
	}

	return instance, nil
}

// IsValidationError reports whether err is one of the two issue-date
// acceptance failures, which are recovered by re-rendering the form.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrDateInPast) || errors.Is(err, ErrDateTooFar)
}
