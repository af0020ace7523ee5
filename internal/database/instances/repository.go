// Package instances provides database operations for book copies and their
// loan state.
//
// This package implements the stores consumed by internal/loans and the
// borrowed-books listing in internal/http.
//
// # Usage
//
//	repo := instances.NewRepository(db)
//	copy, err := repo.GetInstanceByID(id)
package instances

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"locallibrary/internal/entities"
)

// Repository handles all book-instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateInstance registers a new physical copy of a book. The copy gets a
// fresh UUID and starts in maintenance until a librarian shelves it.
func (r *Repository) CreateInstance(bookID uint, imprint string, status entities.InstanceStatus) (*entities.BookInstance, error) {
	if status == "" {
		status = entities.StatusMaintenance
	}
	instance := &entities.BookInstance{
		ID:      uuid.NewString(),
		BookID:  bookID,
		Imprint: imprint,
		Status:  status,
	}
	if err := r.db.Create(instance).Error; err != nil {
		return nil, err
	}
	return instance, nil
}

// GetInstanceByID retrieves a copy with its book and the book's author.
// Returns gorm.ErrRecordNotFound if no such copy exists.
func (r *Repository) GetInstanceByID(id string) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.Preload("Book").Preload("Book.Author").
		Where("id = ?", id).First(&instance).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// GetLoansForBorrower returns the copies currently on loan to a user,
// soonest due first, with pagination.
func (r *Repository) GetLoansForBorrower(userID uint, limit, offset int) ([]entities.BookInstance, int64, error) {
	var loans []entities.BookInstance
	var total int64

	counted := r.db.Model(&entities.BookInstance{}).
		Where("borrower_id = ? AND status = ?", userID, entities.StatusOnLoan)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.Preload("Book").Preload("Book.Author").
		Where("borrower_id = ? AND status = ?", userID, entities.StatusOnLoan).
		Order("due_back ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	err := q.Find(&loans).Error
	return loans, total, err
}

// MarkOnLoan flips a copy to on-loan with the given due date. Only the
// status and due_back columns are touched; a concurrent issue of the same
// copy is last-write-wins. Returns gorm.ErrRecordNotFound if the copy
// disappeared between lookup and update.
func (r *Repository) MarkOnLoan(id string, dueBack time.Time) error {
	result := r.db.Model(&entities.BookInstance{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   entities.StatusOnLoan,
			"due_back": dueBack,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetBorrower assigns or clears the borrower of a copy. Used by staff when
// a copy changes hands outside the issue workflow.
func (r *Repository) SetBorrower(id string, borrowerID *uint) error {
	result := r.db.Model(&entities.BookInstance{}).
		Where("id = ?", id).
		Update("borrower_id", borrowerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountInstances returns the total number of copies.
func (r *Repository) CountInstances() (int64, error) {
	var count int64
	err := r.db.Model(&entities.BookInstance{}).Count(&count).Error
	return count, err
}

// CountInstancesByStatus returns the number of copies with the exact status.
func (r *Repository) CountInstancesByStatus(status entities.InstanceStatus) (int64, error) {
	var count int64
	err := r.db.Model(&entities.BookInstance{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}
