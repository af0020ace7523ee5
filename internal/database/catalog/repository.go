// Package catalog provides database operations for books, authors and genres.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	books, err := repo.GetAllBooks()
package catalog

import (
	"strings"

	"gorm.io/gorm"

	"locallibrary/internal/entities"
)

// likeEscaper neutralizes LIKE metacharacters so user input matches
// literally instead of acting as a wildcard pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllBooks returns every book with its author and genres preloaded.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Preload("Genres").Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book with its author, genres and copies.
// Returns gorm.ErrRecordNotFound if no such book exists.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genres").
		Preload("Instances", func(db *gorm.DB) *gorm.DB {
			return db.Order("status ASC, due_back ASC")
		}).
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// SearchBooksByTitle returns books whose title contains the query as a
// case-insensitive substring, with pagination. An empty query matches
// every book.
func (r *Repository) SearchBooksByTitle(query string, limit, offset int) ([]entities.Book, int64, error) {
	var books []entities.Book
	var total int64

	pattern := "%" + likeEscaper.Replace(query) + "%"
	counted := r.db.Model(&entities.Book{}).Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, pattern)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.Preload("Author").Preload("Genres").
		Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, pattern).
		Order("title ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	err := q.Find(&books).Error
	return books, total, err
}

// CountBooks returns the total number of books in the catalog.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// CountAuthors returns the total number of authors.
func (r *Repository) CountAuthors() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Count(&count).Error
	return count, err
}
