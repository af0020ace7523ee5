package entities

import (
	"time"
)

// InstanceStatus is the loan status of a single physical copy.
type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "available"
	StatusOnLoan      InstanceStatus = "on-loan"
	StatusMaintenance InstanceStatus = "maintenance"
	StatusReserved    InstanceStatus = "reserved"
)

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100" json:"first_name"`
	LastName    string     `gorm:"index;size:100" json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Name returns the author's display name.
func (a Author) Name() string {
	if a.FirstName == "" {
		return a.LastName
	}
	return a.FirstName + " " + a.LastName
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Books     []Book    `gorm:"many2many:book_genres;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"index;size:512" json:"title"`
	AuthorID  uint           `gorm:"index" json:"author_id"`
	Author    Author         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary   string         `gorm:"type:text" json:"summary,omitempty"`
	ISBN      string         `gorm:"index;size:20" json:"isbn,omitempty"`
	Genres    []Genre        `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	Instances []BookInstance `gorm:"foreignKey:BookID" json:"instances,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BookInstance is a single physical copy of a book, with its own loan
// status and due date. The primary key is a UUID string because copies are
// looked up from printed labels, not sequential IDs.
type BookInstance struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	BookID     uint           `gorm:"index" json:"book_id"`
	Book       Book           `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint    string         `gorm:"size:256" json:"imprint,omitempty"`
	Status     InstanceStatus `gorm:"index;size:20;default:'maintenance'" json:"status"`
	DueBack    *time.Time     `json:"due_back,omitempty"`
	BorrowerID *uint          `gorm:"index" json:"borrower_id,omitempty"`
	Borrower   *User          `gorm:"foreignKey:BorrowerID" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// IsOverdue reports whether the copy is on loan past its due date.
func (bi BookInstance) IsOverdue(now time.Time) bool {
	return bi.Status == StatusOnLoan && bi.DueBack != nil && bi.DueBack.Before(now)
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}
