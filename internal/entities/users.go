package entities

import (
	"time"
)

// UserRole controls what a signed-in user may do. Members borrow books,
// librarians additionally issue copies to borrowers.
type UserRole string

const (
	UserRoleMember    UserRole = "member"
	UserRoleLibrarian UserRole = "librarian"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Role         UserRole  `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsLibrarian reports whether the user holds the librarian role.
func (u User) IsLibrarian() bool {
	return u.Role == UserRoleLibrarian
}
