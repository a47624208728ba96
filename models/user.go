package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of caller roles. Guest is never stored; it is the
// role of an unauthenticated viewer.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	FirstName    string    `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName     string    `json:"last_name" db:"last_name" gorm:"type:text;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Role         Role      `json:"role" db:"role" gorm:"type:text;not null;default:'user'"`
	DateJoined   time.Time `json:"date_joined" db:"date_joined" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
