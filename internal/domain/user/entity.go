// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a customer signed in with Google
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	GoogleID      string    `gorm:"uniqueIndex;not null;size:255" json:"googleId"`
	Email         string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	GivenName     string    `gorm:"size:100" json:"given_name"`
	FamilyName    string    `gorm:"size:100" json:"family_name"`
	Picture       string    `gorm:"size:500" json:"picture"`
	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	LastLogin     time.Time `json:"lastLogin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeSave keeps emails lower-case
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// GetDisplayName returns the name, or the email when no name is known
func (u *User) GetDisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}

// Brief is the short user view returned when verifying a token
type Brief struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Brief returns the short view of the user
func (u *User) Brief() Brief {
	return Brief{ID: u.ID, Email: u.Email, Name: u.Name}
}
