package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values a user can hold.
const (
	RoleGuest = "guest"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

func ValidRole(role string) bool {
	return role == RoleGuest || role == RoleHost || role == RoleAdmin
}

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	FirstName string         `gorm:"size:100" json:"firstName"`
	LastName  string         `gorm:"size:100" json:"lastName"`
	Role      string         `gorm:"size:16;default:guest" json:"role"`
	PhoneNumber    string    `gorm:"size:32" json:"phoneNumber,omitempty"`
	ProfilePicture string    `gorm:"size:512" json:"profilePicture,omitempty"`
	Bio            string    `gorm:"type:text" json:"bio,omitempty"`
	IsVerified     bool      `gorm:"default:false" json:"isVerified"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserSummary is the public slice of a user embedded in other payloads.
type UserSummary struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserPatch enumerates the profile fields a user may change about themselves.
// Email, role and password are deliberately absent.
type UserPatch struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	PhoneNumber    *string `json:"phoneNumber"`
	ProfilePicture *string `json:"profilePicture"`
	Bio            *string `json:"bio"`
}
