package models

import "time"

// WaitlistEntry captures a prospective user before launch. Not tied to the
// authenticated user model.
type WaitlistEntry struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	FullName              string    `gorm:"size:255" json:"fullName"`
	Email                 string    `gorm:"uniqueIndex;size:255" json:"email"`
	City                  string    `gorm:"size:100" json:"city"`
	SubscribeToNewsletter bool      `gorm:"default:false" json:"subscribeToNewsletter"`
	CreatedAt             time.Time `json:"createdAt"`
}
