package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BookingID  uint `gorm:"uniqueIndex;column:booking_id" json:"bookingId"`
	PropertyID uint `gorm:"index;column:property_id" json:"propertyId"`
	GuestID    uint `gorm:"index;column:guest_id" json:"guestId"`

	Rating  int    `json:"rating"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ReviewWithGuest attaches the reviewer's public profile.
type ReviewWithGuest struct {
	Review
	Guest *UserSummary `json:"guest"`
}
