package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	SenderID   uint  `gorm:"index;column:sender_id" json:"senderId"`
	ReceiverID uint  `gorm:"index;column:receiver_id" json:"receiverId"`
	BookingID  *uint `gorm:"column:booking_id" json:"bookingId,omitempty"`

	Content string `gorm:"type:text" json:"content"`
	IsRead  bool   `gorm:"default:false" json:"isRead"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
