package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCanceled  = "canceled"
	BookingCompleted = "completed"
)

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCanceled, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"index;column:property_id" json:"propertyId"`
	GuestID    uint `gorm:"index;column:guest_id" json:"guestId"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"checkOutDate"`

	TotalPrice int    `json:"totalPrice"`
	Status     string `gorm:"size:16;default:pending" json:"status"`
	PaymentID  string `gorm:"column:payment_id;size:128" json:"paymentId,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
	Guest    User     `gorm:"foreignKey:GuestID;references:ID" json:"-"`
}

// Overlaps reports whether two half-open [checkIn, checkOut) ranges intersect.
// Back-to-back stays (one checkout on the other's checkin) do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Nights counts whole nights between the two dates, rounding partial days up.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	n := int(d.Hours() / 24)
	if time.Duration(n)*24*time.Hour < d {
		n++
	}
	return n
}

// BookingWithProperty is the guest-facing listing row.
type BookingWithProperty struct {
	Booking
	Property *PropertySummary `json:"property"`
}

// BookingWithDetails is the host-facing listing row.
type BookingWithDetails struct {
	Booking
	Property *PropertySummary `json:"property"`
	Guest    *UserSummary     `json:"guest"`
}
