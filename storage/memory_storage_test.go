package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
)

func seedUser(t *testing.T, s *MemoryStorage, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "x", FirstName: "A", LastName: "B", Role: models.RoleGuest}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func seedProperty(t *testing.T, s *MemoryStorage, hostID uint) *models.Property {
	t.Helper()
	property := &models.Property{
		HostID:        hostID,
		Title:         "Test listing",
		City:          "Lagos",
		Neighborhood:  "Ikoyi",
		PropertyType:  models.PropertyEntireApartment,
		PricePerNight: 20000,
		MaxGuests:     2,
		IsApproved:    true,
		IsActive:      true,
	}
	require.NoError(t, s.CreateProperty(context.Background(), property))
	return property
}

func TestMemoryStorageUserEmailUnique(t *testing.T) {
	s := NewMemoryStorage()
	seedUser(t, s, "ada@example.com")

	err := s.CreateUser(context.Background(), &models.User{Email: "ADA@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	found, err := s.GetUserByEmail(context.Background(), "Ada@Example.Com")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", found.Email)
}

func TestMemoryStorageReturnsCopies(t *testing.T) {
	s := NewMemoryStorage()
	user := seedUser(t, s, "ada@example.com")

	got, err := s.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	got.FirstName = "Mutated"

	again, err := s.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.FirstName, "callers must not reach the stored row")
}

func TestMemoryStoragePublicFilterDefault(t *testing.T) {
	s := NewMemoryStorage()
	host := seedUser(t, s, "host@example.com")

	visible := seedProperty(t, s, host.ID)
	hidden := seedProperty(t, s, host.ID)
	off := false
	_, err := s.UpdateProperty(context.Background(), hidden.ID, models.PropertyPatch{IsActive: &off})
	require.NoError(t, err)

	listed, err := s.GetProperties(context.Background(), models.PropertyFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, visible.ID, listed[0].ID)

	// An explicit flag overrides the public default.
	active := false
	listed, err = s.GetProperties(context.Background(), models.PropertyFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, hidden.ID, listed[0].ID)
}

func TestMemoryStorageBookingOverlapGuard(t *testing.T) {
	s := NewMemoryStorage()
	host := seedUser(t, s, "host@example.com")
	guest := seedUser(t, s, "guest@example.com")
	property := seedProperty(t, s, host.ID)

	in := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)
	first := &models.Booking{PropertyID: property.ID, GuestID: guest.ID, CheckInDate: in, CheckOutDate: out, Status: models.BookingPending}
	require.NoError(t, s.CreateBooking(context.Background(), first))

	clash := &models.Booking{PropertyID: property.ID, GuestID: guest.ID, CheckInDate: in.AddDate(0, 0, 1), CheckOutDate: out.AddDate(0, 0, 1), Status: models.BookingPending}
	assert.ErrorIs(t, s.CreateBooking(context.Background(), clash), apperrors.ErrDateConflict)

	missing := &models.Booking{PropertyID: 999, GuestID: guest.ID, CheckInDate: in, CheckOutDate: out}
	assert.ErrorIs(t, s.CreateBooking(context.Background(), missing), apperrors.ErrNotFound)
}

func TestMemoryStorageUpdateBookingStatusCheck(t *testing.T) {
	s := NewMemoryStorage()
	host := seedUser(t, s, "host@example.com")
	guest := seedUser(t, s, "guest@example.com")
	property := seedProperty(t, s, host.ID)

	in := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	booking := &models.Booking{PropertyID: property.ID, GuestID: guest.ID, CheckInDate: in, CheckOutDate: in.AddDate(0, 0, 2), Status: models.BookingPending}
	require.NoError(t, s.CreateBooking(context.Background(), booking))

	// The check sees the stored status, not what the caller believes.
	var seen string
	_, err := s.UpdateBookingStatus(context.Background(), booking.ID, models.BookingConfirmed, "pay_1", func(current string) error {
		seen = current
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, seen)

	// A failing check leaves the row untouched.
	_, err = s.UpdateBookingStatus(context.Background(), booking.ID, models.BookingCanceled, "", func(string) error {
		return apperrors.ErrInvalidTransition
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	got, err := s.GetBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
	assert.Equal(t, "pay_1", got.PaymentID)
}

func TestMemoryStorageReviewUniquePerBooking(t *testing.T) {
	s := NewMemoryStorage()
	host := seedUser(t, s, "host@example.com")
	guest := seedUser(t, s, "guest@example.com")
	property := seedProperty(t, s, host.ID)

	in := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	booking := &models.Booking{PropertyID: property.ID, GuestID: guest.ID, CheckInDate: in, CheckOutDate: in.AddDate(0, 0, 2), Status: models.BookingCompleted}
	require.NoError(t, s.CreateBooking(context.Background(), booking))

	review := &models.Review{BookingID: booking.ID, PropertyID: property.ID, GuestID: guest.ID, Rating: 5}
	require.NoError(t, s.CreateReview(context.Background(), review))

	dup := &models.Review{BookingID: booking.ID, PropertyID: property.ID, GuestID: guest.ID, Rating: 1}
	assert.ErrorIs(t, s.CreateReview(context.Background(), dup), apperrors.ErrConflict)
}

func TestMemoryStorageWaitlistEmailUnique(t *testing.T) {
	s := NewMemoryStorage()

	entry := &models.WaitlistEntry{FullName: "Ada Obi", Email: "ada@example.com", City: "Lagos"}
	require.NoError(t, s.AddToWaitlist(context.Background(), entry))

	dup := &models.WaitlistEntry{FullName: "Ada Again", Email: "ADA@example.com", City: "Abuja"}
	assert.ErrorIs(t, s.AddToWaitlist(context.Background(), dup), apperrors.ErrConflict)
}
