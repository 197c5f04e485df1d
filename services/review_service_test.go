package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

func completedBooking(t *testing.T, store storage.Storage, guestID, propertyID uint) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		PropertyID:   propertyID,
		GuestID:      guestID,
		CheckInDate:  date("2025-04-01"),
		CheckOutDate: date("2025-04-05"),
		Status:       models.BookingPending,
	}
	require.NoError(t, store.CreateBooking(context.Background(), booking))
	updated, err := store.UpdateBookingStatus(context.Background(), booking.ID, models.BookingCompleted, "", nil)
	require.NoError(t, err)
	return updated
}

func TestReviewCreate(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewReviewService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)
	booking := completedBooking(t, store, guest.ID, property.ID)

	review, err := svc.Create(context.Background(), guest, booking.ID, 5, "Spotless and quiet")
	require.NoError(t, err)
	assert.Equal(t, booking.ID, review.BookingID)
	assert.Equal(t, property.ID, review.PropertyID)
	assert.Equal(t, guest.ID, review.GuestID)
}

func TestReviewRatingRange(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewReviewService(store)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(context.Background(), guest, 1, rating, "")
		assertHTTPCode(t, err, 400, "INVALID_INPUT")
	}
}

func TestReviewOnlyBookingGuest(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewReviewService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	other := newTestUser(t, store, "other@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)
	booking := completedBooking(t, store, guest.ID, property.ID)

	_, err := svc.Create(context.Background(), other, booking.ID, 4, "")
	assertHTTPCode(t, err, 403, "FORBIDDEN")

	// A missing booking reads the same as someone else's booking.
	_, err = svc.Create(context.Background(), guest, 999, 4, "")
	assertHTTPCode(t, err, 403, "FORBIDDEN")
}

func TestReviewRequiresCompletedStay(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewReviewService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)

	for _, status := range []string{models.BookingPending, models.BookingConfirmed, models.BookingCanceled} {
		booking := &models.Booking{
			PropertyID:   property.ID,
			GuestID:      guest.ID,
			CheckInDate:  date("2025-04-01"),
			CheckOutDate: date("2025-04-05"),
			Status:       models.BookingPending,
		}
		require.NoError(t, store.CreateBooking(context.Background(), booking))
		if status != models.BookingPending {
			_, err := store.UpdateBookingStatus(context.Background(), booking.ID, status, "", nil)
			require.NoError(t, err)
		}

		_, err := svc.Create(context.Background(), guest, booking.ID, 4, "")
		assertHTTPCode(t, err, 400, "INVALID_STATE")

		// Clear the slot for the next status.
		_, err = store.UpdateBookingStatus(context.Background(), booking.ID, models.BookingCanceled, "", nil)
		require.NoError(t, err)
	}
}

func TestReviewOnePerBooking(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewReviewService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)
	booking := completedBooking(t, store, guest.ID, property.ID)

	_, err := svc.Create(context.Background(), guest, booking.ID, 5, "first")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), guest, booking.ID, 3, "second")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestReviewForProperty(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewReviewService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)
	booking := completedBooking(t, store, guest.ID, property.ID)

	_, err := svc.Create(context.Background(), guest, booking.ID, 5, "Lovely")
	require.NoError(t, err)

	reviews, err := svc.ForProperty(context.Background(), property.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Guest)
	assert.Equal(t, guest.FirstName, reviews[0].Guest.FirstName)

	empty, err := svc.ForProperty(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
