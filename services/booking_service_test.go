package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

func assertHTTPCode(t *testing.T, err error, status int, code string) {
	t.Helper()
	httpErr := apperrors.MapErrorToHTTP(err)
	assert.Equal(t, status, httpErr.StatusCode)
	assert.Equal(t, code, httpErr.Code)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestUser(t *testing.T, store storage.Storage, email, role string) *models.User {
	t.Helper()
	user := &models.User{
		Email:     email,
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func newTestProperty(t *testing.T, store storage.Storage, hostID uint) *models.Property {
	t.Helper()
	property := &models.Property{
		HostID:             hostID,
		Title:              "Lekki Waterfront Flat",
		Description:        "Two bedrooms with a lagoon view",
		Address:            "4 Admiralty Way",
		City:               "Lagos",
		Neighborhood:       "Lekki",
		PropertyType:       models.PropertyEntireApartment,
		PricePerNight:      25000,
		CleaningFee:        5000,
		MaxGuests:          4,
		Bedrooms:           2,
		Beds:               2,
		Bathrooms:          1,
		Amenities:          models.JSONList([]string{"wifi", "generator"}),
		Images:             models.JSONList([]string{"/uploads/flat.jpg"}),
		CancellationPolicy: models.PolicyModerate,
		IsApproved:         true,
		IsActive:           true,
	}
	require.NoError(t, store.CreateProperty(context.Background(), property))
	return property
}

func TestBookingCreateComputesTotalPrice(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)

	booking, err := svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-01"), date("2025-06-04"))
	require.NoError(t, err)

	// 3 nights at 25000 plus the 5000 cleaning fee
	assert.Equal(t, 80000, booking.TotalPrice)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.NotZero(t, booking.ID)
}

func TestBookingCreateRejectsInvalidDateRange(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"checkout before checkin", date("2025-06-04"), date("2025-06-01")},
		{"zero-length stay", date("2025-06-01"), date("2025-06-01")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), guest.ID, property.ID, tt.checkIn, tt.checkOut)
			assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
		})
	}
}

func TestBookingCreateUnknownProperty(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)

	_, err := svc.Create(context.Background(), guest.ID, 999, date("2025-06-01"), date("2025-06-04"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBookingCreateDateConflicts(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	other := newTestUser(t, store, "other@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)

	_, err := svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-01"), date("2025-06-04"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  error
	}{
		{"overlapping tail", date("2025-06-03"), date("2025-06-06"), apperrors.ErrDateConflict},
		{"fully contained", date("2025-06-02"), date("2025-06-03"), apperrors.ErrDateConflict},
		{"identical range", date("2025-06-01"), date("2025-06-04"), apperrors.ErrDateConflict},
		{"back-to-back after checkout", date("2025-06-04"), date("2025-06-06"), nil},
		{"back-to-back before checkin", date("2025-05-29"), date("2025-06-01"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), other.ID, property.ID, tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingCreateIgnoresCanceledBookings(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)

	first, err := svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-01"), date("2025-06-04"))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), guest, first.ID, models.BookingCanceled, "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-02"), date("2025-06-05"))
	assert.NoError(t, err)
}

func TestBookingConcurrentCreateOnlyOneWins(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guestA := newTestUser(t, store, "a@example.com", models.RoleGuest)
	guestB := newTestUser(t, store, "b@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, guest := range []*models.User{guestA, guestB} {
		wg.Add(1)
		go func(i int, guestID uint) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), guestID, property.ID, date("2025-06-01"), date("2025-06-04"))
		}(i, guest.ID)
	}
	wg.Wait()

	conflicts := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, apperrors.ErrDateConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, conflicts, "exactly one of the two racing bookings must fail")
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"pending to confirmed", models.BookingPending, models.BookingConfirmed, nil},
		{"pending to canceled", models.BookingPending, models.BookingCanceled, nil},
		{"confirmed to completed", models.BookingConfirmed, models.BookingCompleted, nil},
		{"confirmed to canceled", models.BookingConfirmed, models.BookingCanceled, nil},
		{"pending to completed", models.BookingPending, models.BookingCompleted, apperrors.ErrInvalidTransition},
		{"canceled is terminal", models.BookingCanceled, models.BookingConfirmed, apperrors.ErrInvalidTransition},
		{"completed is terminal", models.BookingCompleted, models.BookingCanceled, apperrors.ErrInvalidTransition},
		{"nothing re-enters pending", models.BookingConfirmed, models.BookingPending, apperrors.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			svc := NewBookingService(store)
			host := newTestUser(t, store, "host@example.com", models.RoleHost)
			guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
			property := newTestProperty(t, store, host.ID)

			booking, err := svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-01"), date("2025-06-04"))
			require.NoError(t, err)
			if tt.from != models.BookingPending {
				_, err := store.UpdateBookingStatus(context.Background(), booking.ID, tt.from, "", nil)
				require.NoError(t, err)
			}

			updated, err := svc.UpdateStatus(context.Background(), host, booking.ID, tt.to, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestBookingStatusRoleRules(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	stranger := newTestUser(t, store, "stranger@example.com", models.RoleGuest)
	otherHost := newTestUser(t, store, "other-host@example.com", models.RoleHost)
	admin := newTestUser(t, store, "admin@example.com", models.RoleAdmin)
	property := newTestProperty(t, store, host.ID)

	booking, err := svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-01"), date("2025-06-04"))
	require.NoError(t, err)

	// Guests never confirm, not even their own booking.
	_, err = svc.UpdateStatus(context.Background(), guest, booking.ID, models.BookingConfirmed, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// A host who does not own the property is just another stranger.
	_, err = svc.UpdateStatus(context.Background(), otherHost, booking.ID, models.BookingConfirmed, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.UpdateStatus(context.Background(), stranger, booking.ID, models.BookingCanceled, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.UpdateStatus(context.Background(), admin, booking.ID, models.BookingConfirmed, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
	assert.Equal(t, "pay_123", updated.PaymentID)

	// The booking guest may cancel a confirmed booking.
	updated, err = svc.UpdateStatus(context.Background(), guest, booking.ID, models.BookingCanceled, "")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCanceled, updated.Status)
}

func TestBookingUpdateStatusRejectsUnknownStatus(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)

	booking, err := svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-01"), date("2025-06-04"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), host, booking.ID, "refunded", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestBookingPaymentIDOnlyAttachedOnConfirm(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)

	booking, err := svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-01"), date("2025-06-04"))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), guest, booking.ID, models.BookingCanceled, "pay_ignored")
	require.NoError(t, err)
	assert.Empty(t, updated.PaymentID)
}

func TestBookingListForGuestAndHost(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewBookingService(store)
	host := newTestUser(t, store, "host@example.com", models.RoleHost)
	guest := newTestUser(t, store, "guest@example.com", models.RoleGuest)
	property := newTestProperty(t, store, host.ID)
	second := newTestProperty(t, store, host.ID)

	_, err := svc.Create(context.Background(), guest.ID, property.ID, date("2025-06-01"), date("2025-06-04"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), guest.ID, second.ID, date("2025-07-01"), date("2025-07-03"))
	require.NoError(t, err)

	forGuest, err := svc.ListForGuest(context.Background(), guest.ID)
	require.NoError(t, err)
	require.Len(t, forGuest, 2)
	require.NotNil(t, forGuest[0].Property)
	assert.Equal(t, property.Title, forGuest[0].Property.Title)

	forHost, err := svc.ListForHost(context.Background(), host.ID)
	require.NoError(t, err)
	require.Len(t, forHost, 2)
	require.NotNil(t, forHost[0].Guest)
	assert.Equal(t, guest.ID, forHost[0].Guest.ID)
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, models.Nights(date("2025-06-01"), date("2025-06-04")))
	assert.Equal(t, 1, models.Nights(date("2025-06-01"), date("2025-06-02")))

	// Partial days count as a full night.
	in := date("2025-06-01")
	out := date("2025-06-02").Add(6 * time.Hour)
	assert.Equal(t, 2, models.Nights(in, out))
}
