package services

import (
	"context"
	"fmt"
	"time"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

// BookingService owns the booking lifecycle: date validation, pricing, the
// availability check, and the status state machine.
type BookingService struct {
	Store storage.Storage
}

func NewBookingService(store storage.Storage) *BookingService {
	return &BookingService{Store: store}
}

// allowedTransitions is the full status state machine. completed and canceled
// are terminal.
var allowedTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCanceled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCanceled},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TotalPrice computes the derived booking price. The client-supplied value is
// never trusted.
func TotalPrice(property *models.Property, checkIn, checkOut time.Time) int {
	return property.PricePerNight*models.Nights(checkIn, checkOut) + property.CleaningFee
}

// Create validates the date range before anything else, then delegates the
// overlap check and insert to the storage port as one atomic unit.
func (s *BookingService) Create(ctx context.Context, guestID, propertyID uint, checkIn, checkOut time.Time) (*models.Booking, error) {
	if !checkIn.Before(checkOut) {
		return nil, apperrors.ErrInvalidDateRange
	}

	property, err := s.Store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		PropertyID:   propertyID,
		GuestID:      guestID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   TotalPrice(property, checkIn, checkOut),
		Status:       models.BookingPending,
	}
	if err := s.Store.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateStatus enforces the transition table and the per-transition role
// rules. The current status is re-read by the store at the moment of the
// check, never taken from the caller.
func (s *BookingService) UpdateStatus(ctx context.Context, caller *models.User, bookingID uint, status, paymentID string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, status)
	}

	booking, err := s.Store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	property, err := s.Store.GetProperty(ctx, booking.PropertyID)
	if err != nil {
		return nil, err
	}

	isAdmin := caller.Role == models.RoleAdmin
	isOwningHost := property.HostID == caller.ID
	isBookingGuest := booking.GuestID == caller.ID

	switch status {
	case models.BookingConfirmed, models.BookingCompleted:
		if !isOwningHost && !isAdmin {
			return nil, apperrors.ErrForbidden
		}
	case models.BookingCanceled:
		if !isBookingGuest && !isOwningHost && !isAdmin {
			return nil, apperrors.ErrForbidden
		}
	case models.BookingPending:
		// no transition re-enters pending
		return nil, apperrors.ErrInvalidTransition
	}

	return s.Store.UpdateBookingStatus(ctx, bookingID, status, paymentID, func(current string) error {
		if !transitionAllowed(current, status) {
			return apperrors.ErrInvalidTransition
		}
		return nil
	})
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	return s.Store.GetBooking(ctx, id)
}

// ListForGuest returns the guest's bookings with an embedded property summary.
func (s *BookingService) ListForGuest(ctx context.Context, guestID uint) ([]models.BookingWithProperty, error) {
	bookings, err := s.Store.GetBookingsByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	out := make([]models.BookingWithProperty, 0, len(bookings))
	for _, b := range bookings {
		row := models.BookingWithProperty{Booking: b}
		if property, err := s.Store.GetProperty(ctx, b.PropertyID); err == nil {
			row.Property = &models.PropertySummary{
				ID:            property.ID,
				Title:         property.Title,
				Images:        property.Images,
				PricePerNight: property.PricePerNight,
				Neighborhood:  property.Neighborhood,
				City:          property.City,
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// ListForHost returns bookings across all of the host's properties, each with
// property and guest summaries.
func (s *BookingService) ListForHost(ctx context.Context, hostID uint) ([]models.BookingWithDetails, error) {
	properties, err := s.Store.GetPropertiesByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}

	out := []models.BookingWithDetails{}
	for _, property := range properties {
		bookings, err := s.Store.GetBookingsByProperty(ctx, property.ID)
		if err != nil {
			return nil, err
		}
		summary := models.PropertySummary{
			ID:     property.ID,
			Title:  property.Title,
			Images: property.Images,
		}
		for _, b := range bookings {
			row := models.BookingWithDetails{Booking: b, Property: &summary}
			if guest, err := s.Store.GetUser(ctx, b.GuestID); err == nil {
				g := guest.Summary()
				row.Guest = &g
			}
			out = append(out, row)
		}
	}
	return out, nil
}
