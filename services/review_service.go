package services

import (
	"context"
	"errors"
	"net/http"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

type ReviewService struct {
	Store storage.Storage
}

func NewReviewService(store storage.Storage) *ReviewService {
	return &ReviewService{Store: store}
}

// Create appends a review for a completed booking. One review per booking:
// the service checks first and the storage adapters reject a concurrent
// duplicate on the booking's unique index.
func (s *ReviewService) Create(ctx context.Context, caller *models.User, bookingID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validation(map[string]string{"rating": "rating must be between 1 and 5"})
	}

	booking, err := s.Store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHTTPError(http.StatusForbidden, "You can only review properties you've booked", "FORBIDDEN")
		}
		return nil, err
	}
	if booking.GuestID != caller.ID {
		return nil, apperrors.NewHTTPError(http.StatusForbidden, "You can only review properties you've booked", "FORBIDDEN")
	}
	if booking.Status != models.BookingCompleted {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "You can only review completed stays", "INVALID_STATE")
	}
	if _, err := s.Store.GetReviewByBooking(ctx, bookingID); err == nil {
		return nil, apperrors.ErrConflict
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		BookingID:  bookingID,
		PropertyID: booking.PropertyID,
		GuestID:    caller.ID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.Store.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ForProperty lists a property's reviews with reviewer summaries.
func (s *ReviewService) ForProperty(ctx context.Context, propertyID uint) ([]models.ReviewWithGuest, error) {
	reviews, err := s.Store.GetReviewsByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	out := make([]models.ReviewWithGuest, 0, len(reviews))
	for _, r := range reviews {
		row := models.ReviewWithGuest{Review: r}
		if guest, err := s.Store.GetUser(ctx, r.GuestID); err == nil {
			g := guest.Summary()
			row.Guest = &g
		}
		out = append(out, row)
	}
	return out, nil
}
