package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

type WaitlistService struct {
	Store storage.Storage
}

func NewWaitlistService(store storage.Storage) *WaitlistService {
	return &WaitlistService{Store: store}
}

// Join captures a prospective user, one entry per email.
func (s *WaitlistService) Join(ctx context.Context, fullName, email, city string, newsletter bool) (*models.WaitlistEntry, error) {
	fields := map[string]string{}
	if strings.TrimSpace(fullName) == "" {
		fields["fullName"] = "full name is required"
	}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "email is required"
	}
	if strings.TrimSpace(city) == "" {
		fields["city"] = "city is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	entry := &models.WaitlistEntry{
		FullName:              strings.TrimSpace(fullName),
		Email:                 strings.TrimSpace(email),
		City:                  strings.TrimSpace(city),
		SubscribeToNewsletter: newsletter,
	}
	if err := s.Store.AddToWaitlist(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest, "Email already registered in waitlist", "CONFLICT")
		}
		return nil, err
	}
	return entry, nil
}

func (s *WaitlistService) Entries(ctx context.Context) ([]models.WaitlistEntry, error) {
	return s.Store.GetWaitlistEntries(ctx)
}
