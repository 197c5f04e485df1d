package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

type AuthService struct {
	Store storage.Storage
}

func NewAuthService(store storage.Storage) *AuthService {
	return &AuthService{Store: store}
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string
	PhoneNumber string
	Bio         string
}

// Register creates a user with a bcrypt-hashed password. The payload may ask
// for guest or host; admin is never self-assignable.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	fields := map[string]string{}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" {
		fields["email"] = "email is required"
	}
	if len(input.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if strings.TrimSpace(input.FirstName) == "" {
		fields["firstName"] = "first name is required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields["lastName"] = "last name is required"
	}
	if input.Role == "" {
		input.Role = models.RoleGuest
	}
	if input.Role != models.RoleGuest && input.Role != models.RoleHost {
		fields["role"] = "role must be guest or host"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	if _, err := s.Store.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "Email already registered", "EMAIL_TAKEN")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:       input.Email,
		Password:    string(hash),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Role:        input.Role,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Bio:         input.Bio,
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest, "Email already registered", "EMAIL_TAKEN")
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials with a constant bcrypt comparison. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "Email and password are required", "INVALID_INPUT")
	}

	user, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest, "Invalid credentials", "INVALID_CREDENTIALS")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "Invalid credentials", "INVALID_CREDENTIALS")
	}
	return user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id uint) (*models.User, error) {
	return s.Store.GetUser(ctx, id)
}

// UpdateProfile applies the whitelisted profile fields to the caller's row.
func (s *AuthService) UpdateProfile(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	return s.Store.UpdateUser(ctx, id, patch)
}
