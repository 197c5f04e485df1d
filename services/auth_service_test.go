package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

func TestAuthRegister(t *testing.T) {
	tests := []struct {
		name     string
		input    RegisterInput
		wantCode string
		wantRole string
	}{
		{
			name: "guest by default",
			input: RegisterInput{
				Email:     "ada@example.com",
				Password:  "secret123",
				FirstName: "Ada",
				LastName:  "Obi",
			},
			wantRole: models.RoleGuest,
		},
		{
			name: "explicit host",
			input: RegisterInput{
				Email:     "host@example.com",
				Password:  "secret123",
				FirstName: "Bola",
				LastName:  "Ade",
				Role:      models.RoleHost,
			},
			wantRole: models.RoleHost,
		},
		{
			name: "admin is not self-assignable",
			input: RegisterInput{
				Email:     "sneaky@example.com",
				Password:  "secret123",
				FirstName: "Sneaky",
				LastName:  "User",
				Role:      models.RoleAdmin,
			},
			wantCode: "INVALID_INPUT",
		},
		{
			name: "short password",
			input: RegisterInput{
				Email:     "short@example.com",
				Password:  "abc",
				FirstName: "Short",
				LastName:  "Pass",
			},
			wantCode: "INVALID_INPUT",
		},
		{
			name: "missing names",
			input: RegisterInput{
				Email:    "anon@example.com",
				Password: "secret123",
			},
			wantCode: "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(storage.NewMemoryStorage())
			user, err := svc.Register(context.Background(), tt.input)
			if tt.wantCode != "" {
				assertHTTPCode(t, err, 400, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.NotEqual(t, tt.input.Password, user.Password, "password must be stored hashed")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(tt.input.Password)))
		})
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(storage.NewMemoryStorage())
	input := RegisterInput{
		Email:     "ada@example.com",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Obi",
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assertHTTPCode(t, err, 400, "EMAIL_TAKEN")

	// Same address, different case.
	input.Email = "ADA@example.com"
	_, err = svc.Register(context.Background(), input)
	assertHTTPCode(t, err, 400, "EMAIL_TAKEN")
}

func TestAuthLogin(t *testing.T) {
	svc := NewAuthService(storage.NewMemoryStorage())
	registered, err := svc.Register(context.Background(), RegisterInput{
		Email:     "ada@example.com",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Unknown email and wrong password surface the same error.
	_, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	assertHTTPCode(t, err, 400, "INVALID_CREDENTIALS")

	_, err = svc.Login(context.Background(), "ada@example.com", "wrong-password")
	assertHTTPCode(t, err, 400, "INVALID_CREDENTIALS")

	_, err = svc.Login(context.Background(), "", "")
	assertHTTPCode(t, err, 400, "INVALID_INPUT")
}

func TestAuthUpdateProfile(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewAuthService(store)
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:     "ada@example.com",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	require.NoError(t, err)

	phone := "+2348012345678"
	bio := "Frequent traveler"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, models.UserPatch{
		PhoneNumber: &phone,
		Bio:         &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.PhoneNumber)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "Ada", updated.FirstName, "untouched fields survive the patch")
	assert.Equal(t, user.Email, updated.Email)
}
