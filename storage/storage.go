package storage

import (
	"context"

	"stayafrika-backend/models"
)

// Storage is the persistence port for the marketplace. Adapters: GormStorage
// (MySQL) for production, MemoryStorage for tests and dev runs.
//
// CreateBooking is atomic per property: the non-canceled overlap scan and the
// insert happen as one unit, so concurrent conflicting requests cannot both
// succeed. UpdateBookingStatus re-reads the current status under the same
// protection and runs the supplied transition check against it.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)

	// Properties
	CreateProperty(ctx context.Context, property *models.Property) error
	GetProperty(ctx context.Context, id uint) (*models.Property, error)
	GetProperties(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error)
	GetPropertiesByHost(ctx context.Context, hostID uint) ([]models.Property, error)
	UpdateProperty(ctx context.Context, id uint, patch models.PropertyPatch) (*models.Property, error)
	ApproveProperty(ctx context.Context, id uint) (*models.Property, error)

	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	GetBookingsByGuest(ctx context.Context, guestID uint) ([]models.Booking, error)
	GetBookingsByProperty(ctx context.Context, propertyID uint) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uint, status, paymentID string, check func(current string) error) (*models.Booking, error)

	// Reviews
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByBooking(ctx context.Context, bookingID uint) (*models.Review, error)
	GetReviewsByProperty(ctx context.Context, propertyID uint) ([]models.Review, error)
	GetReviewsByGuest(ctx context.Context, guestID uint) ([]models.Review, error)

	// Messages
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessage(ctx context.Context, id uint) (*models.Message, error)
	GetConversation(ctx context.Context, userAID, userBID uint) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, id uint) (*models.Message, error)

	// Waitlist
	AddToWaitlist(ctx context.Context, entry *models.WaitlistEntry) error
	GetWaitlistEntries(ctx context.Context) ([]models.WaitlistEntry, error)
}
