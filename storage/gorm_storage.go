package storage

import (
	"context"
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
)

// GormStorage is the MySQL adapter.
type GormStorage struct {
	DB *gorm.DB
}

var _ Storage = (*GormStorage)(nil)

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{DB: db}
}

// isDuplicateKey detects MySQL error 1062 so unique-key violations surface as
// the domain conflict error instead of a raw driver error.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// ---------------------------
// Users
// ---------------------------

func (s *GormStorage) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *GormStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *GormStorage) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStorage) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	updates := map[string]interface{}{}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		updates["phone_number"] = *patch.PhoneNumber
	}
	if patch.ProfilePicture != nil {
		updates["profile_picture"] = *patch.ProfilePicture
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}

	var user models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ---------------------------
// Properties
// ---------------------------

func (s *GormStorage) CreateProperty(ctx context.Context, property *models.Property) error {
	if err := s.DB.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (s *GormStorage) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := s.DB.WithContext(ctx).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &property, nil
}

func (s *GormStorage) GetProperties(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	q := s.DB.WithContext(ctx).Model(&models.Property{})

	if filter.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.Neighborhood != "" {
		q = q.Where("LOWER(neighborhood) = LOWER(?)", filter.Neighborhood)
	}
	if filter.PropertyType != "" {
		q = q.Where("property_type = ?", filter.PropertyType)
	}
	if filter.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *filter.MaxPrice)
	}
	if filter.MinGuests != nil {
		q = q.Where("max_guests >= ?", *filter.MinGuests)
	}
	if filter.MinBedrooms != nil {
		q = q.Where("bedrooms >= ?", *filter.MinBedrooms)
	}

	// Without explicit approval filters only the public view is served.
	if filter.Approved == nil && filter.Active == nil {
		q = q.Where("is_approved = ? AND is_active = ?", true, true)
	} else {
		if filter.Approved != nil {
			q = q.Where("is_approved = ?", *filter.Approved)
		}
		if filter.Active != nil {
			q = q.Where("is_active = ?", *filter.Active)
		}
	}

	var properties []models.Property
	if err := q.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

func (s *GormStorage) GetPropertiesByHost(ctx context.Context, hostID uint) ([]models.Property, error) {
	var properties []models.Property
	if err := s.DB.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("list host properties: %w", err)
	}
	return properties, nil
}

func (s *GormStorage) UpdateProperty(ctx context.Context, id uint, patch models.PropertyPatch) (*models.Property, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.Neighborhood != nil {
		updates["neighborhood"] = *patch.Neighborhood
	}
	if patch.PropertyType != nil {
		updates["property_type"] = *patch.PropertyType
	}
	if patch.PricePerNight != nil {
		updates["price_per_night"] = *patch.PricePerNight
	}
	if patch.CleaningFee != nil {
		updates["cleaning_fee"] = *patch.CleaningFee
	}
	if patch.MaxGuests != nil {
		updates["max_guests"] = *patch.MaxGuests
	}
	if patch.Bedrooms != nil {
		updates["bedrooms"] = *patch.Bedrooms
	}
	if patch.Beds != nil {
		updates["beds"] = *patch.Beds
	}
	if patch.Bathrooms != nil {
		updates["bathrooms"] = *patch.Bathrooms
	}
	if patch.Amenities != nil {
		updates["amenities"] = models.JSONList(*patch.Amenities)
	}
	if patch.Images != nil {
		updates["images"] = models.JSONList(*patch.Images)
	}
	if patch.HouseRules != nil {
		updates["house_rules"] = *patch.HouseRules
	}
	if patch.CancellationPolicy != nil {
		updates["cancellation_policy"] = *patch.CancellationPolicy
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	var property models.Property
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&property).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&property, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *GormStorage) ApproveProperty(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if property.IsApproved {
			return nil
		}
		if err := tx.Model(&property).Update("is_approved", true).Error; err != nil {
			return err
		}
		property.IsApproved = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// ---------------------------
// Bookings
// ---------------------------

// CreateBooking locks the property row for the duration of the overlap scan so
// two conflicting requests on the same property serialize; exactly one wins.
func (s *GormStorage) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, booking.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		var existing []models.Booking
		if err := tx.
			Where("property_id = ? AND status <> ?", booking.PropertyID, models.BookingCanceled).
			Find(&existing).Error; err != nil {
			return err
		}
		for _, b := range existing {
			if models.Overlaps(booking.CheckInDate, booking.CheckOutDate, b.CheckInDate, b.CheckOutDate) {
				return apperrors.ErrDateConflict
			}
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
}

func (s *GormStorage) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &booking, nil
}

func (s *GormStorage) GetBookingsByGuest(ctx context.Context, guestID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list guest bookings: %w", err)
	}
	return bookings, nil
}

func (s *GormStorage) GetBookingsByProperty(ctx context.Context, propertyID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list property bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus re-reads the row under a lock and runs the caller's
// transition check against the current status, never a stale copy.
func (s *GormStorage) UpdateBookingStatus(ctx context.Context, id uint, status, paymentID string, check func(current string) error) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if check != nil {
			if err := check(booking.Status); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{"status": status}
		if paymentID != "" && status == models.BookingConfirmed {
			updates["payment_id"] = paymentID
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&booking, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ---------------------------
// Reviews
// ---------------------------

func (s *GormStorage) CreateReview(ctx context.Context, review *models.Review) error {
	if err := s.DB.WithContext(ctx).Create(review).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *GormStorage) GetReviewByBooking(ctx context.Context, bookingID uint) (*models.Review, error) {
	var review models.Review
	if err := s.DB.WithContext(ctx).Where("booking_id = ?", bookingID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get review by booking: %w", err)
	}
	return &review, nil
}

func (s *GormStorage) GetReviewsByProperty(ctx context.Context, propertyID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list property reviews: %w", err)
	}
	return reviews, nil
}

func (s *GormStorage) GetReviewsByGuest(ctx context.Context, guestID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list guest reviews: %w", err)
	}
	return reviews, nil
}

// ---------------------------
// Messages
// ---------------------------

func (s *GormStorage) CreateMessage(ctx context.Context, message *models.Message) error {
	if err := s.DB.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (s *GormStorage) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := s.DB.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &message, nil
}

func (s *GormStorage) GetConversation(ctx context.Context, userAID, userBID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := s.DB.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userAID, userBID, userBID, userAID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return messages, nil
}

func (s *GormStorage) MarkMessageRead(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&message, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if message.IsRead {
			return nil
		}
		if err := tx.Model(&message).Update("is_read", true).Error; err != nil {
			return err
		}
		message.IsRead = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ---------------------------
// Waitlist
// ---------------------------

func (s *GormStorage) AddToWaitlist(ctx context.Context, entry *models.WaitlistEntry) error {
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("add to waitlist: %w", err)
	}
	return nil
}

func (s *GormStorage) GetWaitlistEntries(ctx context.Context) ([]models.WaitlistEntry, error) {
	var entries []models.WaitlistEntry
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list waitlist entries: %w", err)
	}
	return entries, nil
}
