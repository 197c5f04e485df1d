package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
)

// MemoryStorage is the map-backed adapter used by tests and STORAGE=memory dev
// runs. A single mutex guards everything, which also makes CreateBooking's
// overlap-check-then-insert atomic.
type MemoryStorage struct {
	mu sync.Mutex

	users      map[uint]*models.User
	properties map[uint]*models.Property
	bookings   map[uint]*models.Booking
	reviews    map[uint]*models.Review
	messages   map[uint]*models.Message
	waitlist   map[uint]*models.WaitlistEntry

	nextUserID     uint
	nextPropertyID uint
	nextBookingID  uint
	nextReviewID   uint
	nextMessageID  uint
	nextWaitlistID uint
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:      map[uint]*models.User{},
		properties: map[uint]*models.Property{},
		bookings:   map[uint]*models.Booking{},
		reviews:    map[uint]*models.Review{},
		messages:   map[uint]*models.Message{},
		waitlist:   map[uint]*models.WaitlistEntry{},

		nextUserID:     1,
		nextPropertyID: 1,
		nextBookingID:  1,
		nextReviewID:   1,
		nextMessageID:  1,
		nextWaitlistID: 1,
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyProperty(p *models.Property) *models.Property {
	c := *p
	c.Amenities = append([]byte(nil), p.Amenities...)
	c.Images = append([]byte(nil), p.Images...)
	return &c
}

func copyBooking(b *models.Booking) *models.Booking {
	c := *b
	return &c
}

// ---------------------------
// Users
// ---------------------------

func (s *MemoryStorage) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStorage) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrConflict
		}
	}
	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now()
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryStorage) UpdateUser(_ context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.ProfilePicture != nil {
		u.ProfilePicture = *patch.ProfilePicture
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	return copyUser(u), nil
}

// ---------------------------
// Properties
// ---------------------------

func (s *MemoryStorage) CreateProperty(_ context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	property.ID = s.nextPropertyID
	s.nextPropertyID++
	property.CreatedAt = time.Now()
	s.properties[property.ID] = copyProperty(property)
	return nil
}

func (s *MemoryStorage) GetProperty(_ context.Context, id uint) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copyProperty(p), nil
}

func matchesFilter(p *models.Property, f models.PropertyFilter) bool {
	if f.City != "" && !strings.EqualFold(p.City, f.City) {
		return false
	}
	if f.Neighborhood != "" && !strings.EqualFold(p.Neighborhood, f.Neighborhood) {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.MinPrice != nil && p.PricePerNight < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.PricePerNight > *f.MaxPrice {
		return false
	}
	if f.MinGuests != nil && p.MaxGuests < *f.MinGuests {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.Approved == nil && f.Active == nil {
		return p.IsApproved && p.IsActive
	}
	if f.Approved != nil && p.IsApproved != *f.Approved {
		return false
	}
	if f.Active != nil && p.IsActive != *f.Active {
		return false
	}
	return true
}

func (s *MemoryStorage) GetProperties(_ context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Property{}
	for _, p := range s.properties {
		if matchesFilter(p, filter) {
			out = append(out, *copyProperty(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStorage) GetPropertiesByHost(_ context.Context, hostID uint) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Property{}
	for _, p := range s.properties {
		if p.HostID == hostID {
			out = append(out, *copyProperty(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStorage) UpdateProperty(_ context.Context, id uint, patch models.PropertyPatch) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.Neighborhood != nil {
		p.Neighborhood = *patch.Neighborhood
	}
	if patch.PropertyType != nil {
		p.PropertyType = *patch.PropertyType
	}
	if patch.PricePerNight != nil {
		p.PricePerNight = *patch.PricePerNight
	}
	if patch.CleaningFee != nil {
		p.CleaningFee = *patch.CleaningFee
	}
	if patch.MaxGuests != nil {
		p.MaxGuests = *patch.MaxGuests
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = *patch.Bedrooms
	}
	if patch.Beds != nil {
		p.Beds = *patch.Beds
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = *patch.Bathrooms
	}
	if patch.Amenities != nil {
		p.Amenities = models.JSONList(*patch.Amenities)
	}
	if patch.Images != nil {
		p.Images = models.JSONList(*patch.Images)
	}
	if patch.HouseRules != nil {
		p.HouseRules = *patch.HouseRules
	}
	if patch.CancellationPolicy != nil {
		p.CancellationPolicy = *patch.CancellationPolicy
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	return copyProperty(p), nil
}

func (s *MemoryStorage) ApproveProperty(_ context.Context, id uint) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	p.IsApproved = true
	return copyProperty(p), nil
}

// ---------------------------
// Bookings
// ---------------------------

func (s *MemoryStorage) CreateBooking(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[booking.PropertyID]; !ok {
		return apperrors.ErrNotFound
	}
	for _, b := range s.bookings {
		if b.PropertyID != booking.PropertyID || b.Status == models.BookingCanceled {
			continue
		}
		if models.Overlaps(booking.CheckInDate, booking.CheckOutDate, b.CheckInDate, b.CheckOutDate) {
			return apperrors.ErrDateConflict
		}
	}

	booking.ID = s.nextBookingID
	s.nextBookingID++
	booking.CreatedAt = time.Now()
	s.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (s *MemoryStorage) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copyBooking(b), nil
}

func (s *MemoryStorage) GetBookingsByGuest(_ context.Context, guestID uint) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.GuestID == guestID {
			out = append(out, *copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStorage) GetBookingsByProperty(_ context.Context, propertyID uint) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.PropertyID == propertyID {
			out = append(out, *copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStorage) UpdateBookingStatus(_ context.Context, id uint, status, paymentID string, check func(current string) error) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if check != nil {
		if err := check(b.Status); err != nil {
			return nil, err
		}
	}
	b.Status = status
	if paymentID != "" && status == models.BookingConfirmed {
		b.PaymentID = paymentID
	}
	return copyBooking(b), nil
}

// ---------------------------
// Reviews
// ---------------------------

func (s *MemoryStorage) CreateReview(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.BookingID == review.BookingID {
			return apperrors.ErrConflict
		}
	}
	review.ID = s.nextReviewID
	s.nextReviewID++
	review.CreatedAt = time.Now()
	c := *review
	s.reviews[review.ID] = &c
	return nil
}

func (s *MemoryStorage) GetReviewByBooking(_ context.Context, bookingID uint) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.BookingID == bookingID {
			c := *r
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStorage) GetReviewsByProperty(_ context.Context, propertyID uint) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.PropertyID == propertyID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStorage) GetReviewsByGuest(_ context.Context, guestID uint) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.GuestID == guestID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------------------------
// Messages
// ---------------------------

func (s *MemoryStorage) CreateMessage(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message.ID = s.nextMessageID
	s.nextMessageID++
	message.CreatedAt = time.Now()
	c := *message
	s.messages[message.ID] = &c
	return nil
}

func (s *MemoryStorage) GetMessage(_ context.Context, id uint) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (s *MemoryStorage) GetConversation(_ context.Context, userAID, userBID uint) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.messages {
		if (m.SenderID == userAID && m.ReceiverID == userBID) ||
			(m.SenderID == userBID && m.ReceiverID == userAID) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStorage) MarkMessageRead(_ context.Context, id uint) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	m.IsRead = true
	c := *m
	return &c, nil
}

// ---------------------------
// Waitlist
// ---------------------------

func (s *MemoryStorage) AddToWaitlist(_ context.Context, entry *models.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.waitlist {
		if strings.EqualFold(e.Email, entry.Email) {
			return apperrors.ErrConflict
		}
	}
	entry.ID = s.nextWaitlistID
	s.nextWaitlistID++
	entry.CreatedAt = time.Now()
	c := *entry
	s.waitlist[entry.ID] = &c
	return nil
}

func (s *MemoryStorage) GetWaitlistEntries(_ context.Context) ([]models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.WaitlistEntry{}
	for _, e := range s.waitlist {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
