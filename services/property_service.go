package services

import (
	"context"
	"strings"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/models"
	"stayafrika-backend/storage"
)

type PropertyService struct {
	Store storage.Storage
}

func NewPropertyService(store storage.Storage) *PropertyService {
	return &PropertyService{Store: store}
}

type CreatePropertyInput struct {
	Title              string
	Description        string
	Address            string
	City               string
	Neighborhood       string
	PropertyType       string
	PricePerNight      int
	CleaningFee        int
	MaxGuests          int
	Bedrooms           int
	Beds               int
	Bathrooms          int
	Amenities          []string
	Images             []string
	HouseRules         string
	CancellationPolicy string
}

// PropertyDetail is the public detail payload: listing plus host summary,
// reviews and average rating.
type PropertyDetail struct {
	models.Property
	Host      *models.UserSummary      `json:"host"`
	Reviews   []models.ReviewWithGuest `json:"reviews"`
	AvgRating float64                  `json:"avgRating"`
}

// Create registers a new listing for the host. Listings always start
// unapproved; only the approve operation flips that.
func (s *PropertyService) Create(ctx context.Context, hostID uint, input CreatePropertyInput) (*models.Property, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(input.Address) == "" {
		fields["address"] = "address is required"
	}
	if strings.TrimSpace(input.Neighborhood) == "" {
		fields["neighborhood"] = "neighborhood is required"
	}
	if !models.ValidPropertyType(input.PropertyType) {
		fields["propertyType"] = "propertyType must be entire_apartment, private_room or shared_space"
	}
	if input.PricePerNight <= 0 {
		fields["pricePerNight"] = "pricePerNight must be positive"
	}
	if input.CleaningFee < 0 {
		fields["cleaningFee"] = "cleaningFee cannot be negative"
	}
	if input.MaxGuests <= 0 {
		fields["maxGuests"] = "maxGuests must be positive"
	}
	if input.Bedrooms < 0 || input.Beds < 0 || input.Bathrooms < 0 {
		fields["capacity"] = "bedrooms, beds and bathrooms cannot be negative"
	}
	if input.CancellationPolicy == "" {
		input.CancellationPolicy = models.PolicyModerate
	}
	if !models.ValidCancellationPolicy(input.CancellationPolicy) {
		fields["cancellationPolicy"] = "cancellationPolicy must be flexible, moderate or strict"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	if strings.TrimSpace(input.City) == "" {
		input.City = "Lagos"
	}

	property := &models.Property{
		HostID:             hostID,
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		Address:            input.Address,
		City:               input.City,
		Neighborhood:       input.Neighborhood,
		PropertyType:       input.PropertyType,
		PricePerNight:      input.PricePerNight,
		CleaningFee:        input.CleaningFee,
		MaxGuests:          input.MaxGuests,
		Bedrooms:           input.Bedrooms,
		Beds:               input.Beds,
		Bathrooms:          input.Bathrooms,
		Amenities:          models.JSONList(input.Amenities),
		Images:             models.JSONList(input.Images),
		HouseRules:         input.HouseRules,
		CancellationPolicy: input.CancellationPolicy,
		IsApproved:         false,
		IsActive:           true,
	}
	if err := s.Store.CreateProperty(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// Update applies a patch to a listing. Only the owning host or an admin may
// mutate it.
func (s *PropertyService) Update(ctx context.Context, caller *models.User, id uint, patch models.PropertyPatch) (*models.Property, error) {
	property, err := s.Store.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.HostID != caller.ID && caller.Role != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	fields := map[string]string{}
	if patch.PropertyType != nil && !models.ValidPropertyType(*patch.PropertyType) {
		fields["propertyType"] = "propertyType must be entire_apartment, private_room or shared_space"
	}
	if patch.CancellationPolicy != nil && !models.ValidCancellationPolicy(*patch.CancellationPolicy) {
		fields["cancellationPolicy"] = "cancellationPolicy must be flexible, moderate or strict"
	}
	if patch.PricePerNight != nil && *patch.PricePerNight <= 0 {
		fields["pricePerNight"] = "pricePerNight must be positive"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	return s.Store.UpdateProperty(ctx, id, patch)
}

// Approve is the admin-only one-way gate; approving an approved listing is a
// no-op.
func (s *PropertyService) Approve(ctx context.Context, id uint) (*models.Property, error) {
	return s.Store.ApproveProperty(ctx, id)
}

// List serves the catalog. Non-admin callers always get the public
// approved-and-active view regardless of the filter they send.
func (s *PropertyService) List(ctx context.Context, filter models.PropertyFilter, isAdmin bool) ([]models.Property, error) {
	if !isAdmin {
		filter.Approved = nil
		filter.Active = nil
	}
	return s.Store.GetProperties(ctx, filter)
}

func (s *PropertyService) ByHost(ctx context.Context, hostID uint) ([]models.Property, error) {
	return s.Store.GetPropertiesByHost(ctx, hostID)
}

func (s *PropertyService) Get(ctx context.Context, id uint) (*models.Property, error) {
	return s.Store.GetProperty(ctx, id)
}

// Detail embeds the host summary, reviews and the average rating.
func (s *PropertyService) Detail(ctx context.Context, id uint) (*PropertyDetail, error) {
	property, err := s.Store.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &PropertyDetail{Property: *property, Reviews: []models.ReviewWithGuest{}}

	if host, err := s.Store.GetUser(ctx, property.HostID); err == nil {
		h := host.Summary()
		detail.Host = &h
	}

	reviews, err := s.Store.GetReviewsByProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, r := range reviews {
		row := models.ReviewWithGuest{Review: r}
		if guest, err := s.Store.GetUser(ctx, r.GuestID); err == nil {
			g := guest.Summary()
			row.Guest = &g
		}
		detail.Reviews = append(detail.Reviews, row)
		total += r.Rating
	}
	if len(reviews) > 0 {
		detail.AvgRating = float64(total) / float64(len(reviews))
	}
	return detail, nil
}
