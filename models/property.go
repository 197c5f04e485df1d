package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JSONList marshals a string slice into the JSON column representation.
func JSONList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}

// Property types.
const (
	PropertyEntireApartment = "entire_apartment"
	PropertyPrivateRoom     = "private_room"
	PropertySharedSpace     = "shared_space"
)

// Cancellation policies.
const (
	PolicyFlexible = "flexible"
	PolicyModerate = "moderate"
	PolicyStrict   = "strict"
)

func ValidPropertyType(t string) bool {
	return t == PropertyEntireApartment || t == PropertyPrivateRoom || t == PropertySharedSpace
}

func ValidCancellationPolicy(p string) bool {
	return p == PolicyFlexible || p == PolicyModerate || p == PolicyStrict
}

type Property struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	HostID uint `gorm:"index;column:host_id" json:"hostId"`

	Title        string `gorm:"size:255" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Address      string `gorm:"size:512" json:"address"`
	City         string `gorm:"size:100;default:Lagos" json:"city"`
	Neighborhood string `gorm:"size:100" json:"neighborhood"`
	PropertyType string `gorm:"size:32" json:"propertyType"`

	PricePerNight int `json:"pricePerNight"`
	CleaningFee   int `gorm:"default:0" json:"cleaningFee"`
	MaxGuests     int `json:"maxGuests"`
	Bedrooms      int `json:"bedrooms"`
	Beds          int `json:"beds"`
	Bathrooms     int `json:"bathrooms"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities"`
	Images    datatypes.JSON `gorm:"column:images" json:"images"`

	HouseRules         string `gorm:"type:text" json:"houseRules,omitempty"`
	CancellationPolicy string `gorm:"size:16;default:moderate" json:"cancellationPolicy"`

	IsApproved bool `gorm:"default:false" json:"isApproved"`
	IsActive   bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Host User `gorm:"foreignKey:HostID;references:ID" json:"-"`
}

// PropertySummary is the slice of a property embedded in booking payloads.
type PropertySummary struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Images        datatypes.JSON `json:"images"`
	PricePerNight int            `json:"pricePerNight,omitempty"`
	Neighborhood  string         `json:"neighborhood,omitempty"`
	City          string         `json:"city,omitempty"`
}

// PropertyPatch enumerates the mutable listing fields. The approval flag is
// excluded: it only moves through the approve operation.
type PropertyPatch struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	Address            *string   `json:"address"`
	City               *string   `json:"city"`
	Neighborhood       *string   `json:"neighborhood"`
	PropertyType       *string   `json:"propertyType"`
	PricePerNight      *int      `json:"pricePerNight"`
	CleaningFee        *int      `json:"cleaningFee"`
	MaxGuests          *int      `json:"maxGuests"`
	Bedrooms           *int      `json:"bedrooms"`
	Beds               *int      `json:"beds"`
	Bathrooms          *int      `json:"bathrooms"`
	Amenities          *[]string `json:"amenities"`
	Images             *[]string `json:"images"`
	HouseRules         *string   `json:"houseRules"`
	CancellationPolicy *string   `json:"cancellationPolicy"`
	IsActive           *bool     `json:"isActive"`
}

// PropertyFilter is the AND-combined listing filter. Approved/Active are only
// honored for administrative callers; the public view pins both to true.
type PropertyFilter struct {
	City         string
	Neighborhood string
	PropertyType string
	MinPrice     *int
	MaxPrice     *int
	MinGuests    *int
	MinBedrooms  *int
	Approved     *bool
	Active       *bool
}
