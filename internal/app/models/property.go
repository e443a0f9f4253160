package models

import "time"

// PropertyType enumerates the supported listing categories
type PropertyType string

const (
	TypeHouse      PropertyType = "House"
	TypeApartment  PropertyType = "Apartment"
	TypeVilla      PropertyType = "Villa"
	TypeLand       PropertyType = "Land"
	TypeCommercial PropertyType = "Commercial"
)

// ValidPropertyType reports whether t is a known listing category
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case TypeHouse, TypeApartment, TypeVilla, TypeLand, TypeCommercial:
		return true
	}
	return false
}

// PropertyStatus enumerates the sale state of a listing
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "Available"
	PropertySold      PropertyStatus = "Sold"
	PropertyPending   PropertyStatus = "Pending"
	PropertyRented    PropertyStatus = "Rented"
)

// ValidPropertyStatus reports whether s is a known sale state
func ValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case PropertyAvailable, PropertySold, PropertyPending, PropertyRented:
		return true
	}
	return false
}

// Property is a listing. Picture always references a stored file; creation
// without an uploaded image is rejected before anything is persisted.
type Property struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Type        PropertyType   `json:"type" db:"type"`
	Location    string         `json:"location" db:"location"`
	Price       float64        `json:"price" db:"price"`
	Area        float64        `json:"area" db:"area"`
	Bedrooms    int            `json:"bedrooms" db:"bedrooms"`
	Bathrooms   int            `json:"bathrooms" db:"bathrooms"`
	Status      PropertyStatus `json:"status" db:"status"`
	Description string         `json:"description" db:"description"`
	Picture     string         `json:"picture" db:"picture"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// PropertyFilter carries the optional search criteria. Nil/zero members
// impose no constraint; set members compose with AND semantics.
type PropertyFilter struct {
	Type      *PropertyType
	Status    *PropertyStatus
	Bedrooms  *int
	Bathrooms *int
	MinPrice  *float64
	MaxPrice  *float64
}
