package dto

// PropertyRequest carries the multipart form fields for property
// create/update. The image arrives as the separate `propertyImage` file
// part. Pointer fields distinguish "absent" from zero on update.
type PropertyRequest struct {
	Title       string   `form:"title"`
	Type        string   `form:"type"`
	Location    string   `form:"location"`
	Price       *float64 `form:"price"`
	Area        *float64 `form:"area"`
	Bedrooms    *int     `form:"bedrooms"`
	Bathrooms   *int     `form:"bathrooms"`
	Status      string   `form:"status"`
	Description string   `form:"description"`
}

// PropertySearchQuery carries the optional search filters of
// GET /api/properties/search
type PropertySearchQuery struct {
	Type      string   `form:"type"`
	Status    string   `form:"status"`
	Bedrooms  *int     `form:"bedrooms"`
	Bathrooms *int     `form:"bathrooms"`
	MinPrice  *float64 `form:"minPrice"`
	MaxPrice  *float64 `form:"maxPrice"`
}
