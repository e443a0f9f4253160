package dto

// AgentRequest carries the multipart form fields for agent create/update.
// The picture arrives as the separate `picture` file part. Pointer fields
// distinguish "absent" from zero on update.
type AgentRequest struct {
	Name            string   `form:"name"`
	Phone           string   `form:"phone"`
	Email           string   `form:"email"`
	PropertiesSold  *int     `form:"propertiesSold"`
	PropertiesUnder *int     `form:"propertiesUnder"`
	Rating          *float64 `form:"rating"`
	OfficeAddress   *string  `form:"officeAddress"`
	Description     *string  `form:"description"`
	Active          *bool    `form:"active"`
}
