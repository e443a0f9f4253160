package models

import "time"

// DefaultAgentPicture is the placeholder path used when no picture is
// uploaded. It is never deleted by the media lifecycle.
const DefaultAgentPicture = "images/default-agent.jpg"

// Agent is a directory listing for a real-estate agent
type Agent struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Phone           string    `json:"phone" db:"phone"`
	Email           string    `json:"email" db:"email"`
	PropertiesSold  int       `json:"propertiesSold" db:"properties_sold"`
	PropertiesUnder int       `json:"propertiesUnder" db:"properties_under"`
	Rating          float64   `json:"rating" db:"rating"`
	OfficeAddress   string    `json:"officeAddress" db:"office_address"`
	Description     string    `json:"description" db:"description"`
	Picture         string    `json:"picture" db:"picture"`
	Active          bool      `json:"active" db:"active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
