package dto

// CreateAppointmentRequest is the public appointment submission. Property
// and User are optional references; empty values are omitted rather than
// stored as empty references.
type CreateAppointmentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Message  string `json:"message"`
	Property *int64 `json:"property"`
	User     *int64 `json:"user"`
}

// UpdateAppointmentStatusRequest carries the target workflow state
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
