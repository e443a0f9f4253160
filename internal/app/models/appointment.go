package models

import "time"

// AppointmentStatus enumerates the workflow states of an appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// ValidAppointmentStatus reports whether s is a known workflow state
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// CanTransition reports whether an appointment may move from one status to
// another. Allowed moves: pending->confirmed, confirmed->completed, and any
// state may be cancelled. There are no automatic transitions.
func CanTransition(from, to AppointmentStatus) bool {
	if !ValidAppointmentStatus(from) || !ValidAppointmentStatus(to) {
		return false
	}
	if to == AppointmentCancelled {
		return true
	}
	switch from {
	case AppointmentPending:
		return to == AppointmentConfirmed
	case AppointmentConfirmed:
		return to == AppointmentCompleted
	}
	return false
}

// Appointment is a scheduling record. Property and User references are both
// optional: an appointment may be anonymous and/or not tied to a listing.
type Appointment struct {
	ID         int64             `json:"id" db:"id"`
	Name       string            `json:"name" db:"name"`
	Email      string            `json:"email" db:"email"`
	Date       time.Time         `json:"date" db:"date"`
	Time       string            `json:"time" db:"time"`
	Message    string            `json:"message,omitempty" db:"message"`
	Status     AppointmentStatus `json:"status" db:"status"`
	PropertyID *int64            `json:"property,omitempty" db:"property_id"`
	UserID     *int64            `json:"user,omitempty" db:"user_id"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time         `json:"updatedAt" db:"updated_at"`
}

// AppointmentDetails is an appointment with its optional relations resolved
// for admin listings.
type AppointmentDetails struct {
	Appointment
	PropertyTitle    *string `json:"propertyTitle,omitempty"`
	PropertyLocation *string `json:"propertyLocation,omitempty"`
	UserName         *string `json:"userName,omitempty"`
	UserEmail        *string `json:"userEmail,omitempty"`
}
