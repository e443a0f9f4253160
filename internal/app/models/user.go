package models

import (
	"time"
)

// Role defines the access level of a user account
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// UserStatus defines the lifecycle state of an account
type UserStatus string

const (
	StatusActive    UserStatus = "Active"
	StatusInactive  UserStatus = "Inactive"
	StatusSuspended UserStatus = "Suspended"
)

// User defines the user model based on the 'users' table.
// New accounts start Inactive and become Active on email verification.
type User struct {
	ID                   int64      `json:"id" db:"id"`
	FirstName            string     `json:"first_nm" db:"first_name"`
	LastName             string     `json:"last_nm" db:"last_name"`
	Address              string     `json:"address" db:"address"`
	City                 string     `json:"city" db:"city"`
	State                string     `json:"state" db:"state"`
	Email                string     `json:"email" db:"email"`
	Mobile               string     `json:"mobile" db:"mobile"`
	Password             string     `json:"-" db:"password"`
	ProfilePic           *string    `json:"profilePic" db:"profile_pic"`
	Role                 Role       `json:"role" db:"role"`
	Status               UserStatus `json:"status" db:"status"`
	VerificationToken    *string    `json:"-" db:"verification_token"`
	ResetPasswordToken   *string    `json:"-" db:"reset_password_token"`
	ResetPasswordExpires *time.Time `json:"-" db:"reset_password_expires"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
