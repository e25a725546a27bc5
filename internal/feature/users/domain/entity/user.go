// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials, profile data and the admin role flag.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// FirstName is the user's given name (2-50 characters).
	FirstName string `gorm:"size:50;not null" json:"firstName"`

	// LastName is the user's family name (2-50 characters).
	LastName string `gorm:"size:50;not null" json:"lastName"`

	// Email is the user's email address used for authentication.
	// It is stored lowercased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash for the user.
	// It is never serialized into API responses.
	Password string `gorm:"size:255;not null" json:"-"`

	// IsAdmin reports whether the user may access admin-gated routes.
	// New users are never admins.
	IsAdmin bool `gorm:"not null;default:false" json:"isAdmin"`

	// MobileNo is an optional contact number (10-15 digits).
	MobileNo string `gorm:"size:15" json:"mobileNo,omitempty"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}
