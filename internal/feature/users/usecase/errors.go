package usecase

import "errors"

var (
	// ErrEmailAlreadyExists indicates that a user with the given email already exists.
	// This is returned during registration when attempting to create a duplicate user.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates that the supplied password does not match.
	ErrInvalidCredentials = errors.New("email and password do not match")

	// ErrAlreadyAdmin indicates a promotion request for a user who is already an admin.
	ErrAlreadyAdmin = errors.New("user is already an admin")

	// ErrValidation indicates malformed or missing input. The wrapping error
	// carries the field-level detail.
	ErrValidation = errors.New("validation error")
)
