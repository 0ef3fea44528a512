package model

import (
	"errors"
	"time"
)

// User represents a registered account. The password is stored only as a
// salted hash; the salt is regenerated on every password change.
type User struct {
	ID             int64     `db:"UserID" json:"id"`
	Username       string    `db:"Username" json:"username"`
	HashedPassword string    `db:"HashedPassword" json:"-"` // "-" hides from JSON output
	Salt           string    `db:"Salt" json:"-"`
	FirstName      string    `db:"FirstName" json:"first_name"`
	LastName       string    `db:"LastName" json:"last_name"`
	IsVIP          bool      `db:"IsVIP" json:"is_vip"`
	CreatedAt      time.Time `db:"CreatedDate" json:"created_at"`
	UpdatedAt      time.Time `db:"UpdatedOn" json:"updated_at"`
}

// RegisterRequest represents the data needed to register a new user.
// New accounts always start as standard (non-VIP) users.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	// Unknown username and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned when input is rejected before reaching storage
	ErrValidation = errors.New("invalid input")
)
