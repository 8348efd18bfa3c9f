package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds. Handlers classify failures with errors.Is against these.
var (
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrUserAlreadyExists = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrUserNotFound      = fmt.Errorf("%w: user not found", ErrNotFound)
	// ErrResetUserNotFound is what a reset demand for an unknown email returns.
	// It is a conflict, not a not-found.
	ErrResetUserNotFound = fmt.Errorf("%w: user not found", ErrConflict)
	ErrPasswordMismatch  = fmt.Errorf("%w: password does not match", ErrUnauthorized)
	ErrCodeInvalid       = fmt.Errorf("%w: invalid or expired code", ErrUnauthorized)
	ErrTokenInvalid      = fmt.Errorf("%w: token is invalid or expired", ErrUnauthorized)
)

type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Claims is the identity carried by a verified bearer token.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
