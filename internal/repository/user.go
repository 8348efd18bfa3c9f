package repository

import (
	"context"

	"github.com/ErlanBelekov/todo-app/internal/domain"
)

// UserRepository is the credential store. The usecase depends on this
// interface so tests can swap in a fake.
type UserRepository interface {
	// Create inserts a user and returns it with its generated ID.
	// Returns domain.ErrUserAlreadyExists when the email is taken; the unique
	// constraint is what settles concurrent signups for the same email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// UpdatePassword replaces the stored hash for email.
	UpdatePassword(ctx context.Context, email, passwordHash string) error

	Delete(ctx context.Context, id string) error
}
