package auth

import "context"

// Repository persists user accounts.
type Repository interface {
	// Create stores a new user. Returns ErrEmailTaken when the email is
	// already registered.
	Create(ctx context.Context, u *User) error

	// GetByEmail returns the user with the given email, or
	// ErrUserNotFound. Matching is case-insensitive.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns the user with the given ID, or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*User, error)

	// Update persists changes to an existing user's profile fields.
	Update(ctx context.Context, u *User) error
}
