package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository is the full persistence contract for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email, department, rollNo, empID, passwordHash *string) error
	UpdateProfileImage(ctx context.Context, id uuid.UUID, imageURL string) error
}

// UserFinder is the narrow lookup interface other modules depend on.
// The notification resolver only needs a user's id and role.
type UserFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
