package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scope is the explicit addressing mode of a notification. Legacy systems
// encode "global" as the absence of both user and role; here the scope is a
// first-class tag so a row is never ambiguous.
type Scope string

const (
	// ScopePersonal targets exactly one user.
	ScopePersonal Scope = "personal"
	// ScopeRole targets every user sharing a role value.
	ScopeRole Scope = "role"
	// ScopeGlobal targets every authenticated user.
	ScopeGlobal Scope = "global"
)

type Notification struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Scope     Scope      `json:"scope" db:"scope"`
	UserID    *uuid.UUID `json:"user,omitempty" db:"user_id"`
	Role      *string    `json:"role,omitempty" db:"role"`
	Title     string     `json:"title" db:"title"`
	Message   string     `json:"message" db:"message"`
	Link      *string    `json:"link,omitempty" db:"link"`
	Read      bool       `json:"read" db:"read"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrValidation           = errors.New("validation failed")
)

// DeriveScope maps the optional user/role pair of a creation request onto an
// explicit scope. A user target wins over a role target; neither means global.
func DeriveScope(userID *uuid.UUID, role *string) Scope {
	switch {
	case userID != nil:
		return ScopePersonal
	case role != nil && *role != "":
		return ScopeRole
	default:
		return ScopeGlobal
	}
}

// New builds a notification from a creation request. Title and message are
// required; user and role beyond what the derived scope needs are dropped so
// a personal notification never carries a stray role value.
func New(userID *uuid.UUID, role *string, title, message string, link *string) (*Notification, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	n := &Notification{
		ID:        uuid.New(),
		Scope:     DeriveScope(userID, role),
		Title:     title,
		Message:   message,
		Link:      link,
		Read:      false,
		CreatedAt: time.Now(),
	}
	switch n.Scope {
	case ScopePersonal:
		n.UserID = userID
	case ScopeRole:
		n.Role = role
	}
	return n, nil
}
