package domain

import (
	"context"

	"github.com/google/uuid"
)

// NotificationRepository is the persistence contract for notifications.
// ListVisible, MarkAllRead and UnreadCount must all evaluate the same
// visibility predicate: personal match on userID, role match on role, or
// global scope. Keeping them on one interface (and one WHERE clause in the
// implementation) is what guarantees "all visible" and "all markable" never
// diverge.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListVisible(ctx context.Context, userID uuid.UUID, role string) ([]Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, role string) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID, role string) (int, error)
}
