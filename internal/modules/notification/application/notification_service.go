package application

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	authdomain "github.com/anuragc10/academiapro/internal/modules/auth/domain"
	"github.com/anuragc10/academiapro/internal/modules/notification/domain"
	"github.com/anuragc10/academiapro/internal/modules/notification/infrastructure/websocket"
)

// UnreadCache is the per-user unread counter cache the service reads through
// and invalidates on writes.
type UnreadCache interface {
	Get(ctx context.Context, userID uuid.UUID) (int, bool)
	Set(ctx context.Context, userID uuid.UUID, count int)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// CreateInput mirrors the wire shape of a creation request. User and role are
// optional; their combination determines the notification's scope.
type CreateInput struct {
	User    *uuid.UUID `json:"user,omitempty"`
	Role    *string    `json:"role,omitempty"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Link    *string    `json:"link,omitempty"`
}

type NotificationService struct {
	repo  domain.NotificationRepository
	users authdomain.UserFinder
	hub   *websocket.Hub
	cache UnreadCache
}

func NewNotificationService(repo domain.NotificationRepository, users authdomain.UserFinder, hub *websocket.Hub, unread UnreadCache) *NotificationService {
	return &NotificationService{repo: repo, users: users, hub: hub, cache: unread}
}

func (s *NotificationService) GetHub() *websocket.Hub {
	return s.hub
}

// Create validates and persists a new notification, then pushes it to any
// connected websocket clients the scope addresses. Push is best-effort; the
// durable record plus the fetch endpoints are the delivery contract.
func (s *NotificationService) Create(ctx context.Context, in CreateInput) (*domain.Notification, error) {
	n, err := domain.New(in.User, in.Role, in.Title, in.Message, in.Link)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if msg, err := json.Marshal(n); err == nil {
		switch n.Scope {
		case domain.ScopePersonal:
			s.hub.SendToUser(*n.UserID, msg)
			s.cache.Invalidate(ctx, *n.UserID)
		case domain.ScopeRole:
			s.hub.SendToRole(*n.Role, msg)
		case domain.ScopeGlobal:
			s.hub.BroadcastMessage(msg)
		}
	}

	return n, nil
}

// ListForUser resolves the notifications visible to a user: their own, their
// role's, and global broadcasts, newest first. Unknown users are an error;
// a user with no matches gets an empty list.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListVisible(ctx, userID, string(user.Role))
}

// MarkRead marks a single notification as read and returns the updated
// record. Idempotent for existing ids; unknown ids surface
// domain.ErrNotificationNotFound. The caller's count entry is always
// invalidated, so their next unread count reflects the mark even for
// role and global notifications.
func (s *NotificationService) MarkRead(ctx context.Context, callerID, id uuid.UUID) (*domain.Notification, error) {
	n, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, callerID)
	if n.UserID != nil && *n.UserID != callerID {
		s.cache.Invalidate(ctx, *n.UserID)
	}
	return n, nil
}

// MarkAllRead marks every notification visible to the user as read, using
// the same predicate ListForUser resolves with. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	changed, err := s.repo.MarkAllRead(ctx, userID, string(user.Role))
	if err != nil {
		return err
	}
	if changed > 0 {
		log.Printf("MarkAllRead: user=%s changed=%d", userID, changed)
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}

// UnreadCount returns the number of unread visible notifications, served
// from the Redis cache when fresh.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if count, ok := s.cache.Get(ctx, userID); ok {
		return count, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.UnreadCount(ctx, userID, string(user.Role))
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, userID, count)
	return count, nil
}
