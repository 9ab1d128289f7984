package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/anuragc10/academiapro/internal/modules/notification/domain"
)

// visibleWhere is the single source of truth for the visibility predicate.
// ListVisible, MarkAllRead and UnreadCount all reuse it, so the set a user
// sees and the set mark-all touches are always the same set.
// $1 = user id, $2 = user role.
const visibleWhere = `(
		(scope = 'personal' AND user_id = $1)
		OR (scope = 'role' AND role = $2)
		OR scope = 'global'
	)`

type PgNotificationRepository struct {
	db *sqlx.DB
}

func NewPgNotificationRepository(db *sqlx.DB) *PgNotificationRepository {
	return &PgNotificationRepository{db: db}
}

func (r *PgNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, scope, user_id, role, title, message, link, read, created_at)
		VALUES (:id, :scope, :user_id, :role, :title, :message, :link, :read, :created_at)
	`
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := r.db.NamedExecContext(ctx, query, n)
	return err
}

func (r *PgNotificationRepository) ListVisible(ctx context.Context, userID uuid.UUID, role string) ([]domain.Notification, error) {
	query := `
		SELECT * FROM notifications
		WHERE ` + visibleWhere + `
		ORDER BY created_at DESC
	`
	notifications := []domain.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, userID, role); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag and returns the updated row. A nonexistent id
// is reported as domain.ErrNotificationNotFound rather than a silent no-op.
// Marking an already-read notification succeeds without changing anything.
func (r *PgNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1
		RETURNING *
	`
	n := &domain.Notification{}
	err := r.db.GetContext(ctx, n, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead marks every notification visible to the user as read in a
// single statement, so concurrent readers never see a half-applied batch.
// Returns the number of rows changed.
func (r *PgNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, role string) (int64, error) {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE read = FALSE AND ` + visibleWhere
	res, err := r.db.ExecContext(ctx, query, userID, role)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PgNotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID, role string) (int, error) {
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE read = FALSE AND ` + visibleWhere
	var count int
	err := r.db.GetContext(ctx, &count, query, userID, role)
	return count, err
}
