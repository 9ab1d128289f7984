package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/anuragc10/academiapro/internal/modules/auth/domain"
)

type PgUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates and returns a new PostgreSQL-based user repository.
// It takes a database connection and initializes a PgUserRepository instance
// that implements the domain.UserRepository interface.
func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// Create inserts a new user record into the database.
// If the user's CreatedAt or UpdatedAt timestamps are zero values,
// they are automatically set to the current time before insertion.
// A unique violation on the email column maps to domain.ErrUserAlreadyExists.
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, name, role, department, rollno, empid, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :name, :role, :department, :rollno, :empid, :created_at, :updated_at)`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // Unique violation
				return domain.ErrUserAlreadyExists
			}
		}
		return err
	}
	return nil
}

// GetByEmail retrieves a user by their email address.
// Returns domain.ErrUserNotFound if no user exists with the given email.
func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, user, query, email)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by their unique identifier.
// Returns domain.ErrUserNotFound if no user exists with the given ID.
func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, user, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the provided fields on a user record. Nil fields are
// left unchanged; the SET clause is built only from the fields that are set.
func (r *PgUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, email, department, rollNo, empID, passwordHash *string) error {
	sets := []string{}
	args := []interface{}{}
	i := 1

	add := func(col string, val *string) {
		if val != nil {
			sets = append(sets, fmt.Sprintf("%s = $%d", col, i))
			args = append(args, *val)
			i++
		}
	}
	add("name", name)
	add("email", email)
	add("department", department)
	add("rollno", rollNo)
	add("empid", empID)
	add("password_hash", passwordHash)

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", i))
	args = append(args, time.Now())
	i++

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), i)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateProfileImage stores the uploaded profile image URL on the user record.
func (r *PgUserRepository) UpdateProfileImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE users SET profile_image = $1, updated_at = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, imageURL, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
