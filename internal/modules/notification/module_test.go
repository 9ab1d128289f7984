package notification_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/anuragc10/academiapro/internal/modules/auth/domain"
	"github.com/anuragc10/academiapro/internal/modules/notification"
)

type staticUserFinder struct{}

func (staticUserFinder) GetByID(_ context.Context, id uuid.UUID) (*authdomain.User, error) {
	return &authdomain.User{ID: id, Role: authdomain.RoleStudent}, nil
}

func TestNewModule(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := sqlx.NewDb(sqlDB, "sqlmock")
	m := notification.NewModule(db, nil, staticUserFinder{})
	defer m.Hub().Stop()

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPHandler())
	assert.NotNil(t, m.Service())
	assert.NotNil(t, m.Hub())
}
