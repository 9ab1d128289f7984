package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveScope(t *testing.T) {
	userID := uuid.New()
	role := "faculty"
	empty := ""

	tests := []struct {
		name   string
		userID *uuid.UUID
		role   *string
		want   Scope
	}{
		{"user only", &userID, nil, ScopePersonal},
		{"role only", nil, &role, ScopeRole},
		{"user wins over role", &userID, &role, ScopePersonal},
		{"neither", nil, nil, ScopeGlobal},
		{"empty role string", nil, &empty, ScopeGlobal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveScope(tt.userID, tt.role))
		})
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, nil, "", "message", nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = New(nil, nil, "title", "", nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestNew_ScopeDropsUnusedTarget(t *testing.T) {
	userID := uuid.New()
	role := "student"

	t.Run("personal keeps user, drops role", func(t *testing.T) {
		n, err := New(&userID, &role, "Exam moved", "Room 4 instead of Room 2", nil)
		require.NoError(t, err)
		assert.Equal(t, ScopePersonal, n.Scope)
		require.NotNil(t, n.UserID)
		assert.Equal(t, userID, *n.UserID)
		assert.Nil(t, n.Role)
	})

	t.Run("role keeps role only", func(t *testing.T) {
		n, err := New(nil, &role, "Seminar", "Attendance required", nil)
		require.NoError(t, err)
		assert.Equal(t, ScopeRole, n.Scope)
		assert.Nil(t, n.UserID)
		require.NotNil(t, n.Role)
		assert.Equal(t, role, *n.Role)
	})

	t.Run("global carries neither", func(t *testing.T) {
		n, err := New(nil, nil, "Holiday", "Campus closed Friday", nil)
		require.NoError(t, err)
		assert.Equal(t, ScopeGlobal, n.Scope)
		assert.Nil(t, n.UserID)
		assert.Nil(t, n.Role)
	})
}

func TestNew_Defaults(t *testing.T) {
	link := "/exams/42"
	n, err := New(nil, nil, "Title", "Message", &link)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.False(t, n.Read)
	assert.False(t, n.CreatedAt.IsZero())
	require.NotNil(t, n.Link)
	assert.Equal(t, link, *n.Link)
}
