package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, RoleStudent.IsValid())
	assert.True(t, RoleFaculty.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, UserRole("dean").IsValid())
	assert.False(t, UserRole("").IsValid())
}
