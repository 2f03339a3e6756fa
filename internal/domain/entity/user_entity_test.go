package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_DropsPasswordHash(t *testing.T) {
	u := &User{
		ID:           "7d0c",
		Name:         "Ann",
		Email:        "ann@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         RoleUser,
		CreatedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	safe := u.Sanitize()
	assert.Equal(t, u.ID, safe.ID)
	assert.Equal(t, u.Email, safe.Email)
	assert.Equal(t, RoleUser, safe.Role)

	b, err := json.Marshal(safe)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), u.PasswordHash)
}

func TestRole(t *testing.T) {
	assert.Equal(t, RoleUser, RoleOrDefault(""))
	assert.Equal(t, RoleAdmin, RoleOrDefault(RoleAdmin))
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}
