package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_IsOpen(t *testing.T) {
	e := &Entry{CheckInTime: "09:00", CheckInLocation: "Office"}
	assert.True(t, e.IsOpen())

	out := "17:00"
	e.CheckOutTime = &out
	assert.False(t, e.IsOpen())
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	u := User{ID: "u1", Email: "a@x.com", PasswordHash: "$2a$12$secret", Role: RoleUser}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
}
