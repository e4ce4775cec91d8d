package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kipidap/myngo-gateway/internal/model"
)

func sessionWith(role model.Role, operator bool) *model.Session {
	return &model.Session{
		ID:            "sid",
		Principal:     &model.Principal{SubjectID: "u1", Role: role, IsOperator: operator},
		AccessToken:   "tok",
		Authenticated: true,
	}
}

func TestSuperadminHoldsEverything(t *testing.T) {
	s := sessionWith(model.RoleSuperadmin, false)
	for _, capability := range []string{CapUserDelete, CapSystemWrite, CapTeamWrite, "made:up"} {
		assert.True(t, HasPermission(s, capability), capability)
	}
}

func TestAdminSet(t *testing.T) {
	s := sessionWith(model.RoleAdmin, false)
	assert.True(t, HasPermission(s, CapUserWrite))
	assert.True(t, HasPermission(s, CapSettingsRead))
	assert.False(t, HasPermission(s, CapUserDelete))
	assert.False(t, HasPermission(s, CapSystemWrite))
}

func TestUserSet(t *testing.T) {
	s := sessionWith(model.RoleUser, false)
	assert.True(t, HasPermission(s, CapUserRead))
	assert.False(t, HasPermission(s, CapUserWrite))
	assert.False(t, HasPermission(s, CapTeamRead))
}

func TestOperatorGrantLayersExtras(t *testing.T) {
	s := sessionWith(model.RoleUser, true)
	assert.True(t, HasPermission(s, CapUserWrite))
	assert.True(t, HasPermission(s, CapTeamWrite))
	assert.True(t, HasPermission(s, CapProjectRead))
	assert.True(t, HasPermission(s, CapOperatorWrite))
	// The grant never reaches delete or system capabilities.
	assert.False(t, HasPermission(s, CapUserDelete))
	assert.False(t, HasPermission(s, CapSystemRead))
}

func TestAnonymousHoldsNothing(t *testing.T) {
	assert.False(t, HasPermission(nil, CapUserRead))
	assert.False(t, HasPermission(&model.Session{}, CapUserRead))

	// A principal without Authenticated is still nothing.
	s := sessionWith(model.RoleAdmin, false)
	s.Authenticated = false
	assert.False(t, HasPermission(s, CapUserRead))
}
