package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipidap/myngo-gateway/internal/model"
)

func TestBuildPerRole(t *testing.T) {
	assert.NotEmpty(t, Build(model.RoleSuperadmin, false))
	assert.NotEmpty(t, Build(model.RoleAdmin, false))
	assert.NotEmpty(t, Build(model.RoleUser, false))
}

func TestOperatorGrantAppendsGroup(t *testing.T) {
	plain := Build(model.RoleUser, false)
	granted := Build(model.RoleUser, true)

	require.Greater(t, len(granted), len(plain))
	// The user groups come first, untouched; the operator group is
	// concatenated after them.
	for i := range plain {
		assert.Equal(t, plain[i].Title, granted[i].Title)
	}
	assert.Equal(t, "Operator", granted[len(granted)-1].Title)
}

func TestOperatorGrantIgnoredForAdmins(t *testing.T) {
	assert.Equal(t, Build(model.RoleAdmin, false), Build(model.RoleAdmin, true))
}

func TestUnknownRoleHasNoMenu(t *testing.T) {
	assert.Nil(t, Build(model.Role("ghost"), false))
	assert.Nil(t, Build(model.Role(""), true))
}
