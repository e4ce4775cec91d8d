package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kipidap/myngo-gateway/internal/model"
)

func TestMatchStatic(t *testing.T) {
	rt := Match("/admin/dashboard")
	assert.Equal(t, "admin-dashboard", rt.Name)
	assert.True(t, rt.RequiresAuth)
	assert.Equal(t, []model.Role{model.RoleAdmin}, rt.Roles)
}

func TestMatchParam(t *testing.T) {
	rt := Match("/user/businesses/42")
	assert.Equal(t, "user-business-edit", rt.Name)

	// The static sibling still wins over the parameter.
	rt = Match("/user/businesses/add")
	assert.Equal(t, "user-business-add", rt.Name)
}

func TestMatchRoot(t *testing.T) {
	rt := Match("/")
	assert.Equal(t, "home", rt.Name)

	rt = Match("")
	assert.Equal(t, "home", rt.Name)
}

func TestMatchUnknownIsNotFound(t *testing.T) {
	rt := Match("/definitely/not/a/page")
	assert.Equal(t, NotFound.Name, rt.Name)
	assert.False(t, rt.RequiresAuth)
}

func TestAliasCarriesRedirect(t *testing.T) {
	rt := Match("/signin")
	assert.Equal(t, "/login", rt.Redirect)

	rt = Match("/admin")
	assert.Equal(t, "/admin/dashboard", rt.Redirect)
}

func TestTableHasNoDuplicatePaths(t *testing.T) {
	seen := map[string]string{}
	for _, rt := range Table() {
		if prev, ok := seen[rt.Path]; ok {
			t.Fatalf("path %s registered twice (%s and %s)", rt.Path, prev, rt.Name)
		}
		seen[rt.Path] = rt.Name
	}
}
