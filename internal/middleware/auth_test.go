package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shopforge/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHasPermissionMatrix(t *testing.T) {
	cases := []struct {
		role       string
		permission string
		want       bool
	}{
		{model.RoleSuperadmin, PermSettingsWrite, true},
		{model.RoleAdmin, PermSettingsWrite, true},
		{model.RoleAdmin, PermSettingsView, true},
		// Managers read store settings but cannot change them.
		{model.RoleManager, PermSettingsView, true},
		{model.RoleManager, PermSettingsWrite, false},
		{model.RoleManager, PermInventoryWrite, true},
		{model.RoleStaff, PermInventoryView, true},
		{model.RoleStaff, PermInventoryWrite, false},
		{model.RoleStaff, PermSettingsView, false},
		{"unknown-role", PermInventoryView, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasPermission(tc.role, tc.permission),
			"%s / %s", tc.role, tc.permission)
	}
}

func TestGetClaimsNilWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, GetClaims(c), "no claims set must yield nil, not a panic")
}

func TestRequirePermissionWithoutClaimsForbids(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	// Middleware misordering (permission check without JWTAuth) must produce
	// a 403, never a panic.
	RequirePermission(PermInventoryView)(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePermissionChecksRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(role, permission string) int {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(ClaimsKey, &JWTClaims{UserID: "u", Role: role})
		RequirePermission(permission)(c)
		if c.IsAborted() {
			return rec.Code
		}
		return http.StatusOK
	}

	assert.Equal(t, http.StatusOK, run(model.RoleManager, PermSettingsView))
	assert.Equal(t, http.StatusForbidden, run(model.RoleManager, PermSettingsWrite))
	assert.Equal(t, http.StatusForbidden, run(model.RoleStaff, PermInventoryWrite))
}
