package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/workify/backend/internal/infrastructure/auth"
	"github.com/workify/backend/internal/interfaces/http/dto"
)

func routerWithClaims(claims *auth.Claims, guard gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if claims != nil {
			setClaims(c, claims)
		}
		c.Next()
	})
	router.GET("/resource", guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func serve(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
	return w
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name   string
		claims *auth.Claims
		want   int
	}{
		{"holder", &auth.Claims{UserID: "u1", Permissions: []string{"contract:read"}}, http.StatusOK},
		{"other permission", &auth.Claims{UserID: "u1", Permissions: []string{"client:read"}}, http.StatusForbidden},
		{"superuser", &auth.Claims{UserID: "u1", Superuser: true}, http.StatusOK},
		{"anonymous", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(routerWithClaims(tt.claims, RequirePermission("contract:read")))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequirePermission_ErrorBody(t *testing.T) {
	w := serve(routerWithClaims(&auth.Claims{UserID: "u1"}, RequirePermission("audit:read")))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, w).Code)
}

func TestRequireAnyPermission(t *testing.T) {
	claims := &auth.Claims{UserID: "u1", Permissions: []string{"employee:read"}}

	w := serve(routerWithClaims(claims, RequireAnyPermission("employee:read_details", "employee:read")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(routerWithClaims(claims, RequireAnyPermission("employee:update", "employee:delete")))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAllPermissions(t *testing.T) {
	claims := &auth.Claims{UserID: "u1", Permissions: []string{"role:read", "role:update"}}

	w := serve(routerWithClaims(claims, RequireAllPermissions("role:read", "role:update")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(routerWithClaims(claims, RequireAllPermissions("role:read", "user:update")))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionWithConfig_OnDenied(t *testing.T) {
	var denied []string
	guard := RequirePermissionWithConfig("budget:delete", PermissionConfig{
		OnDenied: func(c *gin.Context, required []string) {
			denied = required
			c.AbortWithStatus(http.StatusNotFound)
		},
	})

	w := serve(routerWithClaims(&auth.Claims{UserID: "u1"}, guard))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []string{"budget:delete"}, denied)
}

func TestHasPermission(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.False(t, HasPermission(c, "client:read"))

	setClaims(c, &auth.Claims{UserID: "u1", Permissions: []string{"client:read"}})
	assert.True(t, HasPermission(c, "client:read"))
	assert.False(t, HasPermission(c, "client:delete"))
}
