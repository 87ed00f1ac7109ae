package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1/volunteer-signups")
	g.Use(JWTAuth(testSecret))
	g.Use(RequireRole(roles...))
	g.POST("", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, echo.Map{"ok": true})
	})
	return e
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, 7, role, 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestUnauthenticatedGets401(t *testing.T) {
	e := protectedEcho(model.RoleAdmin, model.RoleEditor)

	req := httptest.NewRequest(http.MethodPost, "/v1/volunteer-signups", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGarbageTokenGets401(t *testing.T) {
	e := protectedEcho(model.RoleAdmin, model.RoleEditor)

	req := httptest.NewRequest(http.MethodPost, "/v1/volunteer-signups", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMemberRoleGets403(t *testing.T) {
	e := protectedEcho(model.RoleAdmin, model.RoleEditor)

	req := httptest.NewRequest(http.MethodPost, "/v1/volunteer-signups", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, model.RoleMember))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEditorRolePasses(t *testing.T) {
	e := protectedEcho(model.RoleAdmin, model.RoleEditor)

	req := httptest.NewRequest(http.MethodPost, "/v1/volunteer-signups", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, model.RoleEditor))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWrongSecretGets401(t *testing.T) {
	e := protectedEcho(model.RoleAdmin)

	tok, err := utils.NewAccessToken("other-secret", 7, model.RoleAdmin, 5)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/volunteer-signups", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTPopulatesClaimsWhenPresent(t *testing.T) {
	e := echo.New()
	e.GET("/v1/volunteer-events", func(c echo.Context) error {
		role, _ := c.Get("role").(string)
		return c.JSON(http.StatusOK, echo.Map{"role": role})
	}, OptionalJWT(testSecret))

	// Anonymous callers pass straight through.
	req := httptest.NewRequest(http.MethodGet, "/v1/volunteer-events", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":""}`, rec.Body.String())

	// A valid bearer sets the role claim.
	req = httptest.NewRequest(http.MethodGet, "/v1/volunteer-events", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, model.RoleAdmin))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":"admin"}`, rec.Body.String())

	// A bad bearer is treated as anonymous, not rejected.
	req = httptest.NewRequest(http.MethodGet, "/v1/volunteer-events", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer junk")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":""}`, rec.Body.String())
}
