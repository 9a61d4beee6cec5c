package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/utils"
)

func runWithAuth(t *testing.T, mw echo.MiddlewareFunc, header string, prime func(echo.Context)) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if prime != nil {
		prime(c)
	}

	reached := false
	h := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, reached
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	mw := JWTAuth("secret")

	rec, reached := runWithAuth(t, mw, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	rec, reached = runWithAuth(t, mw, "Bearer not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	// Token signed with a different secret.
	at, err := utils.NewAccessToken("other-secret", 1, "STUDENT", 5)
	require.NoError(t, err)
	rec, reached = runWithAuth(t, mw, "Bearer "+at.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	at, err := utils.NewAccessToken("secret", 42, "ENTITY", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth("secret")(func(c echo.Context) error {
		assert.Equal(t, float64(42), c.Get("user_id"))
		assert.Equal(t, "ENTITY", c.Get("role"))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("ADMIN")

	rec, reached := runWithAuth(t, mw, "", func(c echo.Context) { c.Set("role", "STUDENT") })
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	rec, reached = runWithAuth(t, mw, "", nil) // no role at all
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	rec, reached = runWithAuth(t, mw, "", func(c echo.Context) { c.Set("role", "ADMIN") })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestCurrentUserID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "anon", currentUserID(c))

	c.Set("user_id", float64(7))
	assert.Equal(t, "7", currentUserID(c))

	c.Set("user_id", "15")
	assert.Equal(t, "15", currentUserID(c))
}
