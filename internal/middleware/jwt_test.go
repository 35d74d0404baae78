package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/conference-hotel-booking/internal/middleware"
	"github.com/iliyamo/conference-hotel-booking/internal/utils"
)

const testSecret = "jwt-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/booking", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := middleware.JWTAuth(testSecret)(next)(c)
	return rec, c, err
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _, err := runJWT(t, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _, err := runJWT(t, "Bearer not-a-jwt")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("another-secret", 42, 5)
	require.NoError(t, err)

	rec, _, err := runJWT(t, "Bearer "+at.Token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenSetsUserID(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, 5)
	require.NoError(t, err)

	rec, c, err := runJWT(t, "Bearer "+at.Token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	// JWT numeric claims decode as float64
	assert.EqualValues(t, 42, c.Get("user_id"))
}
