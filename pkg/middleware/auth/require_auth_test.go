package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronin/shop_api/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

func signAccessToken(t *testing.T, role, subject string, ttl time.Duration) string {
	t.Helper()

	claims := tokens.AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func newAuthContext(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuth_SetsUserContext(t *testing.T) {
	mw := NewMiddleware(testSecret)
	token := signAccessToken(t, "user", "42", time.Minute)
	c, rec := newAuthContext(token)

	require.NoError(t, mw.RequireAuth(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", c.Get("user_id"))
	assert.Equal(t, "user", c.Get("role"))
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	mw := NewMiddleware(testSecret)
	c, _ := newAuthContext("")

	err := mw.RequireAuth(okHandler)(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	mw := NewMiddleware(testSecret)
	token := signAccessToken(t, "user", "42", -time.Minute)
	c, rec := newAuthContext(token)

	err := mw.RequireAuth(okHandler)(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "access token expired", he.Message)

	// expired access also clears both auth cookies
	cookies := rec.Result().Cookies()
	names := make(map[string]int, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = ck.MaxAge
	}
	assert.Equal(t, -1, names["accessToken"])
	assert.Equal(t, -1, names["refreshToken"])
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	mw := NewMiddleware([]byte("another-secret"))
	token := signAccessToken(t, "user", "42", time.Minute)
	c, _ := newAuthContext(token)

	err := mw.RequireAuth(okHandler)(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin(t *testing.T) {
	mw := NewMiddleware(testSecret)

	userToken := signAccessToken(t, "user", "42", time.Minute)
	c, _ := newAuthContext(userToken)
	err := mw.RequireAdmin(okHandler)(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)

	adminToken := signAccessToken(t, "admin", "1", time.Minute)
	c, rec := newAuthContext(adminToken)
	require.NoError(t, mw.RequireAdmin(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", c.Get("role"))
}
