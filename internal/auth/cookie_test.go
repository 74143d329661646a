// AngelaMos | 2026
// cookie_test.go

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/adlib/internal/middleware"
)

func recordedCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, middleware.SessionCookie, cookies[0].Name)
	return cookies[0]
}

func TestSetSessionCookieSecureOutsideDevelopment(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "signed-token", time.Hour, true)

	cookie := recordedCookie(t, rec)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestSetSessionCookieInsecureInDevelopment(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "signed-token", time.Hour, false)

	cookie := recordedCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
}

func TestClearSessionCookieExpires(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, true)

	cookie := recordedCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
	assert.True(t, cookie.Secure)
}
