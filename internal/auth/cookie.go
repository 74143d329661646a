// AngelaMos | 2026
// cookie.go

package auth

import (
	"net/http"
	"time"

	"github.com/carterperez-dev/adlib/internal/middleware"
)

// SetSessionCookie attaches the signed token as an http-only, lax,
// site-wide cookie with a max-age matching the token expiry. Secure is
// set everywhere except local development.
func SetSessionCookie(
	w http.ResponseWriter,
	token string,
	ttl time.Duration,
	secure bool,
) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the cookie in the caller's browser. The token
// itself stays valid until its natural expiry; sessions are stateless and
// carry no server-side revocation.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
