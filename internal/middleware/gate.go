// AngelaMos | 2026
// gate.go

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	// SessionCookie carries the signed session token. The name is part of
	// the contract with the web frontend.
	SessionCookie = "adlib_session"

	LoginPath = "/login"
)

type contextKey string

const (
	UserIDKey      contextKey = "user_id"
	UserRoleKey    contextKey = "user_role"
	UserPremiumKey contextKey = "user_premium"
	ClaimsKey      contextKey = "session_claims"
)

const roleAdmin = "ADMIN"

// SessionClaims is the verified payload of a session token. A nil
// *SessionClaims means "anonymous" everywhere in the request pipeline.
type SessionClaims struct {
	UserID    string
	Role      string
	IsPremium bool
	ExpiresAt time.Time
}

// TokenVerifier fails closed: any malformed, forged, or expired token
// comes back as nil, never as an error.
type TokenVerifier interface {
	VerifySessionToken(ctx context.Context, token string) *SessionClaims
}

type Zone int

const (
	ZonePublic Zone = iota
	ZoneMember
	ZoneAdmin
)

var memberPrefixes = []string{"/library", "/compare", "/premium"}

// ClassifyZone derives the access zone from the request path. The admin
// prefix wins and is evaluated first; member prefixes never apply to it.
func ClassifyZone(path string) Zone {
	if strings.HasPrefix(path, "/admin") {
		return ZoneAdmin
	}

	for _, prefix := range memberPrefixes {
		if strings.HasPrefix(path, prefix) {
			return ZoneMember
		}
	}

	return ZonePublic
}

// Gate runs once per request before any handler logic. It inspects the
// session cookie, classifies the path, and either redirects to the login
// page or passes through with the claims stashed in the context. It never
// mutates state.
func Gate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims *SessionClaims
			if token := ExtractSessionToken(r); token != "" {
				claims = verifier.VerifySessionToken(r.Context(), token)
			}

			switch ClassifyZone(r.URL.Path) {
			case ZoneAdmin:
				if claims == nil || claims.Role != roleAdmin {
					redirectToLogin(w, r)
					return
				}
			case ZoneMember:
				if claims == nil {
					redirectToLogin(w, r)
					return
				}
			case ZonePublic:
			}

			if claims != nil {
				r = r.WithContext(withClaims(r.Context(), claims))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin re-checks the admin role inside the /admin route group.
// The gate already enforces it at the edge; this is the second layer the
// admin pages carry on their own.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserRole(r.Context()) != roleAdmin {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ExtractSessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, LoginPath, http.StatusFound)
}

func withClaims(ctx context.Context, claims *SessionClaims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
	ctx = context.WithValue(ctx, UserPremiumKey, claims.IsPremium)
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return ctx
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func GetUserPremium(ctx context.Context) bool {
	if premium, ok := ctx.Value(UserPremiumKey).(bool); ok {
		return premium
	}
	return false
}

func GetClaims(ctx context.Context) *SessionClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*SessionClaims); ok {
		return claims
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == roleAdmin
}
