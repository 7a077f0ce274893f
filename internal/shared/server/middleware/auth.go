package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userRoleKey  = "userRole"
	userEmailKey = "userEmail"
	principalKey = "principal"
)

// AuthOptions configures the Auth middleware.
type AuthOptions struct {
	Signer *auth.Signer
	// DevHeaders accepts X-Dev-User-Id and X-Dev-Role in place of a token.
	DevHeaders bool
	// PublicPrefixes are paths served without identity.
	PublicPrefixes []string
}

// Auth verifies bearer tokens and stores the request principal in context.
func Auth(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		for _, prefix := range opts.PublicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") || opts.Signer == nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			claims, err := opts.Signer.Verify(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			setPrincipal(c, claims.Principal())
			if claims.Email != "" {
				c.Set(userEmailKey, claims.Email)
			}
			c.Next()
			return
		}

		if opts.DevHeaders {
			devID := strings.TrimSpace(c.GetHeader("X-Dev-User-Id"))
			role, ok := auth.ParseRole(c.GetHeader("X-Dev-Role"))
			if devID != "" && ok {
				setPrincipal(c, auth.Principal{UserID: devID, Role: role})
				c.Next()
				return
			}
		}

		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
	}
}

func setPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(principalKey, p)
	c.Set(userIDKey, p.UserID)
	c.Set(userRoleKey, string(p.Role))
	c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
}

// PrincipalFromContext fetches the principal set by the auth middleware.
func PrincipalFromContext(c *gin.Context) (auth.Principal, bool) {
	if c == nil {
		return auth.Principal{}, false
	}
	val, _ := c.Get(principalKey)
	p, ok := val.(auth.Principal)
	if !ok || p.IsZero() {
		return auth.Principal{}, false
	}
	return p, true
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// UserEmailFromContext fetches the token email, if any.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userEmailKey)
}

// SetPrincipalForTest installs a principal without token verification.
func SetPrincipalForTest(c *gin.Context, p auth.Principal) {
	setPrincipal(c, p)
}

// RequirePrincipal returns the caller or aborts with 401.
func RequirePrincipal(c *gin.Context) (auth.Principal, bool) {
	p, ok := PrincipalFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return auth.Principal{}, false
	}
	return p, true
}
