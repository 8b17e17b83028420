package middleware

import (
	"context"
	"strings"

	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/logger"
	"financeflow_backend/pkg/apperrors"
	"financeflow_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionKey = "session"

// SessionResolver turns a bearer token into the session of a request.
type SessionResolver interface {
	Resolve(ctx context.Context, db *gorm.DB, token string) *auth.Session
}

// SessionMiddleware resolves the caller's session. It never rejects a request:
// an absent or invalid token yields an unauthenticated session. Must run after
// DBMiddleware.
func SessionMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := resolver.Resolve(c.Request.Context(), dbFrom(c), BearerToken(c))
		c.Set(sessionKey, session)

		if session.Authenticated() {
			ctx := logger.WithUserID(c.Request.Context(), session.UserID)
			c.Request = c.Request.WithContext(ctx)
			if db := dbFrom(c); db != nil {
				c.Set(string(contextkeys.DBContextKey), db.WithContext(ctx))
			}
		}
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// GetSession returns the session resolved for c. Without SessionMiddleware it
// is unauthenticated.
func GetSession(c *gin.Context) *auth.Session {
	if val, ok := c.Get(sessionKey); ok {
		if s, ok := val.(*auth.Session); ok {
			return s
		}
	}
	return &auth.Session{State: auth.StateUnauthenticated}
}

// RequireSession rejects requests without an authenticated session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).Authenticated() {
			apperrors.HandleError(c, apperrors.ErrNoActiveSession)
			return
		}
		c.Next()
	}
}

// RequirePermission rejects requests whose session state lacks permission.
// Unauthenticated callers get 401, authenticated ones 403.
func RequirePermission(permission auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session.Can(permission) {
			c.Next()
			return
		}

		logger.CtxWarn(c.Request.Context(), "permission denied",
			"permission", permission,
			"state", session.State,
			"path", c.Request.URL.Path,
		)
		if !session.Authenticated() {
			apperrors.HandleError(c, apperrors.ErrNoActiveSession)
			return
		}
		apperrors.HandleError(c, apperrors.ErrNotAdmin)
	}
}
