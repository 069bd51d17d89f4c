package auth

import (
	"errors"
	"net/http"
	"strings"

	"cheese-shop/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the guards for downstream handlers.
const (
	CtxUser      = "currentUser"
	CtxSessionID = "sessionID"
)

// SessionRequired guards browser-facing routes. An anonymous request is
// redirected to the login page instead of reaching the handler. On success
// the materialized user and the session id are attached to the context.
func SessionRequired(sessions SessionStore, users *user.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		data, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil || data.UserID == uuid.Nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		u, err := users.FindByID(data.UserID)
		if err != nil {
			// Session points at a user that no longer resolves.
			_ = sessions.Delete(c.Request.Context(), sessionID)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(CtxUser, u)
		c.Set(CtxSessionID, sessionID)
		c.Next()
	}
}

// TokenRequired guards the JSON API. The token is read from the
// Authorization header when present, otherwise from the session carrier, and
// verified purely by signature and expiry. Each failure mode answers 401
// with a machine-readable reason.
func TokenRequired(secret string, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if sessionID, err := c.Cookie(SessionCookie); err == nil {
				if data, err := sessions.Get(c.Request.Context(), sessionID); err == nil {
					tokenStr = data.Token
				}
			}
		}
		if _, err := ParseToken(secret, tokenStr); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": tokenErrorMessage(err)})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrTokenMissing):
		return "Token is missing!"
	case errors.Is(err, ErrTokenExpired):
		return "Token has expired!"
	default:
		return "Token is invalid!"
	}
}

// CurrentUser returns the user attached by SessionRequired.
func CurrentUser(c *gin.Context) *user.User {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok := v.(*user.User); ok {
			return u
		}
	}
	return nil
}
