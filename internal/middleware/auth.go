package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arvind-ks/roomhub/internal/models"
	"github.com/arvind-ks/roomhub/internal/repository"
	"github.com/arvind-ks/roomhub/internal/session"
)

// ContextKeyUser is where CurrentUser stores the resolved account in the
// gin context. A constant rather than an inline string so a typo is a
// compile error, not a silent nil.
const ContextKeyUser = "current_user"

// CurrentUser resolves the session cookie into a *models.User and puts
// it in the request context. It never rejects: an anonymous visitor just
// flows through with no user set. Guarding is RequireLogin's job, so the
// public pages get "who is this, if anyone" for free.
func CurrentUser(sessions *session.Store, users repository.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Next()
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), cookie)
		if err != nil {
			// Redis trouble. Treat the visitor as anonymous rather
			// than failing every page on the site.
			logger.Error("failed to resolve session", zap.Error(err))
			c.Next()
			return
		}
		if userID == uuid.Nil {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			logger.Error("failed to load session user", zap.Error(err))
			c.Next()
			return
		}
		if user != nil {
			c.Set(ContextKeyUser, user)
		}

		c.Next()
	}
}

// RequireLogin guards the mutating routes. Anonymous visitors are sent
// to the login page — a redirect, not an error: being logged out is a
// normal state, and the login page is where you fix it.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUser(c) == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUser returns the authenticated user for this request, or nil for an
// anonymous visitor.
func GetUser(c *gin.Context) *models.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
