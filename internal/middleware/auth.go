package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lenzooadmin/internal/session"
)

const sessionKey = "session"

// Session opens the admin session once per request.
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, m.Open(c.Request))
		c.Next()
	}
}

// CurrentSession returns the session opened by Session.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// RequireSession sends visitors without a usable token to the login screen.
// An expired token is cleared so the stale name disappears as well.
func RequireSession(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := CurrentSession(c)
		if s == nil {
			log.Error("[AUTH] session middleware not installed", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if s.Token() != "" {
			c.Next()
			return
		}

		if s.Expired() {
			log.Info("[AUTH] session token expired", zap.String("sid", s.ID()))
			s.Clear()
			s.AddFlash(session.FlashWarning, "Your session has expired. Please log in again.")
		} else {
			s.AddFlash(session.FlashWarning, "Please log in to continue.")
		}
		if err := s.Save(c.Request, c.Writer); err != nil {
			log.Warn("[AUTH] session save failed", zap.Error(err))
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}
