package server

import (
	"time"

	"storefront_poc/internal/core"
	"storefront_poc/internal/i18n"
	"storefront_poc/internal/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Session cookie and gin context keys
const (
	sessionIDKey = "sid"
	userIDKey    = "user_id"
	languageKey  = "language"
)

// requestLogger logs every request through the global logger
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= 500 {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// sessionID makes sure every visitor carries a session ID cookie
func sessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		sid, _ := session.Get(sessionIDKey).(string)
		if sid == "" {
			sid = uuid.NewString()
			session.Set(sessionIDKey, sid)
			if err := session.Save(); err != nil {
				logger.Error().Err(err).Msg("failed to save session cookie")
			}
			logger.Debug().Str("session_id", sid).Msg("new session started")
		}
		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// resolveLanguage resolves the response language from Accept-Language
func resolveLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(languageKey, i18n.Resolve(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func languageOf(c *gin.Context) language.Tag {
	if tag, ok := c.Get(languageKey); ok {
		return tag.(language.Tag)
	}
	return i18n.Default()
}

// viewOf builds the request view from the session
func viewOf(c *gin.Context) *core.View {
	view := core.NewView(c.GetString(sessionIDKey), i18n.NewTranslator(languageOf(c)))
	view.UserID, _ = sessions.Default(c).Get(userIDKey).(string)
	return view
}
