package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/joblane/joblane-api/internal/constants"
	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/services"
)

// sessionCache is the snapshot of a resolved session kept inside the
// signed cookie. It is trusted for a short window so that most requests
// never touch the session table.
type sessionCache struct {
	CachedAt time.Time      `json:"cached_at"`
	User     models.User    `json:"user"`
	Session  models.Session `json:"session"`
}

func (sc *sessionCache) fresh() bool {
	return time.Since(sc.CachedAt) < constants.SessionCookieCacheWindow &&
		!sc.Session.Expired()
}

// LoadSession resolves the caller's session, if any, and attaches the
// user and session to the request context. It never rejects a request;
// RequireAuth does that.
//
// The signed cookie carries the session token plus a cached snapshot of
// the resolved session. While the snapshot is fresh the database is not
// consulted; once it goes stale the token is re-resolved against the
// session table and the snapshot refreshed. Deleting the database row
// therefore signs the user out everywhere within the cache window.
func LoadSession(authService *services.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		token, ok := sess.Get(constants.SessionValueToken).(string)
		if !ok || token == "" {
			c.Next()
			return
		}

		if raw, ok := sess.Get(constants.SessionValueCache).(string); ok {
			var cache sessionCache
			if err := json.Unmarshal([]byte(raw), &cache); err == nil && cache.fresh() {
				c.Set(constants.ContextKeyUser, &cache.User)
				c.Set(constants.ContextKeySession, &cache.Session)
				c.Next()
				return
			}
		}

		session, err := authService.ResolveSession(token)
		if err != nil {
			// Token no longer maps to a live row; drop the cookie.
			sess.Clear()
			if err := sess.Save(); err != nil {
				logger.Warn("failed to clear session cookie", zap.Error(err))
			}
			c.Next()
			return
		}

		writeSessionCookie(c, sess, session, logger)

		user := session.User
		c.Set(constants.ContextKeyUser, &user)
		c.Set(constants.ContextKeySession, session)
		c.Next()
	}
}

// StoreSession writes a freshly created session into the cookie. Used by
// the sign-in and sign-up handlers.
func StoreSession(c *gin.Context, session *models.Session, logger *zap.Logger) {
	sess := sessions.Default(c)
	sess.Set(constants.SessionValueToken, session.Token)
	writeSessionCookie(c, sess, session, logger)
}

// ClearSession drops the cookie. Used by the sign-out handler.
func ClearSession(c *gin.Context, logger *zap.Logger) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := sess.Save(); err != nil {
		logger.Warn("failed to clear session cookie", zap.Error(err))
	}
}

func writeSessionCookie(c *gin.Context, sess sessions.Session, session *models.Session, logger *zap.Logger) {
	cache := sessionCache{
		CachedAt: time.Now(),
		User:     session.User,
		Session:  *session,
	}
	// Relations are not part of the snapshot.
	cache.Session.User = models.User{}

	raw, err := json.Marshal(cache)
	if err != nil {
		logger.Warn("failed to encode session cache", zap.Error(err))
		return
	}

	sess.Set(constants.SessionValueCache, string(raw))
	sess.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(constants.SessionLifetime / time.Second),
		HttpOnly: true,
		Secure:   c.Request.TLS != nil,
	})
	if err := sess.Save(); err != nil {
		logger.Warn("failed to save session cookie", zap.Error(err))
	}
}

// GetUser retrieves the authenticated user from context.
func GetUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// GetSession retrieves the authenticated session from context.
func GetSession(c *gin.Context) (*models.Session, bool) {
	v, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok && session != nil
}
