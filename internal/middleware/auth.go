package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/joblane/joblane-api/internal/errors"
)

// RequireAuth rejects unauthenticated API requests with the plain-text
// 401 body.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUser(c); !ok {
			apierrors.NotAuthenticated(c)
			return
		}
		c.Next()
	}
}

// RequireAuthPage sends unauthenticated browsers to the login page.
func RequireAuthPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated keeps signed-in users off the login and
// sign-up pages.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUser(c); ok {
			c.Redirect(http.StatusFound, "/protected")
			c.Abort()
			return
		}
		c.Next()
	}
}
