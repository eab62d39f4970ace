package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/ecofind-golang/internal/session"
)

// RequireLogin is the "security guard" for the HTML routes.
// Callers without an identity in their session are sent to /login before
// the handler runs.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.From(c)
		if !sess.LoggedIn() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("userID", sess.Identity.UserID)
		c.Next()
	}
}

// RequireLoginJSON guards endpoints that answer the page's scripts.
// It replies with the same {success, message} shape the handler would.
func RequireLoginJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.From(c)
		if !sess.LoggedIn() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Please login to add items to cart.",
			})
			c.Abort()
			return
		}

		c.Set("userID", sess.Identity.UserID)
		c.Next()
	}
}
