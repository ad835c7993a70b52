package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionKey is the gin context key holding the browser session id.
const SessionKey = "sessionID"

const sessionMaxAge = 30 * 24 * 60 * 60

// Session gives every browser a stable id cookie. Storage, auth and admin
// state are all scoped by it.
func Session(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(SessionKey, id)
		c.Next()
	}
}

// SessionID returns the id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
