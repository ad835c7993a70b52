package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-frontend/models"
	"hotel-frontend/services"
	"hotel-frontend/utils"
)

const (
	userKey  = "authUser"
	adminKey = "adminService"
)

// RequireUser rejects requests from sessions without a signed-in guest.
func RequireUser(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.CurrentUser(SessionID(c))
		if err != nil {
			if !errors.Is(err, services.ErrNotAuthenticated) {
				log.Printf("❌ user guard: %v", err)
			}
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAdmin binds the admin client to the session's admin token.
func RequireAdmin(admin *services.AdminService, storage *services.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bound, err := admin.ForSession(storage.Local(SessionID(c)))
		if err != nil {
			if !errors.Is(err, services.ErrAdminSignedOut) {
				log.Printf("❌ admin guard: %v", err)
			}
			utils.JSONError(c, http.StatusUnauthorized, "Admin authentication required")
			c.Abort()
			return
		}
		c.Set(adminKey, bound)
		c.Next()
	}
}

// Admin returns the admin service bound by RequireAdmin.
func Admin(c *gin.Context) *services.AdminService {
	v, _ := c.Get(adminKey)
	svc, _ := v.(*services.AdminService)
	return svc
}

// CurrentUser returns the guest bound by RequireUser.
func CurrentUser(c *gin.Context) *models.User {
	v, _ := c.Get(userKey)
	u, _ := v.(*models.User)
	return u
}
