package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-frontend/services"
	"hotel-frontend/utils"
)

// respondUpstreamError turns a backend failure into a response. 4xx answers
// keep their status, anything else becomes 502.
func respondUpstreamError(c *gin.Context, err error) {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		utils.JSONError(c, status, msg)
		return
	}
	log.Printf("❌ upstream error: %v", err)
	utils.JSONError(c, http.StatusBadGateway, "Network error. Please try again.")
}

// respondValidationError writes a 422 for form errors and reports whether err was one.
func respondValidationError(c *gin.Context, err error) bool {
	var fieldErr *services.ValidationError
	if errors.As(err, &fieldErr) {
		utils.JSONValidationError(c, http.StatusUnprocessableEntity, fieldErr.Field, fieldErr.Message)
		return true
	}
	return false
}

// respondAuthError answers 401 for a signed-out session, 500 for anything else.
func respondAuthError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotAuthenticated) {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	log.Printf("❌ auth: %v", err)
	utils.JSONError(c, http.StatusInternalServerError, "Authentication check failed")
}
