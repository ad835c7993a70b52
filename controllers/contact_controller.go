package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-frontend/middleware"
	"hotel-frontend/services"
	"hotel-frontend/utils"
)

type ContactController struct {
	Contact *services.ContactService
}

func NewContactController(svc *services.ContactService) *ContactController {
	return &ContactController{Contact: svc}
}

// SubmitContact (POST /api/contact)
func (ctrl *ContactController) SubmitContact(c *gin.Context) {
	var payload services.ContactRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	msg, err := ctrl.Contact.Submit(c.Request.Context(), middleware.SessionID(c), payload)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if msg.ID == 0 {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to send message")
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you for your message. We will get back to you soon.",
		"id":      msg.ID,
	})
}
