package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-frontend/middleware"
	"hotel-frontend/services"
	"hotel-frontend/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// loginPayload accepts the identifier under any of the names the site used.
type loginPayload struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (p loginPayload) identifier() string {
	for _, v := range []string{p.Identifier, p.Username, p.Email} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Login (POST /api/auth/login)
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	identifier := payload.identifier()
	if strings.TrimSpace(identifier) == "" || strings.TrimSpace(payload.Password) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Please enter your name/email and password")
		return
	}

	session := ctrl.Auth.Session(middleware.SessionID(c))
	if !session.Login(c.Request.Context(), identifier, payload.Password) {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid name/email or password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": session.User()})
}

// Logout (POST /api/auth/logout) always succeeds locally.
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.Auth.Session(middleware.SessionID(c)).Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me (GET /api/auth/me) re-validates the stored token. loading tells whether
// another auth call of the same browser was still running when this one came in.
func (ctrl *AuthController) Me(c *gin.Context) {
	session := ctrl.Auth.Session(middleware.SessionID(c))
	loading := session.IsLoading()

	user := session.Restore(c.Request.Context())
	if user == nil {
		respondAuthError(c, services.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "loading": loading})
}

// Register (POST /api/auth/register)
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload services.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	err := ctrl.Auth.Session(middleware.SessionID(c)).Register(c.Request.Context(), payload)
	if err == nil {
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "Registration successful! Please login.",
			"redirect": "/login",
		})
		return
	}
	if errors.Is(err, services.ErrPasswordMismatch) {
		utils.JSONValidationError(c, http.StatusUnprocessableEntity, "confirmPassword", "Passwords do not match")
		return
	}
	if respondValidationError(c, err) {
		return
	}
	respondUpstreamError(c, err)
}
