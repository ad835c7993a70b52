package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-frontend/middleware"
	"hotel-frontend/services"
	"hotel-frontend/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	Admin   *services.AdminService
	Storage *services.StorageService
}

func NewAdminController(admin *services.AdminService, storage *services.StorageService) *AdminController {
	return &AdminController{Admin: admin, Storage: storage}
}

type adminLoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login (POST /admin/login) answers with the backend's body as-is.
func (ctrl *AdminController) Login(c *gin.Context) {
	var payload adminLoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(payload.Username) == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	store := ctrl.Storage.Local(middleware.SessionID(c))
	login, err := ctrl.Admin.SignIn(c.Request.Context(), store, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrMissingAdminToken) {
			utils.JSONError(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", login.Raw)
}

// Logout (POST /admin/logout)
func (ctrl *AdminController) Logout(c *gin.Context) {
	ctrl.Admin.SignOut(ctrl.Storage.Local(middleware.SessionID(c)))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type adminFetch func(*services.AdminService, context.Context) (json.RawMessage, error)

func (ctrl *AdminController) passthrough(fetch adminFetch) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := fetch(middleware.Admin(c), c.Request.Context())
		if err != nil {
			respondUpstreamError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}

// Dashboard (GET /admin/dashboard)
func (ctrl *AdminController) Dashboard() gin.HandlerFunc {
	return ctrl.passthrough((*services.AdminService).Dashboard)
}

// Bookings (GET /admin/bookings)
func (ctrl *AdminController) Bookings() gin.HandlerFunc {
	return ctrl.passthrough((*services.AdminService).Bookings)
}

// Rooms (GET /admin/rooms)
func (ctrl *AdminController) Rooms() gin.HandlerFunc {
	return ctrl.passthrough((*services.AdminService).Rooms)
}

// Users (GET /admin/users)
func (ctrl *AdminController) Users() gin.HandlerFunc {
	return ctrl.passthrough((*services.AdminService).Users)
}

// ExportBookings (GET /admin/bookings/export)
func (ctrl *AdminController) ExportBookings(c *gin.Context) {
	raw, err := middleware.Admin(c).Bookings(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	data, err := services.ExportRecords(raw, "Bookings")
	if err != nil {
		log.Printf("❌ export bookings: %v", err)
		utils.JSONError(c, http.StatusBadGateway, "Unexpected bookings format")
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
