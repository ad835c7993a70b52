package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-frontend/middleware"
	"hotel-frontend/models"
	"hotel-frontend/services"
	"hotel-frontend/utils"
)

type BookingController struct {
	Rooms    *services.RoomService
	Bookings *services.BookingService
	Storage  *services.StorageService
}

func NewBookingController(rooms *services.RoomService, bookings *services.BookingService, storage *services.StorageService) *BookingController {
	return &BookingController{Rooms: rooms, Bookings: bookings, Storage: storage}
}

// BookRoom (POST /api/rooms/:id/book)
func (ctrl *BookingController) BookRoom(c *gin.Context) {
	room, err := ctrl.Rooms.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Room not found")
		return
	}

	var draft models.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload: "+err.Error())
		return
	}

	store := ctrl.Storage.Session(middleware.SessionID(c))
	attempt := ctrl.Bookings.Submit(c.Request.Context(), store, room, draft)

	switch attempt.State {
	case services.BookingAccepted:
		if u := middleware.CurrentUser(c); u != nil {
			log.Printf("✅ Booking %s accepted for user %s (room %s)", attempt.Booking.Reference, u.ID, room.ID)
		}
		c.JSON(http.StatusCreated, attempt)
	default:
		var limitErr *services.GuestLimitError
		var fieldErr *services.ValidationError
		switch {
		case errors.As(attempt.Err, &limitErr), errors.As(attempt.Err, &fieldErr):
			c.JSON(http.StatusUnprocessableEntity, attempt)
		case errors.Is(attempt.Err, services.ErrRoomUnavailable):
			c.JSON(http.StatusConflict, attempt)
		default:
			c.JSON(http.StatusInternalServerError, attempt)
		}
	}
}

// GetPendingBooking (GET /api/bookings/pending)
func (ctrl *BookingController) GetPendingBooking(c *gin.Context) {
	booking, err := ctrl.Bookings.Pending(ctrl.Storage.Session(middleware.SessionID(c)))
	if err != nil {
		log.Printf("❌ pending booking: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load pending booking")
		return
	}
	if booking == nil {
		utils.JSONError(c, http.StatusNotFound, "No pending booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// GetProfile (GET /api/profile) is what the profile page shows after a booking.
func (ctrl *BookingController) GetProfile(c *gin.Context) {
	booking, err := ctrl.Bookings.Pending(ctrl.Storage.Session(middleware.SessionID(c)))
	if err != nil {
		log.Printf("❌ profile pending booking: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"user":           middleware.CurrentUser(c),
		"pendingBooking": booking,
	})
}
