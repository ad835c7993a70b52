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

type RoomController struct {
	Rooms    *services.RoomService
	Bookings *services.BookingService
	Storage  *services.StorageService
}

func NewRoomController(rooms *services.RoomService, bookings *services.BookingService, storage *services.StorageService) *RoomController {
	return &RoomController{Rooms: rooms, Bookings: bookings, Storage: storage}
}

// roomDetail is a room together with what the booking form needs to know about it.
type roomDetail struct {
	models.Room
	MaxGuests  int    `json:"maxGuests"`
	GuestError string `json:"guestError,omitempty"`
}

// GetRooms (GET /api/rooms?search=&type=&price=)
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	var criteria services.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filter: "+err.Error())
		return
	}

	if !ctrl.Rooms.Loaded() {
		// errors are logged by Load; an empty, loaded catalog is still a valid answer
		_ = ctrl.Rooms.Load(c.Request.Context())
	}

	rooms, loaded := ctrl.Rooms.Filter(criteria)
	c.JSON(http.StatusOK, gin.H{
		"loading":  !loaded,
		"rooms":    rooms,
		"count":    len(rooms),
		"filtered": criteria.Active(),
		"filters":  criteria,
	})
}

// RefreshRooms (POST /api/rooms/refresh)
func (ctrl *RoomController) RefreshRooms(c *gin.Context) {
	if err := ctrl.Rooms.Load(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "count": len(ctrl.Rooms.Rooms())})
}

// GetRoom (GET /api/rooms/:id) also makes the room the session's selected one.
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id := c.Param("id")
	store := ctrl.Storage.Session(middleware.SessionID(c))

	room, err := ctrl.Rooms.Select(store, id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Room not found")
			return
		}
		log.Printf("❌ select room %s: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load room")
		return
	}

	c.JSON(http.StatusOK, roomDetail{
		Room:       room,
		MaxGuests:  services.MaxGuests(room.Type),
		GuestError: ctrl.Bookings.GuestError(store),
	})
}

// GetSelectedRoom (GET /api/rooms/selected)
func (ctrl *RoomController) GetSelectedRoom(c *gin.Context) {
	room, err := ctrl.Rooms.Selected(ctrl.Storage.Session(middleware.SessionID(c)))
	if err != nil {
		log.Printf("❌ selected room: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load selected room")
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

type guestCheckPayload struct {
	Guests int `json:"guests"`
}

// CheckGuests (POST /api/rooms/:id/guests)
func (ctrl *RoomController) CheckGuests(c *gin.Context) {
	room, ok := ctrl.room(c)
	if !ok {
		return
	}
	var payload guestCheckPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	store := ctrl.Storage.Session(middleware.SessionID(c))
	notice, err := ctrl.Bookings.CheckGuests(store, room, payload.Guests)
	if err != nil {
		body := gin.H{"success": false, "error": err.Error(), "field": "guests"}
		if notice != nil {
			body["notice"] = notice
		}
		c.JSON(http.StatusUnprocessableEntity, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"guests":    payload.Guests,
		"maxGuests": services.MaxGuests(room.Type),
	})
}

type quotePayload struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// QuoteStay (POST /api/rooms/:id/quote)
func (ctrl *RoomController) QuoteStay(c *gin.Context) {
	room, ok := ctrl.room(c)
	if !ok {
		return
	}
	var payload quotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	c.JSON(http.StatusOK, services.QuoteStay(room, payload.CheckIn, payload.CheckOut))
}

func (ctrl *RoomController) room(c *gin.Context) (models.Room, bool) {
	room, err := ctrl.Rooms.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Room not found")
		return models.Room{}, false
	}
	return room, true
}
