package models

import "time"

// BookingDraft is the booking form state. It only lives for one form session.
type BookingDraft struct {
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	Guests          int    `json:"guests"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	SpecialRequests string `json:"specialRequests"`
}

// PendingBooking is an accepted draft together with the room it was made for.
// It is kept in session storage until the checkout flow picks it up.
type PendingBooking struct {
	BookingDraft

	Reference   string    `json:"reference"`
	RoomID      FlexID    `json:"roomId"`
	RoomName    string    `json:"roomName"`
	RoomPrice   float64   `json:"roomPrice"`
	RoomType    string    `json:"roomType"`
	Nights      int       `json:"nights"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}
