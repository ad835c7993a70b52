// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-frontend/models"
	"hotel-frontend/utils"
)

const (
	guestErrorKey     = "guestValidationError"
	pendingBookingKey = "pendingBooking"

	// ProfilePath is where the site goes after an accepted booking.
	ProfilePath = "/profile"

	stayDateLayout = "2006-01-02"
)

var (
	ErrInvalidStay     = errors.New("check-out must be after check-in")
	ErrMissingField    = errors.New("required field missing")
	ErrRoomUnavailable = errors.New("room is not available for booking")
)

// GuestLimitError is returned when more guests are requested than the room category allows.
type GuestLimitError struct {
	Category string
	Max      int
}

func (e *GuestLimitError) Error() string {
	return fmt.Sprintf("This %s room can accommodate a maximum of %d guests. Please select %d or fewer guests.",
		e.Category, e.Max, e.Max)
}

// ValidationError marks one form field as invalid.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// MaxGuests is the guest cap of a room category.
func MaxGuests(category string) int {
	switch category {
	case models.RoomTypeSingle:
		return 2
	case models.RoomTypeDouble:
		return 3
	case models.RoomTypeSuite:
		return 4
	default:
		return 2
	}
}

// ParseStayDate reads a form date (YYYY-MM-DD, or RFC 3339). ok is false for
// empty or unreadable input.
func ParseStayDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(stayDateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Nights is the stay length rounded up to whole days. It can be zero or negative.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// Quote is the price of a stay in a room.
type Quote struct {
	Nights      int     `json:"nights"`
	Total       float64 `json:"total"`
	MaxGuests   int     `json:"maxGuests"`
	Submittable bool    `json:"submittable"`
}

// QuoteStay prices a stay. Missing dates or a non-positive night count give a
// zero total and a quote that cannot be submitted.
func QuoteStay(room models.Room, checkIn, checkOut string) Quote {
	q := Quote{MaxGuests: MaxGuests(room.Type)}
	in, ok := ParseStayDate(checkIn)
	if !ok {
		return q
	}
	out, ok := ParseStayDate(checkOut)
	if !ok {
		return q
	}
	nights := Nights(in, out)
	if nights <= 0 {
		return q
	}
	q.Nights = nights
	q.Total = float64(nights) * room.Price
	q.Submittable = true
	return q
}

// TotalPrice is nights × nightly price, or 0 when the stay is not valid.
func TotalPrice(room models.Room, checkIn, checkOut string) float64 {
	return QuoteStay(room, checkIn, checkOut).Total
}

// CheckGuests enforces the guest cap of the room category.
func CheckGuests(room models.Room, guests int) error {
	if limit := MaxGuests(room.Type); guests > limit {
		return &GuestLimitError{Category: room.Type, Max: limit}
	}
	return nil
}

// checkGuestCount rejects counts below one.
func checkGuestCount(guests int) error {
	if guests < 1 {
		return &ValidationError{Field: "guests", Message: "At least one guest is required", Err: ErrMissingField}
	}
	return nil
}

// ValidateBooking re-checks a whole draft against a room. today bounds the
// earliest check-in date.
func ValidateBooking(draft models.BookingDraft, room models.Room, today time.Time) (Quote, error) {
	quote := QuoteStay(room, draft.CheckIn, draft.CheckOut)

	if !room.Available {
		return quote, ErrRoomUnavailable
	}
	if err := CheckGuests(room, draft.Guests); err != nil {
		return quote, err
	}
	if err := checkGuestCount(draft.Guests); err != nil {
		return quote, err
	}

	in, ok := ParseStayDate(draft.CheckIn)
	if !ok {
		return quote, &ValidationError{Field: "checkIn", Message: "Check-in date is required", Err: ErrMissingField}
	}
	if _, ok := ParseStayDate(draft.CheckOut); !ok {
		return quote, &ValidationError{Field: "checkOut", Message: "Check-out date is required", Err: ErrMissingField}
	}
	y, m, d := today.Date()
	if in.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return quote, &ValidationError{Field: "checkIn", Message: "Check-in date cannot be in the past"}
	}
	if !quote.Submittable {
		return quote, &ValidationError{Field: "checkOut", Message: "Check-out must be after check-in", Err: ErrInvalidStay}
	}

	required := []struct{ field, label, value string }{
		{"firstName", "First name", draft.FirstName},
		{"lastName", "Last name", draft.LastName},
		{"email", "Email", draft.Email},
		{"phone", "Phone", draft.Phone},
		{"address", "Address", draft.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return quote, &ValidationError{Field: r.field, Message: r.label + " is required", Err: ErrMissingField}
		}
	}
	if !utils.IsValidEmail(draft.Email) {
		return quote, &ValidationError{Field: "email", Message: "Email is not valid"}
	}
	return quote, nil
}

// BookingState is where a booking attempt ended up.
type BookingState string

const (
	BookingIdle       BookingState = "idle"
	BookingValidating BookingState = "validating"
	BookingRejected   BookingState = "rejected"
	BookingAccepted   BookingState = "accepted"
)

// Notice is a transient message the page shows and dismisses on its own.
type Notice struct {
	Message        string    `json:"message"`
	DismissAfterMs int64     `json:"dismissAfterMs"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// BookingAttempt is the outcome of one submit.
type BookingAttempt struct {
	State    BookingState           `json:"state"`
	Err      error                  `json:"-"`
	Error    string                 `json:"error,omitempty"`
	Field    string                 `json:"field,omitempty"`
	Notice   *Notice                `json:"notice,omitempty"`
	Quote    Quote                  `json:"quote"`
	Booking  *models.PendingBooking `json:"booking,omitempty"`
	Redirect string                 `json:"redirect,omitempty"`
}

// BookingService runs the booking form against session storage.
type BookingService struct {
	NoticeDuration time.Duration
	SubmitDelay    time.Duration
	Now            func() time.Time
}

func NewBookingService(noticeDuration, submitDelay time.Duration) *BookingService {
	return &BookingService{NoticeDuration: noticeDuration, SubmitDelay: submitDelay, Now: time.Now}
}

func (s *BookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *BookingService) notice(message string) *Notice {
	return &Notice{
		Message:        message,
		DismissAfterMs: s.NoticeDuration.Milliseconds(),
		ExpiresAt:      s.now().Add(s.NoticeDuration),
	}
}

// CheckGuests validates a guest count as it is typed. A rejected count is
// remembered as the field error until a valid count replaces it. Only the
// guest cap raises a notice.
func (s *BookingService) CheckGuests(store KeyValueStore, room models.Room, guests int) (*Notice, error) {
	if err := checkGuestCount(guests); err != nil {
		s.setGuestError(store, err)
		return nil, err
	}
	if err := CheckGuests(room, guests); err != nil {
		s.setGuestError(store, err)
		return s.notice(err.Error()), err
	}
	if err := store.Remove(guestErrorKey); err != nil {
		log.Printf("booking: %v", err)
	}
	return nil, nil
}

func (s *BookingService) setGuestError(store KeyValueStore, err error) {
	if sErr := store.Set(guestErrorKey, err.Error()); sErr != nil {
		log.Printf("booking: %v", sErr)
	}
}

// GuestError returns the outstanding guest field error, if any.
func (s *BookingService) GuestError(store KeyValueStore) string {
	msg, _, err := store.Get(guestErrorKey)
	if err != nil {
		log.Printf("booking: %v", err)
	}
	return msg
}

// Submit validates the draft again and, when it passes, records it as the
// session's pending booking.
func (s *BookingService) Submit(ctx context.Context, store KeyValueStore, room models.Room, draft models.BookingDraft) BookingAttempt {
	attempt := BookingAttempt{State: BookingValidating}

	quote, err := ValidateBooking(draft, room, s.now())
	attempt.Quote = quote
	if err != nil {
		return s.reject(store, attempt, err)
	}

	if s.SubmitDelay > 0 {
		timer := time.NewTimer(s.SubmitDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return s.reject(store, attempt, ctx.Err())
		case <-timer.C:
		}
	}

	booking := &models.PendingBooking{
		BookingDraft: draft,
		Reference:    uuid.NewString(),
		RoomID:       room.ID,
		RoomName:     room.Name,
		RoomPrice:    room.Price,
		RoomType:     room.Type,
		Nights:       quote.Nights,
		TotalAmount:  quote.Total,
		CreatedAt:    s.now().UTC(),
	}
	if err := SetJSON(store, pendingBookingKey, booking); err != nil {
		return s.reject(store, attempt, err)
	}
	if err := store.Remove(guestErrorKey); err != nil {
		log.Printf("booking: %v", err)
	}

	attempt.State = BookingAccepted
	attempt.Booking = booking
	attempt.Redirect = ProfilePath
	return attempt
}

func (s *BookingService) reject(store KeyValueStore, attempt BookingAttempt, err error) BookingAttempt {
	attempt.State = BookingRejected
	attempt.Err = err
	attempt.Error = err.Error()

	var limitErr *GuestLimitError
	var fieldErr *ValidationError
	switch {
	case errors.As(err, &limitErr):
		attempt.Field = "guests"
		attempt.Notice = s.notice(err.Error())
		s.setGuestError(store, err)
	case errors.As(err, &fieldErr):
		attempt.Field = fieldErr.Field
	case errors.Is(err, ErrRoomUnavailable):
	default:
		log.Printf("Booking failed: %v", err)
		attempt.Error = "Booking failed. Please try again."
	}
	return attempt
}

// Pending returns the session's accepted booking, or nil.
func (s *BookingService) Pending(store KeyValueStore) (*models.PendingBooking, error) {
	var booking models.PendingBooking
	ok, err := GetJSON(store, pendingBookingKey, &booking)
	if err != nil || !ok {
		return nil, err
	}
	return &booking, nil
}
