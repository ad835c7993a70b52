package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontend/models"
)

var fixedNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func validDraft() models.BookingDraft {
	return models.BookingDraft{
		CheckIn:   "2024-01-15",
		CheckOut:  "2024-01-18",
		Guests:    2,
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
		Phone:     "+351 912 345 678",
		Address:   "Rua Augusta 1, Lisboa",
	}
}

func newTestBookingService() *BookingService {
	svc := NewBookingService(4*time.Second, 0)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func TestMaxGuests(t *testing.T) {
	assert.Equal(t, 2, MaxGuests(models.RoomTypeSingle))
	assert.Equal(t, 3, MaxGuests(models.RoomTypeDouble))
	assert.Equal(t, 4, MaxGuests(models.RoomTypeSuite))
	assert.Equal(t, 2, MaxGuests("family"))
	assert.Equal(t, 2, MaxGuests(""))
}

func TestCheckGuests(t *testing.T) {
	single := testCatalog()[0]

	err := CheckGuests(single, 3)
	var limitErr *GuestLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 2, limitErr.Max)
	assert.Equal(t, "This single room can accommodate a maximum of 2 guests. Please select 2 or fewer guests.", err.Error())

	assert.NoError(t, CheckGuests(single, 2))
	assert.NoError(t, CheckGuests(testCatalog()[4], 4))
	assert.Error(t, CheckGuests(testCatalog()[4], 5))
}

func TestQuoteStay(t *testing.T) {
	room := testCatalog()[0]

	tests := []struct {
		name        string
		checkIn     string
		checkOut    string
		nights      int
		total       float64
		submittable bool
	}{
		{name: "three nights", checkIn: "2024-01-15", checkOut: "2024-01-18", nights: 3, total: 450, submittable: true},
		{name: "same day", checkIn: "2024-01-15", checkOut: "2024-01-15", nights: 0, total: 0},
		{name: "reversed", checkIn: "2024-01-18", checkOut: "2024-01-15", nights: 0, total: 0},
		{name: "missing check-out", checkIn: "2024-01-15", checkOut: "", nights: 0, total: 0},
		{name: "partial day rounds up", checkIn: "2024-01-15T14:00:00Z", checkOut: "2024-01-16T11:00:00Z", nights: 1, total: 150, submittable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuoteStay(room, tt.checkIn, tt.checkOut)
			assert.Equal(t, tt.nights, q.Nights)
			assert.Equal(t, tt.total, q.Total)
			assert.Equal(t, tt.submittable, q.Submittable)
			assert.Equal(t, 2, q.MaxGuests)
		})
	}

	assert.Equal(t, 450.0, TotalPrice(room, "2024-01-15", "2024-01-18"))
}

func TestValidateBooking(t *testing.T) {
	room := testCatalog()[0]

	tests := []struct {
		name  string
		edit  func(d *models.BookingDraft)
		room  models.Room
		field string
		isErr error
	}{
		{name: "too many guests", edit: func(d *models.BookingDraft) { d.Guests = 3 }, field: "guests"},
		{name: "no guests", edit: func(d *models.BookingDraft) { d.Guests = 0 }, field: "guests", isErr: ErrMissingField},
		{name: "check-in in the past", edit: func(d *models.BookingDraft) { d.CheckIn = "2024-01-09" }, field: "checkIn"},
		{name: "zero nights", edit: func(d *models.BookingDraft) { d.CheckOut = d.CheckIn }, field: "checkOut", isErr: ErrInvalidStay},
		{name: "missing phone", edit: func(d *models.BookingDraft) { d.Phone = " " }, field: "phone", isErr: ErrMissingField},
		{name: "bad email", edit: func(d *models.BookingDraft) { d.Email = "ana@" }, field: "email"},
		{name: "unavailable room", edit: func(d *models.BookingDraft) {}, room: testCatalog()[3], isErr: ErrRoomUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.edit(&draft)
			r := room
			if tt.room.ID != "" {
				r = tt.room
			}

			_, err := ValidateBooking(draft, r, fixedNow)
			require.Error(t, err)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
			if tt.field == "guests" && tt.isErr == nil {
				var limitErr *GuestLimitError
				assert.ErrorAs(t, err, &limitErr)
				return
			}
			var fieldErr *ValidationError
			if tt.field != "" && assert.ErrorAs(t, err, &fieldErr) {
				assert.Equal(t, tt.field, fieldErr.Field)
			}
		})
	}

	q, err := ValidateBooking(validDraft(), room, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
}

func TestBookingService_CheckGuests(t *testing.T) {
	store := NewStorageService(newTestDB(t)).Session("s1")
	svc := newTestBookingService()
	room := testCatalog()[0]

	notice, err := svc.CheckGuests(store, room, 3)
	require.Error(t, err)
	require.NotNil(t, notice)
	assert.Contains(t, notice.Message, "maximum of 2 guests")
	assert.Equal(t, int64(4000), notice.DismissAfterMs)
	assert.Equal(t, fixedNow.Add(4*time.Second), notice.ExpiresAt)
	assert.Equal(t, err.Error(), svc.GuestError(store))

	notice, err = svc.CheckGuests(store, room, 2)
	require.NoError(t, err)
	assert.Nil(t, notice)
	assert.Empty(t, svc.GuestError(store))
}

func TestBookingService_CheckGuestsBelowOne(t *testing.T) {
	store := NewStorageService(newTestDB(t)).Session("s1")
	svc := newTestBookingService()
	room := testCatalog()[0]

	_, err := svc.CheckGuests(store, room, 3)
	require.Error(t, err)

	for _, guests := range []int{0, -4} {
		notice, err := svc.CheckGuests(store, room, guests)
		var fieldErr *ValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "guests", fieldErr.Field)
		assert.ErrorIs(t, err, ErrMissingField)
		assert.Nil(t, notice)
		assert.Equal(t, "At least one guest is required", svc.GuestError(store))
	}
}

func TestBookingService_Submit(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		store := NewStorageService(newTestDB(t)).Session("s1")
		svc := newTestBookingService()
		room := testCatalog()[0]

		attempt := svc.Submit(context.Background(), store, room, validDraft())

		require.Equal(t, BookingAccepted, attempt.State)
		assert.Equal(t, ProfilePath, attempt.Redirect)
		require.NotNil(t, attempt.Booking)
		assert.NotEmpty(t, attempt.Booking.Reference)
		assert.Equal(t, 3, attempt.Booking.Nights)
		assert.Equal(t, 450.0, attempt.Booking.TotalAmount)
		assert.Equal(t, models.FlexID("1"), attempt.Booking.RoomID)

		pending, err := svc.Pending(store)
		require.NoError(t, err)
		require.NotNil(t, pending)
		assert.Equal(t, attempt.Booking.Reference, pending.Reference)
		assert.Equal(t, "Ana", pending.FirstName)
	})

	t.Run("rejected for guest limit leaves no pending booking", func(t *testing.T) {
		store := NewStorageService(newTestDB(t)).Session("s1")
		svc := newTestBookingService()

		draft := validDraft()
		draft.Guests = 3
		attempt := svc.Submit(context.Background(), store, testCatalog()[0], draft)

		assert.Equal(t, BookingRejected, attempt.State)
		assert.Equal(t, "guests", attempt.Field)
		require.NotNil(t, attempt.Notice)
		assert.Contains(t, attempt.Error, "2")
		assert.NotEmpty(t, svc.GuestError(store))

		pending, err := svc.Pending(store)
		require.NoError(t, err)
		assert.Nil(t, pending)
	})

	t.Run("cancelled during delay", func(t *testing.T) {
		store := NewStorageService(newTestDB(t)).Session("s1")
		svc := newTestBookingService()
		svc.SubmitDelay = time.Minute

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		attempt := svc.Submit(ctx, store, testCatalog()[0], validDraft())

		assert.Equal(t, BookingRejected, attempt.State)
		assert.ErrorIs(t, attempt.Err, context.Canceled)
		assert.Equal(t, "Booking failed. Please try again.", attempt.Error)
	})
}
