package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontend/models"
)

func TestContactService_Submit(t *testing.T) {
	var received models.ContactForm
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contact", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"mail server down"}`))
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := NewContactService(db, NewAPIClient(srv.URL, 0))
	svc.Now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600)) }

	req := ContactRequest{Name: " Ana ", Email: "ana@example.com", Subject: "Late arrival", Message: "We arrive at midnight."}

	msg, err := svc.Submit(context.Background(), "s1", req)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusSent, msg.Status)
	assert.Equal(t, "Ana", received.Name)
	assert.Equal(t, "2024-03-01T11:00:00Z", received.Timestamp)

	status = http.StatusServiceUnavailable
	msg, err = svc.Submit(context.Background(), "s1", req)
	require.Error(t, err)
	assert.Equal(t, models.ContactStatusFailed, msg.Status)

	var stored []models.ContactMessage
	require.NoError(t, db.Order("id").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, models.ContactStatusSent, stored[0].Status)
	assert.Equal(t, models.ContactStatusFailed, stored[1].Status)
	assert.Contains(t, stored[1].LastError, "mail server down")
}

func TestContactService_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, NewAPIClient("http://backend.invalid", 0))

	tests := []struct {
		name  string
		req   ContactRequest
		field string
	}{
		{name: "missing name", req: ContactRequest{Email: "a@b.co", Message: "hi"}, field: "name"},
		{name: "missing email", req: ContactRequest{Name: "A", Message: "hi"}, field: "email"},
		{name: "bad email", req: ContactRequest{Name: "A", Email: "nope", Message: "hi"}, field: "email"},
		{name: "missing message", req: ContactRequest{Name: "A", Email: "a@b.co"}, field: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), "s1", tt.req)
			var fieldErr *ValidationError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}
