package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-frontend/models"
	"hotel-frontend/utils"
)

// ContactRequest is the contact form as posted by the page.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactService forwards contact messages and keeps an outbox copy of each.
type ContactService struct {
	DB  *gorm.DB
	API *APIClient
	Now func() time.Time
}

func NewContactService(db *gorm.DB, api *APIClient) *ContactService {
	return &ContactService{DB: db, API: api, Now: time.Now}
}

func validateContact(req ContactRequest) error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return &ValidationError{Field: "name", Message: "Name is required", Err: ErrMissingField}
	case strings.TrimSpace(req.Email) == "":
		return &ValidationError{Field: "email", Message: "Email is required", Err: ErrMissingField}
	case !utils.IsValidEmail(req.Email):
		return &ValidationError{Field: "email", Message: "Email is not valid"}
	case strings.TrimSpace(req.Message) == "":
		return &ValidationError{Field: "message", Message: "Message is required", Err: ErrMissingField}
	}
	return nil
}

// Submit validates the form, stores it and forwards it to the backend. The
// stored copy records whether delivery worked.
func (s *ContactService) Submit(ctx context.Context, sessionID string, req ContactRequest) (models.ContactMessage, error) {
	if err := validateContact(req); err != nil {
		return models.ContactMessage{}, err
	}

	now := s.Now().UTC()
	msg := models.ContactMessage{
		SessionID:   sessionID,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Subject:     strings.TrimSpace(req.Subject),
		Message:     req.Message,
		SubmittedAt: now,
		Status:      models.ContactStatusPending,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		return models.ContactMessage{}, fmt.Errorf("store contact message: %w", err)
	}

	_, sendErr := s.API.Clone().Post(ctx, "/api/contact", models.ContactForm{
		Name:      msg.Name,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Timestamp: now.Format(time.RFC3339),
	})

	updates := map[string]interface{}{"status": models.ContactStatusSent, "last_error": ""}
	if sendErr != nil {
		updates = map[string]interface{}{"status": models.ContactStatusFailed, "last_error": sendErr.Error()}
	}
	if err := s.DB.Model(&msg).Updates(updates).Error; err != nil {
		log.Printf("contact: update outbox status: %v", err)
	}
	msg.Status = updates["status"].(string)
	msg.LastError = updates["last_error"].(string)

	if sendErr != nil {
		return msg, fmt.Errorf("send contact message: %w", sendErr)
	}
	return msg, nil
}
