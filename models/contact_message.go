package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ContactStatusPending = "PENDING"
	ContactStatusSent    = "SENT"
	ContactStatusFailed  = "FAILED"
)

// ContactForm is the payload forwarded to POST /api/contact.
type ContactForm struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ContactMessage is the outbox copy of a contact form submission.
type ContactMessage struct {
	gorm.Model

	SessionID   string    `gorm:"size:64;index" json:"sessionId"`
	Name        string    `gorm:"size:255" json:"name"`
	Email       string    `gorm:"size:255" json:"email"`
	Phone       string    `gorm:"size:64" json:"phone"`
	Subject     string    `gorm:"size:255" json:"subject"`
	Message     string    `gorm:"type:text" json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
	Status      string    `gorm:"size:16;default:PENDING" json:"status"`
	LastError   string    `gorm:"type:text" json:"lastError,omitempty"`
}
