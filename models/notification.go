package models

import (
	"time"
)

// Notification types
const (
	NotificationTypeServiceRequest   = "service_request"
	NotificationTypeRequestAccepted  = "request_accepted"
	NotificationTypeRequestRejected  = "request_rejected"
	NotificationTypeRequestCompleted = "request_completed"
	NotificationTypeTransferSent     = "transfer_sent"
	NotificationTypeTransferReceived = "transfer_received"
	NotificationTypeRatingReceived   = "rating_received"
	NotificationTypeSystem           = "system"
)

type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Type      string    `json:"type" gorm:"size:50;not null"`
	Read      bool      `json:"read" gorm:"default:false"`
	RelatedID *uint     `json:"related_id"`
	EmailSent bool      `json:"email_sent" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	User Profile `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// EmailMessage is a queued outbound email. Rows stay in the outbox until
// delivered or the attempt limit is reached; a background job drains it.
type EmailMessage struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	NotificationID *uint      `json:"notification_id"`
	ToEmail        string     `json:"to_email" gorm:"size:255;not null"`
	Subject        string     `json:"subject" gorm:"size:255;not null"`
	HTML           string     `json:"html" gorm:"type:text;not null"`
	Attempts       int        `json:"attempts" gorm:"default:0"`
	LastError      string     `json:"last_error" gorm:"type:text"`
	SentAt         *time.Time `json:"sent_at"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the EmailMessage model
func (EmailMessage) TableName() string {
	return "email_outbox"
}
