package models

import (
	"time"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// Transaction records a priced event tied to a booking or request
type Transaction struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	ClientID        uint              `json:"client_id" gorm:"not null;index"`
	Client          Profile           `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID      uint              `json:"provider_id" gorm:"not null;index"`
	Provider        Profile           `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID       *uint             `json:"service_id"`
	Service         *Service          `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Amount          float64           `json:"amount" gorm:"type:decimal(10,2);not null"`
	TransactionType string            `json:"transaction_type" gorm:"size:50;not null"` // service_payment
	Status          TransactionStatus `json:"status" gorm:"type:varchar(20);not null"`
	Description     string            `json:"description" gorm:"type:text;not null"`
	ScheduledDate   *time.Time        `json:"scheduled_date"`
	CreatedAt       time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
