package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed, scheduled engagement tied to a service
type Booking struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	ClientID      uint          `json:"client_id" gorm:"not null;index"`
	Client        Profile       `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID    uint          `json:"provider_id" gorm:"not null;index"`
	Provider      Profile       `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID     uint          `json:"service_id" gorm:"not null"`
	Service       Service       `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	ScheduledDate time.Time     `json:"scheduled_date" gorm:"not null"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'confirmed';check:status IN ('confirmed','completed','cancelled')"`
	Notes         *string       `json:"notes" gorm:"size:1000"`
	TransactionID *uint         `json:"transaction_id"`
	Transaction   *Transaction  `json:"transaction,omitempty" gorm:"foreignKey:TransactionID"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// CanCancel reports whether the booking may still be cancelled
func (b *Booking) CanCancel() bool {
	return b.Status == BookingStatusConfirmed
}

// CanComplete reports whether the booking may be marked completed
func (b *Booking) CanComplete() bool {
	return b.Status == BookingStatusConfirmed
}
