package models

import (
	"time"
)

// ServiceRequestStatus represents the current status of a service request
type ServiceRequestStatus string

const (
	RequestStatusPending   ServiceRequestStatus = "pending"
	RequestStatusAccepted  ServiceRequestStatus = "accepted"
	RequestStatusRejected  ServiceRequestStatus = "rejected"
	RequestStatusCompleted ServiceRequestStatus = "completed"
)

// ServiceRequest is a client's proposal to engage a provider, pending acceptance
type ServiceRequest struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	ClientID      uint                 `json:"client_id" gorm:"not null;index"`
	Client        Profile              `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID    uint                 `json:"provider_id" gorm:"not null;index"`
	Provider      Profile              `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID     *uint                `json:"service_id"`
	Service       *Service             `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Title         string               `json:"title" gorm:"size:200;not null"`
	Description   string               `json:"description" gorm:"type:text;not null"`
	Budget        *float64             `json:"budget" gorm:"type:decimal(10,2)"`
	PreferredDate *time.Time           `json:"preferred_date"`
	Status        ServiceRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','accepted','rejected','completed')"`
	BookingID     *uint                `json:"booking_id"`
	Booking       *Booking             `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// TableName specifies the table name for the ServiceRequest model
func (ServiceRequest) TableName() string {
	return "service_requests"
}

// CanAccept reports whether the request may move to accepted.
// Only pending requests can be accepted.
func (r *ServiceRequest) CanAccept() bool {
	return r.Status == RequestStatusPending
}

// CanReject reports whether the request may move to rejected.
// Only pending requests can be rejected.
func (r *ServiceRequest) CanReject() bool {
	return r.Status == RequestStatusPending
}

// CanComplete reports whether the request may move to completed.
// Only accepted requests can be completed.
func (r *ServiceRequest) CanComplete() bool {
	return r.Status == RequestStatusAccepted
}

// IsTerminal reports whether no further transitions are allowed
func (r *ServiceRequest) IsTerminal() bool {
	return r.Status == RequestStatusRejected || r.Status == RequestStatusCompleted
}

// ServiceRequestCreate represents the request structure for submitting a service request
type ServiceRequestCreate struct {
	ProviderID    uint     `json:"provider_id" binding:"required"`
	ServiceID     *uint    `json:"service_id"`
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Budget        *float64 `json:"budget"`
	PreferredDate *string  `json:"preferred_date"` // ISO8601, optional
}
