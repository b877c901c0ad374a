package models

import (
	"time"
)

// Service is a priced offering published by a provider
type Service struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	ProviderID  uint     `json:"provider_id" gorm:"not null;index"`
	Provider    Profile  `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Title       string   `json:"title" gorm:"size:200;not null"`
	Description string   `json:"description" gorm:"type:text"`
	Category    string   `json:"category" gorm:"size:100;not null;index"`
	Price       float64  `json:"price" gorm:"type:decimal(10,2);not null"`
	Duration    *int     `json:"duration"` // in minutes
	IsActive    bool     `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceCreate represents the request structure for publishing a service
type ServiceCreate struct {
	Title       string  `json:"title" binding:"required,min=2,max=200"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Duration    *int    `json:"duration"`
}

// ServiceUpdate represents the request structure for updating a service
type ServiceUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	IsActive    *bool    `json:"is_active"`
}
