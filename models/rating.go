package models

import (
	"time"
)

// ProviderRating is a client's rating of a provider for a completed booking.
// One rating per booking.
type ProviderRating struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BookingID  uint      `json:"booking_id" gorm:"uniqueIndex;not null"`
	Booking    Booking   `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	ClientID   uint      `json:"client_id" gorm:"not null"`
	Client     Profile   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID uint      `json:"provider_id" gorm:"not null;index"`
	Provider   Profile   `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    *string   `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the ProviderRating model
func (ProviderRating) TableName() string {
	return "provider_ratings"
}

// ProviderRatingCreate represents the request structure for rating a provider
type ProviderRatingCreate struct {
	BookingID uint    `json:"booking_id" binding:"required"`
	Rating    int     `json:"rating" binding:"required,min=1,max=5"`
	Comment   *string `json:"comment"`
}

// ProviderRatingSummary aggregates a provider's ratings
type ProviderRatingSummary struct {
	ProviderID    uint    `json:"provider_id"`
	TotalRatings  int64   `json:"total_ratings"`
	AverageRating float64 `json:"average_rating"`
}
