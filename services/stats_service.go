package services

import (
	"gorm.io/gorm"

	"servicelink-server/database"
	"servicelink-server/models"
)

// StatsService aggregates per-user dashboard counters
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService() *StatsService {
	return &StatsService{db: database.DB}
}

// ClientStats are the dashboard counters for a client profile
type ClientStats struct {
	TotalRequests       int64   `json:"total_requests"`
	PendingRequests     int64   `json:"pending_requests"`
	TotalBookings       int64   `json:"total_bookings"`
	TotalSpent          float64 `json:"total_spent"`
	FavoritesCount      int64   `json:"favorites_count"`
	UnreadNotifications int64   `json:"unread_notifications"`
}

// ProviderStats are the dashboard counters for a provider profile
type ProviderStats struct {
	ActiveServices      int64   `json:"active_services"`
	TotalRequests       int64   `json:"total_requests"`
	PendingRequests     int64   `json:"pending_requests"`
	TotalBookings       int64   `json:"total_bookings"`
	TotalEarned         float64 `json:"total_earned"`
	AverageRating       float64 `json:"average_rating"`
	UnreadNotifications int64   `json:"unread_notifications"`
}

// GetClientStats aggregates the client-side dashboard counters
func (s *StatsService) GetClientStats(userID uint) (*ClientStats, error) {
	stats := &ClientStats{}

	if err := s.db.Model(&models.ServiceRequest{}).
		Where("client_id = ?", userID).
		Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ServiceRequest{}).
		Where("client_id = ? AND status = ?", userID, models.RequestStatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Booking{}).
		Where("client_id = ?", userID).
		Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Transaction{}).
		Where("client_id = ? AND status IN ?", userID,
			[]models.TransactionStatus{models.TransactionStatusConfirmed, models.TransactionStatusCompleted}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalSpent).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&stats.FavoritesCount).Error; err != nil {
		return nil, err
	}

	if err := s.countUnread(userID, &stats.UnreadNotifications); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetProviderStats aggregates the provider-side dashboard counters
func (s *StatsService) GetProviderStats(userID uint) (*ProviderStats, error) {
	stats := &ProviderStats{}

	if err := s.db.Model(&models.Service{}).
		Where("provider_id = ? AND is_active = ?", userID, true).
		Count(&stats.ActiveServices).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ServiceRequest{}).
		Where("provider_id = ?", userID).
		Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ServiceRequest{}).
		Where("provider_id = ? AND status = ?", userID, models.RequestStatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Booking{}).
		Where("provider_id = ?", userID).
		Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Transaction{}).
		Where("provider_id = ? AND status IN ?", userID,
			[]models.TransactionStatus{models.TransactionStatusConfirmed, models.TransactionStatusCompleted}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalEarned).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ProviderRating{}).
		Where("provider_id = ?", userID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&stats.AverageRating).Error; err != nil {
		return nil, err
	}

	if err := s.countUnread(userID, &stats.UnreadNotifications); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *StatsService) countUnread(userID uint, out *int64) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(out).Error
}
