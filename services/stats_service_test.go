package services

import (
	"testing"
	"time"

	"servicelink-server/database"
	"servicelink-server/models"
)

func TestGetClientStats(t *testing.T) {
	setupTestDB(t)

	client := createTestUser(t, "client@test.dev", "Client", models.UserTypeClient, "")
	provider := createTestUser(t, "provider@test.dev", "Provider", models.UserTypeProvider, "")

	service := models.Service{ProviderID: provider.ID, Title: "Plomberie", Description: "d", Category: "plumbing", Price: 50, IsActive: true}
	if err := database.DB.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}

	requests := []models.ServiceRequest{
		{ClientID: client.ID, ProviderID: provider.ID, Title: "r1", Description: "d", Status: models.RequestStatusPending},
		{ClientID: client.ID, ProviderID: provider.ID, Title: "r2", Description: "d", Status: models.RequestStatusAccepted},
		{ClientID: client.ID, ProviderID: provider.ID, Title: "r3", Description: "d", Status: models.RequestStatusCompleted},
	}
	for i := range requests {
		if err := database.DB.Create(&requests[i]).Error; err != nil {
			t.Fatalf("create request: %v", err)
		}
	}

	booking := models.Booking{ClientID: client.ID, ProviderID: provider.ID, ServiceID: service.ID, ScheduledDate: time.Now(), Status: models.BookingStatusConfirmed}
	if err := database.DB.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}

	transactions := []models.Transaction{
		{ClientID: client.ID, ProviderID: provider.ID, Amount: 50, TransactionType: "service_payment", Status: models.TransactionStatusConfirmed, Description: "t1"},
		{ClientID: client.ID, ProviderID: provider.ID, Amount: 30, TransactionType: "service_payment", Status: models.TransactionStatusCompleted, Description: "t2"},
		{ClientID: client.ID, ProviderID: provider.ID, Amount: 99, TransactionType: "service_payment", Status: models.TransactionStatusPending, Description: "ignored"},
	}
	for i := range transactions {
		if err := database.DB.Create(&transactions[i]).Error; err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	favorite := models.Favorite{UserID: client.ID, ServiceID: service.ID}
	if err := database.DB.Create(&favorite).Error; err != nil {
		t.Fatalf("create favorite: %v", err)
	}

	notifications := []models.Notification{
		{UserID: client.ID, Title: "n1", Message: "m", Type: models.NotificationTypeSystem, Read: false},
		{UserID: client.ID, Title: "n2", Message: "m", Type: models.NotificationTypeSystem, Read: true},
	}
	for i := range notifications {
		if err := database.DB.Create(&notifications[i]).Error; err != nil {
			t.Fatalf("create notification: %v", err)
		}
	}

	stats, err := NewStatsService().GetClientStats(client.ID)
	if err != nil {
		t.Fatalf("GetClientStats() error = %v", err)
	}

	if stats.TotalRequests != 3 {
		t.Errorf("TotalRequests = %d, want 3", stats.TotalRequests)
	}
	if stats.PendingRequests != 1 {
		t.Errorf("PendingRequests = %d, want 1", stats.PendingRequests)
	}
	if stats.TotalBookings != 1 {
		t.Errorf("TotalBookings = %d, want 1", stats.TotalBookings)
	}
	if stats.TotalSpent != 80 {
		t.Errorf("TotalSpent = %.2f, want 80.00", stats.TotalSpent)
	}
	if stats.FavoritesCount != 1 {
		t.Errorf("FavoritesCount = %d, want 1", stats.FavoritesCount)
	}
	if stats.UnreadNotifications != 1 {
		t.Errorf("UnreadNotifications = %d, want 1", stats.UnreadNotifications)
	}
}

func TestGetProviderStats(t *testing.T) {
	setupTestDB(t)

	client := createTestUser(t, "client@test.dev", "Client", models.UserTypeClient, "")
	provider := createTestUser(t, "provider@test.dev", "Provider", models.UserTypeProvider, "")

	services := []models.Service{
		{ProviderID: provider.ID, Title: "s1", Description: "d", Category: "plumbing", Price: 50, IsActive: true},
		{ProviderID: provider.ID, Title: "s2", Description: "d", Category: "plumbing", Price: 80, IsActive: true},
		{ProviderID: provider.ID, Title: "s3", Description: "d", Category: "plumbing", Price: 20, IsActive: false},
	}
	for i := range services {
		if err := database.DB.Create(&services[i]).Error; err != nil {
			t.Fatalf("create service: %v", err)
		}
	}

	request := models.ServiceRequest{ClientID: client.ID, ProviderID: provider.ID, Title: "r", Description: "d", Status: models.RequestStatusPending}
	if err := database.DB.Create(&request).Error; err != nil {
		t.Fatalf("create request: %v", err)
	}

	bookings := []models.Booking{
		{ClientID: client.ID, ProviderID: provider.ID, ServiceID: services[0].ID, ScheduledDate: time.Now(), Status: models.BookingStatusCompleted},
		{ClientID: client.ID, ProviderID: provider.ID, ServiceID: services[1].ID, ScheduledDate: time.Now(), Status: models.BookingStatusCompleted},
	}
	for i := range bookings {
		if err := database.DB.Create(&bookings[i]).Error; err != nil {
			t.Fatalf("create booking: %v", err)
		}
	}

	transaction := models.Transaction{ClientID: client.ID, ProviderID: provider.ID, Amount: 130, TransactionType: "service_payment", Status: models.TransactionStatusConfirmed, Description: "t"}
	if err := database.DB.Create(&transaction).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	ratings := []models.ProviderRating{
		{BookingID: bookings[0].ID, ClientID: client.ID, ProviderID: provider.ID, Rating: 5},
		{BookingID: bookings[1].ID, ClientID: client.ID, ProviderID: provider.ID, Rating: 4},
	}
	for i := range ratings {
		if err := database.DB.Create(&ratings[i]).Error; err != nil {
			t.Fatalf("create rating: %v", err)
		}
	}

	stats, err := NewStatsService().GetProviderStats(provider.ID)
	if err != nil {
		t.Fatalf("GetProviderStats() error = %v", err)
	}

	if stats.ActiveServices != 2 {
		t.Errorf("ActiveServices = %d, want 2", stats.ActiveServices)
	}
	if stats.TotalRequests != 1 {
		t.Errorf("TotalRequests = %d, want 1", stats.TotalRequests)
	}
	if stats.PendingRequests != 1 {
		t.Errorf("PendingRequests = %d, want 1", stats.PendingRequests)
	}
	if stats.TotalBookings != 2 {
		t.Errorf("TotalBookings = %d, want 2", stats.TotalBookings)
	}
	if stats.TotalEarned != 130 {
		t.Errorf("TotalEarned = %.2f, want 130.00", stats.TotalEarned)
	}
	if stats.AverageRating != 4.5 {
		t.Errorf("AverageRating = %.2f, want 4.50", stats.AverageRating)
	}
}
