package routes

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"servicelink-server/database"
	"servicelink-server/models"
)

func seedCompletedBooking(t *testing.T, client, provider models.Profile) models.Booking {
	t.Helper()

	service := models.Service{ProviderID: provider.ID, Title: "Électricité", Description: "d", Category: "electric", Price: 70, IsActive: true}
	if err := database.DB.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}

	booking := models.Booking{
		ClientID:      client.ID,
		ProviderID:    provider.ID,
		ServiceID:     service.ID,
		ScheduledDate: time.Now(),
		Status:        models.BookingStatusCompleted,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}

func TestCreateRating(t *testing.T) {
	router := setupTestRouter(t)
	client, clientToken := createUser(t, "client@test.dev", "Claire", models.UserTypeClient, "")
	provider, _ := createUser(t, "provider@test.dev", "Paul", models.UserTypeProvider, "")
	booking := seedCompletedBooking(t, client, provider)

	w := doJSON(t, router, http.MethodPost, "/api/v1/ratings", clientToken, map[string]interface{}{
		"booking_id": booking.ID,
		"rating":     5,
		"comment":    "Excellent travail",
	})
	assertStatus(t, w, http.StatusCreated)

	// Provider is notified
	var notif models.Notification
	err := database.DB.
		Where("user_id = ? AND type = ?", provider.ID, models.NotificationTypeRatingReceived).
		First(&notif).Error
	if err != nil {
		t.Errorf("provider not notified: %v", err)
	}

	// One rating per booking
	again := doJSON(t, router, http.MethodPost, "/api/v1/ratings", clientToken, map[string]interface{}{
		"booking_id": booking.ID,
		"rating":     1,
	})
	assertStatus(t, again, http.StatusConflict)
}

func TestCreateRatingGuards(t *testing.T) {
	router := setupTestRouter(t)
	client, clientToken := createUser(t, "client@test.dev", "Claire", models.UserTypeClient, "")
	_, otherToken := createUser(t, "other@test.dev", "Othello", models.UserTypeClient, "")
	provider, _ := createUser(t, "provider@test.dev", "Paul", models.UserTypeProvider, "")

	booking := seedCompletedBooking(t, client, provider)

	// Only the booking's client may rate
	w := doJSON(t, router, http.MethodPost, "/api/v1/ratings", otherToken, map[string]interface{}{
		"booking_id": booking.ID,
		"rating":     4,
	})
	assertStatus(t, w, http.StatusForbidden)

	// Rating is bounded 1..5
	w = doJSON(t, router, http.MethodPost, "/api/v1/ratings", clientToken, map[string]interface{}{
		"booking_id": booking.ID,
		"rating":     6,
	})
	assertStatus(t, w, http.StatusBadRequest)

	// Confirmed bookings cannot be rated yet
	pending := models.Booking{
		ClientID:      client.ID,
		ProviderID:    provider.ID,
		ServiceID:     booking.ServiceID,
		ScheduledDate: time.Now(),
		Status:        models.BookingStatusConfirmed,
	}
	if err := database.DB.Create(&pending).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	w = doJSON(t, router, http.MethodPost, "/api/v1/ratings", clientToken, map[string]interface{}{
		"booking_id": pending.ID,
		"rating":     4,
	})
	assertStatus(t, w, http.StatusConflict)
}

func TestProviderRatingSummary(t *testing.T) {
	router := setupTestRouter(t)
	client, _ := createUser(t, "client@test.dev", "Claire", models.UserTypeClient, "")
	provider, _ := createUser(t, "provider@test.dev", "Paul", models.UserTypeProvider, "")

	first := seedCompletedBooking(t, client, provider)
	second := seedCompletedBooking(t, client, provider)

	ratings := []models.ProviderRating{
		{BookingID: first.ID, ClientID: client.ID, ProviderID: provider.ID, Rating: 5},
		{BookingID: second.ID, ClientID: client.ID, ProviderID: provider.ID, Rating: 3},
	}
	for i := range ratings {
		if err := database.DB.Create(&ratings[i]).Error; err != nil {
			t.Fatalf("create rating: %v", err)
		}
	}

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/providers/%d/ratings/summary", provider.ID), "", nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeResponse(t, w)
	data := body["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	if summary["total_ratings"].(float64) != 2 {
		t.Errorf("total_ratings = %v, want 2", summary["total_ratings"])
	}
	if summary["average_rating"].(float64) != 4 {
		t.Errorf("average_rating = %v, want 4", summary["average_rating"])
	}
}
