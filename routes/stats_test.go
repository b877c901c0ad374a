package routes

import (
	"net/http"
	"testing"

	"servicelink-server/database"
	"servicelink-server/models"
)

func TestStatsSwitchesOnUserType(t *testing.T) {
	router := setupTestRouter(t)
	client, clientToken := createUser(t, "client@test.dev", "Claire", models.UserTypeClient, "")
	provider, providerToken := createUser(t, "provider@test.dev", "Paul", models.UserTypeProvider, "")

	service := models.Service{ProviderID: provider.ID, Title: "Ménage", Description: "d", Category: "cleaning", Price: 40, IsActive: true}
	if err := database.DB.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	request := models.ServiceRequest{ClientID: client.ID, ProviderID: provider.ID, Title: "r", Description: "d", Status: models.RequestStatusPending}
	if err := database.DB.Create(&request).Error; err != nil {
		t.Fatalf("create request: %v", err)
	}

	clientStats := doJSON(t, router, http.MethodGet, "/api/v1/stats", clientToken, nil)
	assertStatus(t, clientStats, http.StatusOK)
	clientData := decodeResponse(t, clientStats)["data"].(map[string]interface{})
	if clientData["user_type"] != "client" {
		t.Errorf("user_type = %v, want client", clientData["user_type"])
	}
	stats := clientData["stats"].(map[string]interface{})
	if stats["total_requests"].(float64) != 1 {
		t.Errorf("client total_requests = %v, want 1", stats["total_requests"])
	}
	if _, isProviderShape := stats["active_services"]; isProviderShape {
		t.Errorf("client stats carry provider fields: %v", stats)
	}

	providerStats := doJSON(t, router, http.MethodGet, "/api/v1/stats", providerToken, nil)
	assertStatus(t, providerStats, http.StatusOK)
	providerData := decodeResponse(t, providerStats)["data"].(map[string]interface{})
	if providerData["user_type"] != "provider" {
		t.Errorf("user_type = %v, want provider", providerData["user_type"])
	}
	pstats := providerData["stats"].(map[string]interface{})
	if pstats["active_services"].(float64) != 1 {
		t.Errorf("active_services = %v, want 1", pstats["active_services"])
	}
	if pstats["pending_requests"].(float64) != 1 {
		t.Errorf("pending_requests = %v, want 1", pstats["pending_requests"])
	}
}
