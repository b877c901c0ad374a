package routes

import (
	"net/http"
	"testing"

	"servicelink-server/database"
	"servicelink-server/models"
)

func TestUpdateProfileRejectsTakenPhone(t *testing.T) {
	router := setupTestRouter(t)
	createUser(t, "owner@test.dev", "Olga", models.UserTypeClient, "+33611113333")
	user, token := createUser(t, "user@test.dev", "Ulysse", models.UserTypeClient, "")

	w := doJSON(t, router, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
		"phone": "+33611113333",
	})
	assertStatus(t, w, http.StatusConflict)

	var reloaded models.Profile
	if err := database.DB.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if reloaded.Phone != nil && *reloaded.Phone == "+33611113333" {
		t.Errorf("phone was taken over despite conflict")
	}
}

func TestUpdateProfilePhone(t *testing.T) {
	router := setupTestRouter(t)
	user, token := createUser(t, "user@test.dev", "Ulysse", models.UserTypeClient, "")

	w := doJSON(t, router, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
		"phone": "+33611114444",
	})
	assertStatus(t, w, http.StatusOK)

	var reloaded models.Profile
	if err := database.DB.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if reloaded.Phone == nil || *reloaded.Phone != "+33611114444" {
		t.Errorf("phone = %v, want +33611114444", reloaded.Phone)
	}
}
