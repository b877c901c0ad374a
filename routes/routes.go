package routes

import (
	"servicelink-server/services"
	ws "servicelink-server/websocket"
)

// Shared service instances used by the handlers in this package
var (
	jwtService          *services.JWTService
	notificationService *services.NotificationService
	walletService       *services.WalletService
	statsService        *services.StatsService
)

// InitServices wires the handler-level services. The hub may be nil when no
// realtime hub is running.
func InitServices(hub *ws.Hub) {
	var pusher services.NotificationPusher
	if hub != nil {
		pusher = hub
	}

	jwtService = services.NewJWTService()
	notificationService = services.NewNotificationService(pusher)
	walletService = services.NewWalletService(notificationService)
	statsService = services.NewStatsService()
}

// GetWalletService returns the shared wallet service instance
func GetWalletService() *services.WalletService {
	return walletService
}

// GetNotificationService returns the shared notification service instance
func GetNotificationService() *services.NotificationService {
	return notificationService
}
