package routes

import (
	"github.com/gin-gonic/gin"

	"servicelink-server/middleware"
	ws "servicelink-server/websocket"
)

// RegisterWebSocketRoute registers the realtime notification endpoint.
// Clients authenticate with a token query parameter because browsers cannot
// set headers on websocket upgrades.
func RegisterWebSocketRoute(router *gin.Engine, hub *ws.Hub) {
	router.GET("/api/v1/ws", middleware.WebSocketAuthMiddleware(), func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return
		}
		ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID, string(user.UserType))
	})
}
