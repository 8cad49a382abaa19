package notification

import "github.com/gin-gonic/gin"

// RegisterSocketRoutes registers the websocket endpoint; it authenticates with ?token=.
func RegisterSocketRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/ws/notifications", handler.WebSocket)
}

// RegisterInboxRoutes registers the per-recipient endpoints for any signed-in caller.
func RegisterInboxRoutes(r *gin.RouterGroup, handler *Handler) {
	n := r.Group("/notifications")
	{
		n.GET("", handler.Inbox)
		n.GET("/unread-count", handler.UnreadCount)
		n.PATCH("/read-all", handler.MarkAllRead)
		n.PATCH("/:id/read", handler.MarkRead)
	}
}

// RegisterAdminRoutes registers broadcast management.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	m := r.Group("/notifications/manage")
	{
		m.GET("", handler.List)
		m.POST("", handler.Create)
		m.POST("/:id/send", handler.Send)
		m.DELETE("/:id", handler.Delete)
	}
}
