package api

import (
	"net/http"

	"calixo/internal/realtime"
	"calixo/internal/service"
	"calixo/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stream upgrades a request into a live notification feed.
type Stream interface {
	Serve(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error
}

type notificationRoutes struct {
	ns     service.NotificationServiceI
	stream Stream
}

func NewNotificationRoutes(handler *gin.RouterGroup, ns service.NotificationServiceI, stream Stream) {
	r := &notificationRoutes{ns: ns, stream: stream}

	h := handler.Group("/notifications")
	{
		h.GET("", r.List)
		h.GET("/ws", r.Subscribe)
		h.POST("/seen", r.MarkAllSeen)
		h.POST("/:id/seen", r.MarkSeen)
		h.DELETE("/:id", r.Delete)
	}
}

func (r *notificationRoutes) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, offset, ok := page(c)
	if !ok {
		return
	}

	notifications, unseen, err := r.ns.List(c.Request.Context(), userID, c.Query("unseen") == "true", limit, offset)
	if err != nil {
		serviceError(c, err, "list notifications")
		return
	}

	out := make([]realtime.Notification, len(notifications))
	for i, n := range notifications {
		out[i] = realtime.NewNotification(n)
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": out,
		"unseenCount":   unseen,
	})
}

func (r *notificationRoutes) MarkSeen(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := r.ns.MarkSeen(c.Request.Context(), userID, id); err != nil {
		serviceError(c, err, "mark notification seen")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *notificationRoutes) MarkAllSeen(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := r.ns.MarkAllSeen(c.Request.Context(), userID); err != nil {
		serviceError(c, err, "mark notifications seen")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *notificationRoutes) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := r.ns.Delete(c.Request.Context(), userID, id); err != nil {
		serviceError(c, err, "delete notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *notificationRoutes) Subscribe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// The upgrader writes its own error response.
	if err := r.stream.Serve(c.Writer, c.Request, userID); err != nil {
		logger.Logger().Info("websocket upgrade failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}
