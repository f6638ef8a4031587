package realtime

import (
	"time"

	"calixo/internal/model"

	"github.com/google/uuid"
)

// Notification is the wire form of a notification, shared by the websocket
// stream and the REST inbox.
type Notification struct {
	ID        uuid.UUID              `json:"id"`
	Type      model.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Payload   model.Payload          `json:"payload"`
	Seen      bool                   `json:"seen"`
	CreatedAt time.Time              `json:"createdAt"`
}

func NewNotification(n *model.Notification) Notification {
	return Notification{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Payload:   n.Payload,
		Seen:      n.Seen,
		CreatedAt: n.CreatedAt,
	}
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
