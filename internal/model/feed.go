package model

import (
	"time"

	"github.com/google/uuid"
)

type FeedItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	Content   string
	CreatedAt time.Time
	Comments  int
}

type Comment struct {
	ID         uuid.UUID
	FeedItemID uuid.UUID
	UserID     uuid.UUID
	Username   string
	Content    string
	CreatedAt  time.Time
}
