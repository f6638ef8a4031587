package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportTargetType string

const (
	ReportTargetUser     ReportTargetType = "user"
	ReportTargetFeedItem ReportTargetType = "feed_item"
	ReportTargetComment  ReportTargetType = "comment"
)

func (t ReportTargetType) Valid() bool {
	switch t {
	case ReportTargetUser, ReportTargetFeedItem, ReportTargetComment:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

type Report struct {
	ID         uuid.UUID
	ReporterID uuid.UUID
	TargetType ReportTargetType
	TargetID   uuid.UUID
	Reason     string
	Details    string
	Status     ReportStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
	ResolvedBy *uuid.UUID
}
