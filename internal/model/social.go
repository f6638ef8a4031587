package model

import (
	"time"

	"github.com/google/uuid"
)

type SocialStatus string

const (
	SocialStatusPending    SocialStatus = "pending"
	SocialStatusInProgress SocialStatus = "in_progress"
	SocialStatusCompleted  SocialStatus = "completed"
	SocialStatusDeclined   SocialStatus = "declined"
	SocialStatusCancelled  SocialStatus = "cancelled"
)

// SocialChallenge is a two-party invitation wrapped around a catalog challenge.
type SocialChallenge struct {
	ID          uuid.UUID
	InviterID   uuid.UUID
	InviteeID   uuid.UUID
	ChallengeID uuid.UUID
	Status      SocialStatus
	CreatedAt   time.Time
	AcceptedAt  *time.Time

	// Filled by list queries.
	ChallengeTitle  string
	InviterUsername string
	InviteeUsername string
}

func (s *SocialChallenge) Involves(userID uuid.UUID) bool {
	return s.InviterID == userID || s.InviteeID == userID
}
