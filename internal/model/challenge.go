package model

import (
	"time"

	"github.com/google/uuid"
)

type ChallengeType string

const (
	ChallengeTypeDaily  ChallengeType = "daily"
	ChallengeTypeFocus  ChallengeType = "focus"
	ChallengeTypeSocial ChallengeType = "social"
)

func (t ChallengeType) Valid() bool {
	switch t {
	case ChallengeTypeDaily, ChallengeTypeFocus, ChallengeTypeSocial:
		return true
	}
	return false
}

// DefaultDurationMinutes applies when neither the attempt nor the catalog
// entry specify a duration.
const DefaultDurationMinutes = 60

type Challenge struct {
	ID              uuid.UUID
	Type            ChallengeType
	Title           string
	Description     string
	Reward          int
	DurationMinutes *int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ChallengeStatus string

const (
	StatusPending    ChallengeStatus = "pending"
	StatusInProgress ChallengeStatus = "in_progress"
	StatusFinished   ChallengeStatus = "finished"
	StatusClaimed    ChallengeStatus = "claimed"
	StatusNotClaimed ChallengeStatus = "not_claimed"
)

// Active reports whether the attempt counts as the user's current challenge.
func (s ChallengeStatus) Active() bool {
	return s == StatusInProgress || s == StatusFinished
}

func (s ChallengeStatus) Terminal() bool {
	return s == StatusClaimed || s == StatusNotClaimed
}

type UserChallenge struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ChallengeID uuid.UUID
	Status      ChallengeStatus
	StartedAt   time.Time
	FinishedAt  *time.Time
	ClaimedAt   *time.Time
	SessionData SessionData
}

// ActiveChallenge is the attempt a user is currently working on, joined with
// the catalog entry and the values derived from its session data.
type ActiveChallenge struct {
	UserChallenge   *UserChallenge
	Challenge       *Challenge
	Reward          int
	DurationMinutes int
}

func NewActiveChallenge(uc *UserChallenge, ch *Challenge) *ActiveChallenge {
	return &ActiveChallenge{
		UserChallenge:   uc,
		Challenge:       ch,
		Reward:          EffectiveReward(ch, uc.SessionData),
		DurationMinutes: EffectiveDuration(ch, uc.SessionData),
	}
}

type ClaimResult struct {
	UserChallenge *UserChallenge
	Reward        int
	Coins         int
}
