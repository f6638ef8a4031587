package api

import (
	"time"

	"calixo/internal/model"

	"github.com/google/uuid"
)

type challengeResponse struct {
	ID              uuid.UUID           `json:"id"`
	Type            model.ChallengeType `json:"type"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Reward          int                 `json:"reward"`
	DurationMinutes *int                `json:"durationMinutes"`
	IsActive        bool                `json:"isActive"`
}

func newChallengeResponse(ch *model.Challenge) *challengeResponse {
	if ch == nil {
		return nil
	}
	return &challengeResponse{
		ID:              ch.ID,
		Type:            ch.Type,
		Title:           ch.Title,
		Description:     ch.Description,
		Reward:          ch.Reward,
		DurationMinutes: ch.DurationMinutes,
		IsActive:        ch.IsActive,
	}
}

func newChallengeList(challenges []*model.Challenge) []*challengeResponse {
	out := make([]*challengeResponse, len(challenges))
	for i, ch := range challenges {
		out[i] = newChallengeResponse(ch)
	}
	return out
}

type userChallengeResponse struct {
	ID          uuid.UUID             `json:"id"`
	ChallengeID uuid.UUID             `json:"challengeId"`
	Status      model.ChallengeStatus `json:"status"`
	StartedAt   time.Time             `json:"startedAt"`
	FinishedAt  *time.Time            `json:"finishedAt"`
	ClaimedAt   *time.Time            `json:"claimedAt"`
	SessionData model.SessionData     `json:"sessionData"`
}

func newUserChallengeResponse(uc *model.UserChallenge) *userChallengeResponse {
	return &userChallengeResponse{
		ID:          uc.ID,
		ChallengeID: uc.ChallengeID,
		Status:      uc.Status,
		StartedAt:   uc.StartedAt,
		FinishedAt:  uc.FinishedAt,
		ClaimedAt:   uc.ClaimedAt,
		SessionData: uc.SessionData,
	}
}

// activeChallengeResponse flattens the attempt and its derived values.
type activeChallengeResponse struct {
	userChallengeResponse
	Challenge       *challengeResponse `json:"challenge"`
	Reward          int                `json:"reward"`
	DurationMinutes int                `json:"durationMinutes"`
}

func newActiveChallengeResponse(ac *model.ActiveChallenge) *activeChallengeResponse {
	if ac == nil {
		return nil
	}
	return &activeChallengeResponse{
		userChallengeResponse: *newUserChallengeResponse(ac.UserChallenge),
		Challenge:             newChallengeResponse(ac.Challenge),
		Reward:                ac.Reward,
		DurationMinutes:       ac.DurationMinutes,
	}
}

type socialChallengeResponse struct {
	ID              uuid.UUID          `json:"id"`
	InviterID       uuid.UUID          `json:"inviterId"`
	InviteeID       uuid.UUID          `json:"inviteeId"`
	ChallengeID     uuid.UUID          `json:"challengeId"`
	Status          model.SocialStatus `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	AcceptedAt      *time.Time         `json:"acceptedAt"`
	ChallengeTitle  string             `json:"challengeTitle"`
	InviterUsername string             `json:"inviterUsername"`
	InviteeUsername string             `json:"inviteeUsername"`
}

func newSocialChallengeResponse(s *model.SocialChallenge) socialChallengeResponse {
	return socialChallengeResponse{
		ID:              s.ID,
		InviterID:       s.InviterID,
		InviteeID:       s.InviteeID,
		ChallengeID:     s.ChallengeID,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		AcceptedAt:      s.AcceptedAt,
		ChallengeTitle:  s.ChallengeTitle,
		InviterUsername: s.InviterUsername,
		InviteeUsername: s.InviteeUsername,
	}
}

type reportResponse struct {
	ID         uuid.UUID              `json:"id"`
	ReporterID uuid.UUID              `json:"reporterId"`
	TargetType model.ReportTargetType `json:"targetType"`
	TargetID   uuid.UUID              `json:"targetId"`
	Reason     string                 `json:"reason"`
	Details    string                 `json:"details,omitempty"`
	Status     model.ReportStatus     `json:"status"`
	CreatedAt  time.Time              `json:"createdAt"`
	ResolvedAt *time.Time             `json:"resolvedAt,omitempty"`
	ResolvedBy *uuid.UUID             `json:"resolvedBy,omitempty"`
}

func newReportResponse(r *model.Report) reportResponse {
	return reportResponse{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		Reason:     r.Reason,
		Details:    r.Details,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
		ResolvedBy: r.ResolvedBy,
	}
}

type userResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Role        model.Role `json:"role"`
	Coins       int        `json:"coins"`
	AvatarItems []string   `json:"avatarItems"`
	Followers   int        `json:"followers"`
	Following   int        `json:"following"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Coins:       u.Coins,
		AvatarItems: u.AvatarItems,
		Followers:   u.Followers,
		Following:   u.Following,
		CreatedAt:   u.CreatedAt,
	}
}

func newUserList(users []*model.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u)
	}
	return out
}

type feedItemResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

func newFeedItemResponse(f *model.FeedItem) feedItemResponse {
	return feedItemResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		Username:  f.Username,
		Content:   f.Content,
		Comments:  f.Comments,
		CreatedAt: f.CreatedAt,
	}
}

type commentResponse struct {
	ID         uuid.UUID `json:"id"`
	FeedItemID uuid.UUID `json:"feedItemId"`
	UserID     uuid.UUID `json:"userId"`
	Username   string    `json:"username"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newCommentResponse(cm *model.Comment) commentResponse {
	return commentResponse{
		ID:         cm.ID,
		FeedItemID: cm.FeedItemID,
		UserID:     cm.UserID,
		Username:   cm.Username,
		Content:    cm.Content,
		CreatedAt:  cm.CreatedAt,
	}
}
