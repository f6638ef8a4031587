package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationSocialChallenge NotificationType = "social_challenge"
	NotificationReport          NotificationType = "report"
	NotificationFollow          NotificationType = "follow"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Payload   Payload
	Seen      bool
	CreatedAt time.Time
}

type PayloadType string

const (
	PayloadSocialInvite   PayloadType = "social_invite"
	PayloadSocialAccepted PayloadType = "social_accepted"
	PayloadSocialDeclined PayloadType = "social_declined"
	PayloadReportResolved PayloadType = "report_resolved"
	PayloadNewFollower    PayloadType = "new_follower"
)

var ErrUnknownPayloadType = errors.New("unknown notification payload type")

// Payload is the structured data a client needs to render an actionable
// notification. Variants carry a "type" discriminator on the wire.
type Payload interface {
	PayloadType() PayloadType
}

type SocialInvitePayload struct {
	SessionID   uuid.UUID `json:"sessionId"`
	InviterID   uuid.UUID `json:"inviterId"`
	ChallengeID uuid.UUID `json:"challengeId"`
}

func (SocialInvitePayload) PayloadType() PayloadType { return PayloadSocialInvite }

func (p SocialInvitePayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        PayloadType `json:"type"`
		SessionID   uuid.UUID   `json:"sessionId"`
		InviterID   uuid.UUID   `json:"inviterId"`
		ChallengeID uuid.UUID   `json:"challengeId"`
	}{PayloadSocialInvite, p.SessionID, p.InviterID, p.ChallengeID})
}

type SocialAcceptedPayload struct {
	SessionID   uuid.UUID `json:"sessionId"`
	InviteeID   uuid.UUID `json:"inviteeId"`
	ChallengeID uuid.UUID `json:"challengeId"`
}

func (SocialAcceptedPayload) PayloadType() PayloadType { return PayloadSocialAccepted }

func (p SocialAcceptedPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        PayloadType `json:"type"`
		SessionID   uuid.UUID   `json:"sessionId"`
		InviteeID   uuid.UUID   `json:"inviteeId"`
		ChallengeID uuid.UUID   `json:"challengeId"`
	}{PayloadSocialAccepted, p.SessionID, p.InviteeID, p.ChallengeID})
}

type SocialDeclinedPayload struct {
	SessionID   uuid.UUID `json:"sessionId"`
	InviteeID   uuid.UUID `json:"inviteeId"`
	ChallengeID uuid.UUID `json:"challengeId"`
}

func (SocialDeclinedPayload) PayloadType() PayloadType { return PayloadSocialDeclined }

func (p SocialDeclinedPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        PayloadType `json:"type"`
		SessionID   uuid.UUID   `json:"sessionId"`
		InviteeID   uuid.UUID   `json:"inviteeId"`
		ChallengeID uuid.UUID   `json:"challengeId"`
	}{PayloadSocialDeclined, p.SessionID, p.InviteeID, p.ChallengeID})
}

type ReportResolvedPayload struct {
	ReportID uuid.UUID    `json:"reportId"`
	Status   ReportStatus `json:"status"`
}

func (ReportResolvedPayload) PayloadType() PayloadType { return PayloadReportResolved }

func (p ReportResolvedPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     PayloadType  `json:"type"`
		ReportID uuid.UUID    `json:"reportId"`
		Status   ReportStatus `json:"status"`
	}{PayloadReportResolved, p.ReportID, p.Status})
}

type NewFollowerPayload struct {
	FollowerID       uuid.UUID `json:"followerId"`
	FollowerUsername string    `json:"followerUsername"`
}

func (NewFollowerPayload) PayloadType() PayloadType { return PayloadNewFollower }

func (p NewFollowerPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type             PayloadType `json:"type"`
		FollowerID       uuid.UUID   `json:"followerId"`
		FollowerUsername string      `json:"followerUsername"`
	}{PayloadNewFollower, p.FollowerID, p.FollowerUsername})
}

func EncodePayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func DecodePayload(data []byte) (Payload, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var tag struct {
		Type PayloadType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	var (
		p   Payload
		err error
	)
	switch tag.Type {
	case PayloadSocialInvite:
		var v SocialInvitePayload
		err = json.Unmarshal(data, &v)
		p = v
	case PayloadSocialAccepted:
		var v SocialAcceptedPayload
		err = json.Unmarshal(data, &v)
		p = v
	case PayloadSocialDeclined:
		var v SocialDeclinedPayload
		err = json.Unmarshal(data, &v)
		p = v
	case PayloadReportResolved:
		var v ReportResolvedPayload
		err = json.Unmarshal(data, &v)
		p = v
	case PayloadNewFollower:
		var v NewFollowerPayload
		err = json.Unmarshal(data, &v)
		p = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayloadType, tag.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", tag.Type, err)
	}

	return p, nil
}
