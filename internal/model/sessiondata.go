package model

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type SessionKind string

const (
	SessionKindTimer  SessionKind = "timer"
	SessionKindFocus  SessionKind = "focus"
	SessionKindSocial SessionKind = "social"
)

var ErrUnknownSessionKind = errors.New("unknown session data kind")

// SessionData is the per-attempt parameter bag. Every variant is tagged with
// a "kind" field on the wire.
type SessionData interface {
	Kind() SessionKind
	DurationOverride() *int
}

type TimerSession struct {
	DurationMinutes *int `json:"durationMinutes,omitempty"`
}

func (TimerSession) Kind() SessionKind { return SessionKindTimer }
func (s TimerSession) DurationOverride() *int { return s.DurationMinutes }

func (s TimerSession) MarshalJSON() ([]byte, error) {
	return EncodeSessionData(s)
}

type FocusSession struct {
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	BlockedApps     []string `json:"blockedApps,omitempty"`
}

func (FocusSession) Kind() SessionKind { return SessionKindFocus }
func (s FocusSession) DurationOverride() *int { return s.DurationMinutes }

func (s FocusSession) MarshalJSON() ([]byte, error) {
	return EncodeSessionData(s)
}

// SocialChallengeSession ties an attempt to the social session it was started from.
type SocialChallengeSession struct {
	SocialSessionID uuid.UUID `json:"socialSessionId"`
	PartnerID       uuid.UUID `json:"partnerId"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
}

func (SocialChallengeSession) Kind() SessionKind { return SessionKindSocial }
func (s SocialChallengeSession) DurationOverride() *int { return s.DurationMinutes }

func (s SocialChallengeSession) MarshalJSON() ([]byte, error) {
	return EncodeSessionData(s)
}

// EncodeSessionData returns nil for a nil bag so it is stored as NULL.
func EncodeSessionData(sd SessionData) ([]byte, error) {
	if sd == nil {
		return nil, nil
	}

	// The variants are never handed to the encoder directly: a struct with a
	// single pointer field is encoded as that pointer and skips MarshalJSON.
	var envelope interface{}
	switch s := sd.(type) {
	case TimerSession:
		envelope = struct {
			Kind            SessionKind `json:"kind"`
			DurationMinutes *int        `json:"durationMinutes,omitempty"`
		}{SessionKindTimer, s.DurationMinutes}
	case FocusSession:
		envelope = struct {
			Kind            SessionKind `json:"kind"`
			DurationMinutes *int        `json:"durationMinutes,omitempty"`
			BlockedApps     []string    `json:"blockedApps,omitempty"`
		}{SessionKindFocus, s.DurationMinutes, s.BlockedApps}
	case SocialChallengeSession:
		envelope = struct {
			Kind            SessionKind `json:"kind"`
			SocialSessionID uuid.UUID   `json:"socialSessionId"`
			PartnerID       uuid.UUID   `json:"partnerId"`
			DurationMinutes *int        `json:"durationMinutes,omitempty"`
		}{SessionKindSocial, s.SocialSessionID, s.PartnerID, s.DurationMinutes}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSessionKind, sd.Kind())
	}

	return json.Marshal(envelope)
}

func DecodeSessionData(data []byte) (SessionData, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var tag struct {
		Kind SessionKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("failed to decode session data: %w", err)
	}

	switch tag.Kind {
	case SessionKindTimer:
		var s TimerSession
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode timer session: %w", err)
		}
		return s, nil
	case SessionKindFocus:
		var s FocusSession
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode focus session: %w", err)
		}
		return s, nil
	case SessionKindSocial:
		var s SocialChallengeSession
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode social session: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSessionKind, tag.Kind)
	}
}
