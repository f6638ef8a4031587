package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calixo/internal/model"
	"calixo/internal/repository"

	"github.com/google/uuid"
)

// Invite names the invitee either by id or by username.
type Invite struct {
	InviteeID       *uuid.UUID
	InviteeUsername string
	ChallengeID     uuid.UUID
}

type SocialChallengeService struct {
	repo     SocialChallengeRepository
	notifier Notifier
	now      func() time.Time
}

func NewSocialChallengeService(repo SocialChallengeRepository, notifier Notifier) *SocialChallengeService {
	return &SocialChallengeService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *SocialChallengeService) List(ctx context.Context, userID uuid.UUID) ([]*model.SocialChallenge, error) {
	sessions, err := s.repo.ListSocialChallenges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list social challenges: %w", err)
	}
	return sessions, nil
}

// Get returns a session the user takes part in. Sessions of other users are
// reported as missing.
func (s *SocialChallengeService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error) {
	session, err := s.repo.GetSocialChallenge(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get social challenge: %w", err)
	}
	if !session.Involves(userID) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *SocialChallengeService) Invite(ctx context.Context, inviterID uuid.UUID, invite Invite) (*model.SocialChallenge, error) {
	if invite.InviteeID == nil && invite.InviteeUsername == "" {
		return nil, fmt.Errorf("%w: invitee is required", ErrInvalidInput)
	}

	inviter, err := userOrNotFound(s.repo.GetUserByID(ctx, inviterID))
	if err != nil {
		return nil, err
	}

	var invitee *model.User
	if invite.InviteeID != nil {
		invitee, err = userOrNotFound(s.repo.GetUserByID(ctx, *invite.InviteeID))
	} else {
		invitee, err = userOrNotFound(s.repo.GetUserByUsername(ctx, invite.InviteeUsername))
	}
	if err != nil {
		return nil, err
	}

	if invitee.ID == inviter.ID {
		return nil, ErrSelfInvite
	}

	ch, err := s.repo.GetChallenge(ctx, invite.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if !ch.IsActive {
		return nil, ErrChallengeInactive
	}

	session := &model.SocialChallenge{
		ID:              uuid.New(),
		InviterID:       inviter.ID,
		InviteeID:       invitee.ID,
		ChallengeID:     ch.ID,
		Status:          model.SocialStatusPending,
		CreatedAt:       s.now().UTC(),
		ChallengeTitle:  ch.Title,
		InviterUsername: inviter.Username,
		InviteeUsername: invitee.Username,
	}

	if err := s.repo.CreateSocialChallenge(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create social challenge: %w", err)
	}

	notify(ctx, s.notifier, &model.Notification{
		UserID:  invitee.ID,
		Type:    model.NotificationSocialChallenge,
		Title:   "New challenge invitation",
		Message: fmt.Sprintf("%s invited you to %q", inviter.Username, ch.Title),
		Payload: model.SocialInvitePayload{
			SessionID:   session.ID,
			InviterID:   inviter.ID,
			ChallengeID: ch.ID,
		},
	})

	return session, nil
}

// Accept moves a pending invitation addressed to userID to in_progress.
func (s *SocialChallengeService) Accept(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error) {
	session, err := s.respond(ctx, userID, sessionID, model.SocialStatusInProgress)
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, &model.Notification{
		UserID:  session.InviterID,
		Type:    model.NotificationSocialChallenge,
		Title:   "Invitation accepted",
		Message: fmt.Sprintf("%s accepted your %q challenge", session.InviteeUsername, session.ChallengeTitle),
		Payload: model.SocialAcceptedPayload{
			SessionID:   session.ID,
			InviteeID:   session.InviteeID,
			ChallengeID: session.ChallengeID,
		},
	})

	return session, nil
}

func (s *SocialChallengeService) Decline(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error) {
	session, err := s.respond(ctx, userID, sessionID, model.SocialStatusDeclined)
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, &model.Notification{
		UserID:  session.InviterID,
		Type:    model.NotificationSocialChallenge,
		Title:   "Invitation declined",
		Message: fmt.Sprintf("%s declined your %q challenge", session.InviteeUsername, session.ChallengeTitle),
		Payload: model.SocialDeclinedPayload{
			SessionID:   session.ID,
			InviteeID:   session.InviteeID,
			ChallengeID: session.ChallengeID,
		},
	})

	return session, nil
}

func (s *SocialChallengeService) respond(ctx context.Context, userID, sessionID uuid.UUID, status model.SocialStatus) (*model.SocialChallenge, error) {
	session, err := s.repo.RespondSocialChallenge(ctx, sessionID, userID, status, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, repository.ErrInvalidState):
			return nil, ErrAlreadyResponded
		default:
			return nil, fmt.Errorf("failed to respond to social challenge: %w", err)
		}
	}
	return session, nil
}
