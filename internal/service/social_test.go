package service

import (
	"context"
	"errors"
	"testing"

	"calixo/internal/model"
	"calixo/internal/repository"
	"calixo/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSocialChallengeService_Invite(t *testing.T) {
	inviter := &model.User{ID: uuid.New(), Username: "ana"}
	invitee := &model.User{ID: uuid.New(), Username: "luis"}
	challenge := &model.Challenge{ID: uuid.New(), Type: model.ChallengeTypeSocial, Title: "Dinner without phones", IsActive: true}

	tests := []struct {
		name          string
		invite        Invite
		mockSetup     func(repo *mocks.MockSocialChallengeRepository, notifier *mocks.MockNotifier)
		expectedError error
	}{
		{
			name:          "Missing invitee",
			invite:        Invite{ChallengeID: challenge.ID},
			mockSetup:     func(*mocks.MockSocialChallengeRepository, *mocks.MockNotifier) {},
			expectedError: ErrInvalidInput,
		},
		{
			name:   "Unknown invitee",
			invite: Invite{InviteeUsername: "ghost", ChallengeID: challenge.ID},
			mockSetup: func(repo *mocks.MockSocialChallengeRepository, _ *mocks.MockNotifier) {
				repo.On("GetUserByID", mock.Anything, inviter.ID).Return(inviter, nil)
				repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:   "Inviting yourself",
			invite: Invite{InviteeID: &inviter.ID, ChallengeID: challenge.ID},
			mockSetup: func(repo *mocks.MockSocialChallengeRepository, _ *mocks.MockNotifier) {
				repo.On("GetUserByID", mock.Anything, inviter.ID).Return(inviter, nil)
			},
			expectedError: ErrSelfInvite,
		},
		{
			name:   "Inactive challenge",
			invite: Invite{InviteeUsername: "luis", ChallengeID: challenge.ID},
			mockSetup: func(repo *mocks.MockSocialChallengeRepository, _ *mocks.MockNotifier) {
				repo.On("GetUserByID", mock.Anything, inviter.ID).Return(inviter, nil)
				repo.On("GetUserByUsername", mock.Anything, "luis").Return(invitee, nil)
				repo.On("GetChallenge", mock.Anything, challenge.ID).
					Return(&model.Challenge{ID: challenge.ID, IsActive: false}, nil)
			},
			expectedError: ErrChallengeInactive,
		},
		{
			name:   "Invitation sent and notified",
			invite: Invite{InviteeUsername: "luis", ChallengeID: challenge.ID},
			mockSetup: func(repo *mocks.MockSocialChallengeRepository, notifier *mocks.MockNotifier) {
				repo.On("GetUserByID", mock.Anything, inviter.ID).Return(inviter, nil)
				repo.On("GetUserByUsername", mock.Anything, "luis").Return(invitee, nil)
				repo.On("GetChallenge", mock.Anything, challenge.ID).Return(challenge, nil)
				repo.On("CreateSocialChallenge", mock.Anything, mock.MatchedBy(func(s *model.SocialChallenge) bool {
					return s.InviterID == inviter.ID && s.InviteeID == invitee.ID && s.Status == model.SocialStatusPending
				})).Return(nil).Once()
				notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
					p, ok := n.Payload.(model.SocialInvitePayload)
					return ok && n.UserID == invitee.ID && p.InviterID == inviter.ID &&
						n.Type == model.NotificationSocialChallenge
				})).Return(nil).Once()
			},
		},
		{
			name:   "Notification failure does not fail the invite",
			invite: Invite{InviteeID: &invitee.ID, ChallengeID: challenge.ID},
			mockSetup: func(repo *mocks.MockSocialChallengeRepository, notifier *mocks.MockNotifier) {
				repo.On("GetUserByID", mock.Anything, inviter.ID).Return(inviter, nil)
				repo.On("GetUserByID", mock.Anything, invitee.ID).Return(invitee, nil)
				repo.On("GetChallenge", mock.Anything, challenge.ID).Return(challenge, nil)
				repo.On("CreateSocialChallenge", mock.Anything, mock.Anything).Return(nil)
				notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockSocialChallengeRepository{}
			notifier := &mocks.MockNotifier{}
			tt.mockSetup(repo, notifier)

			session, err := NewSocialChallengeService(repo, notifier).Invite(context.Background(), inviter.ID, tt.invite)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.SocialStatusPending, session.Status)
			assert.Equal(t, "Dinner without phones", session.ChallengeTitle)
			repo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestSocialChallengeService_Respond(t *testing.T) {
	inviterID := uuid.New()
	inviteeID := uuid.New()
	sessionID := uuid.New()

	accepted := &model.SocialChallenge{
		ID:              sessionID,
		InviterID:       inviterID,
		InviteeID:       inviteeID,
		ChallengeID:     uuid.New(),
		Status:          model.SocialStatusInProgress,
		InviteeUsername: "luis",
		ChallengeTitle:  "Walk",
	}

	repo := &mocks.MockSocialChallengeRepository{}
	notifier := &mocks.MockNotifier{}
	svc := NewSocialChallengeService(repo, notifier)
	svc.now = fixedClock(finishedEvening)
	ctx := context.Background()

	repo.On("RespondSocialChallenge", mock.Anything, sessionID, inviteeID, model.SocialStatusInProgress, finishedEvening).
		Return(accepted, nil).Once()
	repo.On("RespondSocialChallenge", mock.Anything, sessionID, inviteeID, model.SocialStatusInProgress, finishedEvening).
		Return(nil, repository.ErrInvalidState).Once()
	repo.On("RespondSocialChallenge", mock.Anything, sessionID, inviterID, model.SocialStatusDeclined, finishedEvening).
		Return(nil, repository.ErrNotFound).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		_, ok := n.Payload.(model.SocialAcceptedPayload)
		return ok && n.UserID == inviterID
	})).Return(nil).Once()

	session, err := svc.Accept(ctx, inviteeID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, model.SocialStatusInProgress, session.Status)

	_, err = svc.Accept(ctx, inviteeID, sessionID)
	assert.ErrorIs(t, err, ErrAlreadyResponded)

	_, err = svc.Decline(ctx, inviterID, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSocialChallengeService_DeclineNotifiesInviter(t *testing.T) {
	inviterID := uuid.New()
	inviteeID := uuid.New()
	sessionID := uuid.New()

	repo := &mocks.MockSocialChallengeRepository{}
	notifier := &mocks.MockNotifier{}
	repo.On("RespondSocialChallenge", mock.Anything, sessionID, inviteeID, model.SocialStatusDeclined, mock.Anything).
		Return(&model.SocialChallenge{ID: sessionID, InviterID: inviterID, InviteeID: inviteeID, Status: model.SocialStatusDeclined}, nil)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		_, ok := n.Payload.(model.SocialDeclinedPayload)
		return ok && n.UserID == inviterID
	})).Return(nil).Once()

	session, err := NewSocialChallengeService(repo, notifier).Decline(context.Background(), inviteeID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, model.SocialStatusDeclined, session.Status)
	notifier.AssertExpectations(t)
}

func TestSocialChallengeService_GetHidesForeignSessions(t *testing.T) {
	inviterID, inviteeID, outsiderID := uuid.New(), uuid.New(), uuid.New()
	sessionID := uuid.New()
	session := &model.SocialChallenge{ID: sessionID, InviterID: inviterID, InviteeID: inviteeID, Status: model.SocialStatusPending}

	repo := &mocks.MockSocialChallengeRepository{}
	repo.On("GetSocialChallenge", mock.Anything, sessionID).Return(session, nil)
	svc := NewSocialChallengeService(repo, nil)

	got, err := svc.Get(context.Background(), inviteeID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, sessionID, got.ID)

	_, err = svc.Get(context.Background(), outsiderID, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	missing := uuid.New()
	repo.On("GetSocialChallenge", mock.Anything, missing).Return(nil, repository.ErrNotFound)
	_, err = svc.Get(context.Background(), inviterID, missing)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
