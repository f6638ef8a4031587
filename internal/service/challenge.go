package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calixo/internal/model"
	"calixo/internal/repository"
	"calixo/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChallengeService struct {
	repo ChallengeRepository
	now  func() time.Time
}

func NewChallengeService(repo ChallengeRepository) *ChallengeService {
	return &ChallengeService{
		repo: repo,
		now:  time.Now,
	}
}

// GetActive returns the user's current attempt, or nil when there is none.
// A finished attempt left unclaimed past the day rollover is persisted as
// not_claimed and reported as absent.
func (s *ChallengeService) GetActive(ctx context.Context, userID uuid.UUID) (*model.ActiveChallenge, error) {
	uc, err := s.currentAttempt(ctx, userID)
	if err != nil || uc == nil {
		return nil, err
	}

	ch, err := s.repo.GetChallenge(ctx, uc.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return model.NewActiveChallenge(uc, ch), nil
}

func (s *ChallengeService) currentAttempt(ctx context.Context, userID uuid.UUID) (*model.UserChallenge, error) {
	uc, err := s.repo.GetLatestActiveAttempt(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active challenge: %w", err)
	}

	if model.IsExpired(uc, s.now()) {
		if err := s.expire(ctx, uc); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return uc, nil
}

func (s *ChallengeService) expire(ctx context.Context, uc *model.UserChallenge) error {
	if err := s.repo.ExpireAttempt(ctx, uc.ID); err != nil {
		return fmt.Errorf("failed to expire challenge: %w", err)
	}

	uc.Status = model.StatusNotClaimed
	challengeTransitions.WithLabelValues(string(model.StatusNotClaimed)).Inc()
	logger.Logger().Info("challenge expired unclaimed",
		zap.String("user_id", uc.UserID.String()),
		zap.String("user_challenge_id", uc.ID.String()))

	return nil
}

func (s *ChallengeService) Start(ctx context.Context, userID, challengeID uuid.UUID, sessionData model.SessionData) (*model.ActiveChallenge, error) {
	if err := validateSessionData(sessionData); err != nil {
		return nil, err
	}

	ch, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if !ch.IsActive {
		return nil, ErrChallengeInactive
	}

	current, err := s.currentAttempt(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, ErrActiveChallengeExists
	}

	uc := &model.UserChallenge{
		ID:          uuid.New(),
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      model.StatusInProgress,
		StartedAt:   s.now().UTC(),
		SessionData: sessionData,
	}

	if err := s.repo.CreateAttempt(ctx, uc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrActiveChallengeExists
		}
		return nil, fmt.Errorf("failed to start challenge: %w", err)
	}

	challengeTransitions.WithLabelValues(string(model.StatusInProgress)).Inc()
	return model.NewActiveChallenge(uc, ch), nil
}

// Finish marks an in-progress attempt as finished. Completion is reported by
// the client timer and is not checked against the elapsed time.
func (s *ChallengeService) Finish(ctx context.Context, userID, attemptID uuid.UUID, sessionData model.SessionData) (*model.ActiveChallenge, error) {
	if err := validateSessionData(sessionData); err != nil {
		return nil, err
	}

	uc, err := s.repo.FinishAttempt(ctx, userID, attemptID, s.now().UTC(), sessionData)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrAttemptNotFound
		case errors.Is(err, repository.ErrInvalidState):
			return nil, ErrNotInProgress
		default:
			return nil, fmt.Errorf("failed to finish challenge: %w", err)
		}
	}
	challengeTransitions.WithLabelValues(string(model.StatusFinished)).Inc()

	ch, err := s.repo.GetChallenge(ctx, uc.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return model.NewActiveChallenge(uc, ch), nil
}

// Claim credits the reward of a finished attempt exactly once.
func (s *ChallengeService) Claim(ctx context.Context, userID, attemptID uuid.UUID) (*model.ClaimResult, error) {
	uc, err := s.repo.GetAttempt(ctx, userID, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get user challenge: %w", err)
	}

	switch uc.Status {
	case model.StatusFinished:
	case model.StatusClaimed:
		return nil, ErrAlreadyClaimed
	case model.StatusNotClaimed:
		return nil, ErrChallengeExpired
	default:
		return nil, ErrNotFinished
	}

	now := s.now()
	if model.IsExpired(uc, now) {
		if err := s.expire(ctx, uc); err != nil {
			return nil, err
		}
		return nil, ErrChallengeExpired
	}

	ch, err := s.repo.GetChallenge(ctx, uc.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	reward := model.EffectiveReward(ch, uc.SessionData)
	claimedAt := now.UTC()

	coins, err := s.repo.ClaimAttempt(ctx, userID, attemptID, reward, claimedAt)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidState):
			return nil, ErrAlreadyClaimed
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to claim reward: %w", err)
		}
	}

	uc.Status = model.StatusClaimed
	uc.ClaimedAt = &claimedAt

	challengeTransitions.WithLabelValues(string(model.StatusClaimed)).Inc()
	coinsCredited.Add(float64(reward))

	return &model.ClaimResult{
		UserChallenge: uc,
		Reward:        reward,
		Coins:         coins,
	}, nil
}

func (s *ChallengeService) History(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.UserChallenge, error) {
	attempts, err := s.repo.ListAttempts(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list user challenges: %w", err)
	}
	return attempts, nil
}

func validateSessionData(sd model.SessionData) error {
	if sd == nil {
		return nil
	}
	if d := sd.DurationOverride(); d != nil && *d <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}
