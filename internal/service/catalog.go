package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calixo/internal/model"
	"calixo/internal/repository"

	"github.com/google/uuid"
)

type ChallengeInput struct {
	Type            model.ChallengeType
	Title           string
	Description     string
	Reward          int
	DurationMinutes *int
	IsActive        bool
}

func (in ChallengeInput) validate() error {
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown challenge type %q", ErrInvalidInput, in.Type)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Reward < 0 {
		return fmt.Errorf("%w: reward must not be negative", ErrInvalidInput)
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}

// CatalogService manages the admin-owned challenge definitions.
type CatalogService struct {
	repo CatalogRepository
	now  func() time.Time
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *CatalogService) List(ctx context.Context, includeInactive bool) ([]*model.Challenge, error) {
	challenges, err := s.repo.ListChallenges(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return challenges, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	ch, err := s.repo.GetChallenge(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return ch, nil
}

func (s *CatalogService) Create(ctx context.Context, input ChallengeInput) (*model.Challenge, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ch := &model.Challenge{
		ID:              uuid.New(),
		Type:            input.Type,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		Reward:          input.Reward,
		DurationMinutes: input.DurationMinutes,
		IsActive:        input.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateChallenge(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	return ch, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, input ChallengeInput) (*model.Challenge, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	ch, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ch.Type = input.Type
	ch.Title = strings.TrimSpace(input.Title)
	ch.Description = input.Description
	ch.Reward = input.Reward
	ch.DurationMinutes = input.DurationMinutes
	ch.IsActive = input.IsActive
	ch.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateChallenge(ctx, ch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}

	return ch, nil
}

// Deactivate hides a challenge from users. Catalog entries are never deleted
// because attempts keep referencing them.
func (s *CatalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetChallengeActive(ctx, id, false); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChallengeNotFound
		}
		return fmt.Errorf("failed to deactivate challenge: %w", err)
	}
	return nil
}
