package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"calixo/internal/model"
	"calixo/internal/repository"

	"github.com/google/uuid"
)

const (
	maxAvatarItems     = 16
	maxDisplayNameSize = 50
	leaderboardSize    = 100
)

type UserService struct {
	repo     UserRepository
	notifier Notifier
	now      func() time.Time
}

func NewUserService(repo UserRepository, notifier Notifier) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *UserService) RegisterUser(ctx context.Context, user *model.User) error {
	user.Role = model.RoleUser
	user.Coins = 0
	if user.AvatarItems == nil {
		user.AvatarItems = []string{}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}

	err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return userOrNotFound(s.repo.GetUserByID(ctx, id))
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return userOrNotFound(s.repo.GetUserByUsername(ctx, username))
}

func (s *UserService) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) (*model.User, error) {
	displayName = strings.TrimSpace(displayName)
	if utf8.RuneCountInString(displayName) > maxDisplayNameSize {
		return nil, fmt.Errorf("%w: display name is too long", ErrInvalidInput)
	}

	if err := s.repo.UpdateUserDisplayName(ctx, id, displayName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update display name: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

// UpdateAvatar replaces the equipped avatar items. Duplicates are dropped and
// order is kept.
func (s *UserService) UpdateAvatar(ctx context.Context, id uuid.UUID, items []string) (*model.User, error) {
	seen := make(map[string]struct{}, len(items))
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("%w: avatar item must not be empty", ErrInvalidInput)
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		cleaned = append(cleaned, item)
	}
	if len(cleaned) > maxAvatarItems {
		return nil, fmt.Errorf("%w: at most %d avatar items", ErrInvalidInput, maxAvatarItems)
	}

	if err := s.repo.UpdateUserAvatar(ctx, id, cleaned); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

func (s *UserService) SetRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	if err := s.repo.UpdateUserRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

func (s *UserService) GetLeaderboard(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.GetTopUsers(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}
	return users, nil
}

func (s *UserService) Follow(ctx context.Context, followerID uuid.UUID, username string) error {
	follower, err := s.GetUserByID(ctx, followerID)
	if err != nil {
		return err
	}

	followee, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if follower.ID == followee.ID {
		return ErrSelfFollow
	}

	created, err := s.repo.Follow(ctx, follower.ID, followee.ID, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to follow user: %w", err)
	}

	if created {
		notify(ctx, s.notifier, &model.Notification{
			UserID:  followee.ID,
			Type:    model.NotificationFollow,
			Title:   "New follower",
			Message: fmt.Sprintf("%s started following you", follower.Username),
			Payload: model.NewFollowerPayload{
				FollowerID:       follower.ID,
				FollowerUsername: follower.Username,
			},
		})
	}

	return nil
}

func (s *UserService) Unfollow(ctx context.Context, followerID uuid.UUID, username string) error {
	followee, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.repo.Unfollow(ctx, followerID, followee.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFollowing
		}
		return fmt.Errorf("failed to unfollow user: %w", err)
	}

	return nil
}

func (s *UserService) Followers(ctx context.Context, username string) ([]*model.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.ListFollowers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

func (s *UserService) Following(ctx context.Context, username string) ([]*model.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.ListFollowing(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

func userOrNotFound(user *model.User, err error) (*model.User, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
