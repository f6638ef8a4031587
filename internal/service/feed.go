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
	maxPostLength    = 1000
	maxCommentLength = 500
)

type FeedService struct {
	repo FeedRepository
	now  func() time.Time
}

func NewFeedService(repo FeedRepository) *FeedService {
	return &FeedService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *FeedService) CreatePost(ctx context.Context, userID uuid.UUID, content string) (*model.FeedItem, error) {
	content, err := cleanContent(content, maxPostLength)
	if err != nil {
		return nil, err
	}

	item := &model.FeedItem{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.CreateFeedItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return item, nil
}

func (s *FeedService) ListFeed(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.FeedItem, error) {
	items, err := s.repo.ListFeed(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	return items, nil
}

func (s *FeedService) DeletePost(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteFeedItem(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFeedItemNotFound
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (s *FeedService) AddComment(ctx context.Context, userID, feedItemID uuid.UUID, content string) (*model.Comment, error) {
	content, err := cleanContent(content, maxCommentLength)
	if err != nil {
		return nil, err
	}

	if _, err := s.getFeedItem(ctx, feedItemID); err != nil {
		return nil, err
	}

	c := &model.Comment{
		ID:         uuid.New(),
		FeedItemID: feedItemID,
		UserID:     userID,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return c, nil
}

func (s *FeedService) ListComments(ctx context.Context, feedItemID uuid.UUID) ([]*model.Comment, error) {
	if _, err := s.getFeedItem(ctx, feedItemID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, feedItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *FeedService) DeleteComment(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteComment(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *FeedService) getFeedItem(ctx context.Context, id uuid.UUID) (*model.FeedItem, error) {
	item, err := s.repo.GetFeedItem(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFeedItemNotFound
		}
		return nil, fmt.Errorf("failed to get feed item: %w", err)
	}
	return item, nil
}

func cleanContent(content string, max int) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > max {
		return "", fmt.Errorf("%w: content is longer than %d characters", ErrInvalidInput, max)
	}
	return content, nil
}
