package service

import (
	"context"
	"errors"
	"time"

	"calixo/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrSelfFollow        = errors.New("cannot follow yourself")
	ErrNotFollowing      = errors.New("not following this user")

	ErrChallengeNotFound     = errors.New("challenge not found")
	ErrChallengeInactive     = errors.New("challenge is not active")
	ErrAttemptNotFound       = errors.New("user challenge not found")
	ErrActiveChallengeExists = errors.New("another challenge is already active")
	ErrNotInProgress         = errors.New("challenge is not in progress")
	ErrNotFinished           = errors.New("challenge is not finished")
	ErrAlreadyClaimed        = errors.New("reward already claimed")
	ErrChallengeExpired      = errors.New("challenge expired before it was claimed")

	ErrSessionNotFound  = errors.New("social session not found")
	ErrAlreadyResponded = errors.New("invitation already responded")
	ErrSelfInvite       = errors.New("cannot invite yourself")

	ErrTargetNotFound        = errors.New("report target not found")
	ErrDuplicateReport       = errors.New("report already submitted")
	ErrReportNotFound        = errors.New("report not found")
	ErrReportAlreadyResolved = errors.New("report already resolved")

	ErrNotificationNotFound = errors.New("notification not found")
	ErrFeedItemNotFound     = errors.New("feed item not found")
	ErrCommentNotFound      = errors.New("comment not found")
)

type ChallengeServiceI interface {
	GetActive(ctx context.Context, userID uuid.UUID) (*model.ActiveChallenge, error)
	Start(ctx context.Context, userID, challengeID uuid.UUID, sessionData model.SessionData) (*model.ActiveChallenge, error)
	Finish(ctx context.Context, userID, attemptID uuid.UUID, sessionData model.SessionData) (*model.ActiveChallenge, error)
	Claim(ctx context.Context, userID, attemptID uuid.UUID) (*model.ClaimResult, error)
	History(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.UserChallenge, error)
}

type ChallengeRepository interface {
	GetChallenge(ctx context.Context, id uuid.UUID) (*model.Challenge, error)
	GetLatestActiveAttempt(ctx context.Context, userID uuid.UUID) (*model.UserChallenge, error)
	GetAttempt(ctx context.Context, userID, attemptID uuid.UUID) (*model.UserChallenge, error)
	ListAttempts(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.UserChallenge, error)
	CreateAttempt(ctx context.Context, uc *model.UserChallenge) error
	FinishAttempt(ctx context.Context, userID, attemptID uuid.UUID, finishedAt time.Time, sessionData model.SessionData) (*model.UserChallenge, error)
	ExpireAttempt(ctx context.Context, attemptID uuid.UUID) error
	ClaimAttempt(ctx context.Context, userID, attemptID uuid.UUID, reward int, claimedAt time.Time) (int, error)
}

type CatalogServiceI interface {
	List(ctx context.Context, includeInactive bool) ([]*model.Challenge, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Challenge, error)
	Create(ctx context.Context, input ChallengeInput) (*model.Challenge, error)
	Update(ctx context.Context, id uuid.UUID, input ChallengeInput) (*model.Challenge, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type CatalogRepository interface {
	ListChallenges(ctx context.Context, includeInactive bool) ([]*model.Challenge, error)
	GetChallenge(ctx context.Context, id uuid.UUID) (*model.Challenge, error)
	CreateChallenge(ctx context.Context, ch *model.Challenge) error
	UpdateChallenge(ctx context.Context, ch *model.Challenge) error
	SetChallengeActive(ctx context.Context, id uuid.UUID, active bool) error
}

type SocialChallengeServiceI interface {
	List(ctx context.Context, userID uuid.UUID) ([]*model.SocialChallenge, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error)
	Invite(ctx context.Context, inviterID uuid.UUID, invite Invite) (*model.SocialChallenge, error)
	Accept(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error)
	Decline(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error)
}

type SocialChallengeRepository interface {
	ListSocialChallenges(ctx context.Context, userID uuid.UUID) ([]*model.SocialChallenge, error)
	GetSocialChallenge(ctx context.Context, id uuid.UUID) (*model.SocialChallenge, error)
	CreateSocialChallenge(ctx context.Context, s *model.SocialChallenge) error
	RespondSocialChallenge(ctx context.Context, id, inviteeID uuid.UUID, status model.SocialStatus, at time.Time) (*model.SocialChallenge, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetChallenge(ctx context.Context, id uuid.UUID) (*model.Challenge, error)
}

type ReportServiceI interface {
	Submit(ctx context.Context, reporterID uuid.UUID, input ReportInput) (*model.Report, error)
	List(ctx context.Context, status model.ReportStatus, limit, offset uint64) ([]*model.Report, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Report, error)
	Resolve(ctx context.Context, moderatorID, reportID uuid.UUID, status model.ReportStatus, deleteContent bool) (*model.Report, error)
}

type ReportRepository interface {
	ReportExists(ctx context.Context, reporterID uuid.UUID, targetType model.ReportTargetType, targetID uuid.UUID, reason string) (bool, error)
	CreateReport(ctx context.Context, rep *model.Report) error
	ListReports(ctx context.Context, status model.ReportStatus, limit, offset uint64) ([]*model.Report, error)
	GetReport(ctx context.Context, id uuid.UUID) (*model.Report, error)
	ResolveReport(ctx context.Context, id, moderatorID uuid.UUID, status model.ReportStatus, deleteContent bool, at time.Time) (*model.Report, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetFeedItem(ctx context.Context, id uuid.UUID) (*model.FeedItem, error)
	GetComment(ctx context.Context, id uuid.UUID) (*model.Comment, error)
}

type NotificationServiceI interface {
	Notifier
	List(ctx context.Context, userID uuid.UUID, unseenOnly bool, limit, offset uint64) ([]*model.Notification, int, error)
	MarkSeen(ctx context.Context, userID, id uuid.UUID) error
	MarkAllSeen(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID, unseenOnly bool, limit, offset uint64) ([]*model.Notification, error)
	CountUnseenNotifications(ctx context.Context, userID uuid.UUID) (int, error)
	MarkNotificationSeen(ctx context.Context, userID, id uuid.UUID) error
	MarkAllNotificationsSeen(ctx context.Context, userID uuid.UUID) error
	DeleteNotification(ctx context.Context, userID, id uuid.UUID) error
}

// Notifier delivers a notification to its owner.
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}

// Publisher pushes a stored notification to live connections.
type Publisher interface {
	Publish(userID uuid.UUID, n *model.Notification)
}

type UserServiceI interface {
	RegisterUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, items []string) (*model.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error)
	GetLeaderboard(ctx context.Context) ([]*model.User, error)
	Follow(ctx context.Context, followerID uuid.UUID, username string) error
	Unfollow(ctx context.Context, followerID uuid.UUID, username string) error
	Followers(ctx context.Context, username string) ([]*model.User, error)
	Following(ctx context.Context, username string) ([]*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUserDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
	UpdateUserAvatar(ctx context.Context, id uuid.UUID, items []string) error
	UpdateUserRole(ctx context.Context, id uuid.UUID, role model.Role) error
	GetTopUsers(ctx context.Context, limit int) ([]*model.User, error)
	Follow(ctx context.Context, followerID, followeeID uuid.UUID, at time.Time) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]*model.User, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]*model.User, error)
}

type FeedServiceI interface {
	CreatePost(ctx context.Context, userID uuid.UUID, content string) (*model.FeedItem, error)
	ListFeed(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.FeedItem, error)
	DeletePost(ctx context.Context, userID, id uuid.UUID) error
	AddComment(ctx context.Context, userID, feedItemID uuid.UUID, content string) (*model.Comment, error)
	ListComments(ctx context.Context, feedItemID uuid.UUID) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, userID, id uuid.UUID) error
}

type FeedRepository interface {
	CreateFeedItem(ctx context.Context, item *model.FeedItem) error
	GetFeedItem(ctx context.Context, id uuid.UUID) (*model.FeedItem, error)
	ListFeed(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.FeedItem, error)
	DeleteFeedItem(ctx context.Context, userID, id uuid.UUID) error
	CreateComment(ctx context.Context, c *model.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListComments(ctx context.Context, feedItemID uuid.UUID) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, userID, id uuid.UUID) error
}
