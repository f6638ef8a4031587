package api

import (
	"errors"
	"net/http"
	"strconv"

	"calixo/internal/service"
	"calixo/pkg/auth"
	"calixo/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// currentUser returns the id placed in the context by the token middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := auth.UserID(c)
	if !ok {
		logger.Logger().Error("user id not found in context", zap.String("path", c.FullPath()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return uuid.Nil, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// page reads limit and offset query parameters.
func page(c *gin.Context) (limit, offset uint64, ok bool) {
	limit, offset = defaultPageSize, 0

	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return 0, 0, false
		}
		limit = min(n, maxPageSize)
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return 0, 0, false
		}
		offset = n
	}

	return limit, offset, true
}

func bindError(c *gin.Context, err error) {
	logger.Logger().Info("failed to bind request", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
}

// serviceError translates a service error to the response taxonomy. Anything
// unrecognised is logged and hidden behind a generic 500.
func serviceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrChallengeNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTargetNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrFeedItemNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrNotFollowing):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrNotInProgress),
		errors.Is(err, service.ErrNotFinished),
		errors.Is(err, service.ErrChallengeExpired),
		errors.Is(err, service.ErrChallengeInactive),
		errors.Is(err, service.ErrAlreadyResponded),
		errors.Is(err, service.ErrSelfInvite),
		errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrActiveChallengeExists),
		errors.Is(err, service.ErrAlreadyClaimed),
		errors.Is(err, service.ErrDuplicateReport),
		errors.Is(err, service.ErrReportAlreadyResolved),
		errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		logger.Logger().Error("failed to "+action, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
