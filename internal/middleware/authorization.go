package middleware

import (
	"context"
	"errors"
	"net/http"

	"calixo/internal/model"
	"calixo/internal/service"
	"calixo/pkg/auth"
	"calixo/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserKey holds the *model.User loaded by RequireRole.
const UserKey = "user"

type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type Authorization struct {
	users UserLookup
}

func NewAuthorization(users UserLookup) *Authorization {
	return &Authorization{
		users: users,
	}
}

// RequireRole lets the request through when the authenticated user's stored
// role grants at least min. It must run after the token middleware.
func (a *Authorization) RequireRole(min model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		userID, ok := auth.UserID(c)
		if !ok {
			log.Error("user id not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := a.users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "profile not registered"})
				return
			}
			log.Error("failed to get user data", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if !user.Role.AtLeast(min) {
			log.Info("unauthorized access attempt",
				zap.String("user_id", userID.String()),
				zap.String("required_role", string(min)),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": string(min) + " access required"})
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}
