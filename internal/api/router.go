package api

import (
	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/gin-gonic/gin"
)

type RoleGuard interface {
	RequireRole(min model.Role) gin.HandlerFunc
}

type Services struct {
	Challenges    service.ChallengeServiceI
	Catalog       service.CatalogServiceI
	Social        service.SocialChallengeServiceI
	Reports       service.ReportServiceI
	Notifications service.NotificationServiceI
	Users         service.UserServiceI
	Feed          service.FeedServiceI
	Stream        Stream
}

// RegisterRoutes mounts every authenticated route under v1. authenticate
// must set the user id in the context.
func RegisterRoutes(v1 *gin.RouterGroup, s Services, authenticate gin.HandlerFunc, guard RoleGuard) {
	user := v1.Group("")
	user.Use(authenticate)

	moderation := user.Group("/admin")
	moderation.Use(guard.RequireRole(model.RoleModerator))

	admin := user.Group("/admin")
	admin.Use(guard.RequireRole(model.RoleAdmin))

	NewChallengeRoutes(user, s.Challenges, s.Catalog)
	NewSocialRoutes(user, s.Social)
	NewReportRoutes(user, moderation, s.Reports)
	NewNotificationRoutes(user, s.Notifications, s.Stream)
	NewUserRoutes(user, admin, s.Users)
	NewFeedRoutes(user, s.Feed)
	NewCatalogRoutes(admin, s.Catalog)
}
