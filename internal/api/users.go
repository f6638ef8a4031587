package api

import (
	"net/http"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	us service.UserServiceI
}

// NewUserRoutes registers profile and follow routes on handler and role
// management on admin, which must already enforce the admin role.
func NewUserRoutes(handler, admin *gin.RouterGroup, us service.UserServiceI) {
	r := &userRoutes{us: us}

	h := handler.Group("/users")
	{
		h.POST("", r.RegisterUser)
		h.GET("/me", r.GetMe)
		h.PATCH("/me", r.UpdateProfile)
		h.PUT("/me/avatar", r.UpdateAvatar)
		h.GET("/leaderboard", r.GetLeaderboard)
		h.GET("/:username", r.GetUserByUsername)
		h.POST("/:username/follow", r.Follow)
		h.DELETE("/:username/follow", r.Unfollow)
		h.GET("/:username/followers", r.Followers)
		h.GET("/:username/following", r.Following)
	}

	admin.PUT("/users/:id/role", r.SetRole)
}

type registerUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=30,alphanum"`
	DisplayName string `json:"displayName" binding:"max=50"`
}

// RegisterUser creates the profile for the authenticated subject.
func (r *userRoutes) RegisterUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u := &model.User{
		ID:          userID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
	}

	if err := r.us.RegisterUser(c.Request.Context(), u); err != nil {
		serviceError(c, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(u))
}

func (r *userRoutes) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := r.us.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "get user")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
}

func (r *userRoutes) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := r.us.UpdateDisplayName(c.Request.Context(), userID, req.DisplayName)
	if err != nil {
		serviceError(c, err, "update profile")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

type updateAvatarRequest struct {
	Items []string `json:"items" binding:"required"`
}

func (r *userRoutes) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := r.us.UpdateAvatar(c.Request.Context(), userID, req.Items)
	if err != nil {
		serviceError(c, err, "update avatar")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (r *userRoutes) GetLeaderboard(c *gin.Context) {
	users, err := r.us.GetLeaderboard(c.Request.Context())
	if err != nil {
		serviceError(c, err, "get leaderboard")
		return
	}

	response := make([]gin.H, len(users))
	for i, user := range users {
		response[i] = gin.H{
			"rank":        i + 1,
			"username":    user.Username,
			"displayName": user.DisplayName,
			"coins":       user.Coins,
			"avatarItems": user.AvatarItems,
		}
	}

	c.JSON(http.StatusOK, gin.H{"users": response})
}

func (r *userRoutes) GetUserByUsername(c *gin.Context) {
	user, err := r.us.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err, "get user")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (r *userRoutes) Follow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := r.us.Follow(c.Request.Context(), userID, c.Param("username")); err != nil {
		serviceError(c, err, "follow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *userRoutes) Unfollow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := r.us.Unfollow(c.Request.Context(), userID, c.Param("username")); err != nil {
		serviceError(c, err, "unfollow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *userRoutes) Followers(c *gin.Context) {
	users, err := r.us.Followers(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err, "list followers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": newUserList(users)})
}

func (r *userRoutes) Following(c *gin.Context) {
	users, err := r.us.Following(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err, "list following")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": newUserList(users)})
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (r *userRoutes) SetRole(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := r.us.SetRole(c.Request.Context(), id, model.Role(req.Role))
	if err != nil {
		serviceError(c, err, "set role")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
