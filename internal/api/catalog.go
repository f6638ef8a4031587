package api

import (
	"net/http"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/gin-gonic/gin"
)

type catalogRoutes struct {
	catalog service.CatalogServiceI
}

// NewCatalogRoutes registers challenge administration on admin, which must
// already enforce the admin role.
func NewCatalogRoutes(admin *gin.RouterGroup, catalog service.CatalogServiceI) {
	r := &catalogRoutes{catalog: catalog}

	h := admin.Group("/challenges")
	{
		h.GET("", r.List)
		h.POST("", r.Create)
		h.PUT("/:id", r.Update)
		h.DELETE("/:id", r.Deactivate)
	}
}

type challengeRequest struct {
	Type            string `json:"type" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Reward          int    `json:"reward"`
	DurationMinutes *int   `json:"durationMinutes"`
	IsActive        *bool  `json:"isActive"`
}

func (req challengeRequest) input() service.ChallengeInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return service.ChallengeInput{
		Type:            model.ChallengeType(req.Type),
		Title:           req.Title,
		Description:     req.Description,
		Reward:          req.Reward,
		DurationMinutes: req.DurationMinutes,
		IsActive:        active,
	}
}

// List includes inactive challenges.
func (r *catalogRoutes) List(c *gin.Context) {
	challenges, err := r.catalog.List(c.Request.Context(), true)
	if err != nil {
		serviceError(c, err, "list challenges")
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": newChallengeList(challenges)})
}

func (r *catalogRoutes) Create(c *gin.Context) {
	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ch, err := r.catalog.Create(c.Request.Context(), req.input())
	if err != nil {
		serviceError(c, err, "create challenge")
		return
	}

	c.JSON(http.StatusCreated, newChallengeResponse(ch))
}

func (r *catalogRoutes) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ch, err := r.catalog.Update(c.Request.Context(), id, req.input())
	if err != nil {
		serviceError(c, err, "update challenge")
		return
	}

	c.JSON(http.StatusOK, newChallengeResponse(ch))
}

func (r *catalogRoutes) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := r.catalog.Deactivate(c.Request.Context(), id); err != nil {
		serviceError(c, err, "deactivate challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
