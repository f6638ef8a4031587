package api

import (
	"net/http"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type challengeRoutes struct {
	cs      service.ChallengeServiceI
	catalog service.CatalogServiceI
}

func NewChallengeRoutes(handler *gin.RouterGroup, cs service.ChallengeServiceI, catalog service.CatalogServiceI) {
	r := &challengeRoutes{cs: cs, catalog: catalog}

	h := handler.Group("/challenges")
	{
		h.GET("", r.ListChallenges)
		h.GET("/active", r.GetActive)
		h.GET("/history", r.History)
		h.POST("/start", r.Start)
		h.POST("/finish", r.Finish)
		h.POST("/claim", r.Claim)
	}
}

func (r *challengeRoutes) ListChallenges(c *gin.Context) {
	challenges, err := r.catalog.List(c.Request.Context(), false)
	if err != nil {
		serviceError(c, err, "list challenges")
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": newChallengeList(challenges)})
}

func (r *challengeRoutes) GetActive(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	active, err := r.cs.GetActive(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "get active challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{"activeChallenge": newActiveChallengeResponse(active)})
}

type startChallengeRequest struct {
	ChallengeID string          `json:"challengeId" binding:"required"`
	SessionData json.RawMessage `json:"sessionData"`
}

func (r *challengeRoutes) Start(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req startChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid challengeId"})
		return
	}

	sd, ok := decodeSessionData(c, req.SessionData)
	if !ok {
		return
	}

	started, err := r.cs.Start(c.Request.Context(), userID, challengeID, sd)
	if err != nil {
		serviceError(c, err, "start challenge")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"userChallenge": newActiveChallengeResponse(started),
	})
}

type finishChallengeRequest struct {
	UserChallengeID string          `json:"userChallengeId" binding:"required"`
	SessionData     json.RawMessage `json:"sessionData"`
}

func (r *challengeRoutes) Finish(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req finishChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	attemptID, err := uuid.Parse(req.UserChallengeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userChallengeId"})
		return
	}

	sd, ok := decodeSessionData(c, req.SessionData)
	if !ok {
		return
	}

	finished, err := r.cs.Finish(c.Request.Context(), userID, attemptID, sd)
	if err != nil {
		serviceError(c, err, "finish challenge")
		return
	}

	// The catalog reward is replaced by the one earned with this attempt's
	// session data, so a focus override is reflected.
	ch := newChallengeResponse(finished.Challenge)
	if ch != nil {
		ch.Reward = finished.Reward
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"userChallenge":   newUserChallengeResponse(finished.UserChallenge),
		"challenge":       ch,
		"reward":          finished.Reward,
		"durationMinutes": finished.DurationMinutes,
	})
}

type claimChallengeRequest struct {
	UserChallengeID string `json:"userChallengeId" binding:"required"`
}

func (r *challengeRoutes) Claim(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req claimChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	attemptID, err := uuid.Parse(req.UserChallengeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userChallengeId"})
		return
	}

	res, err := r.cs.Claim(c.Request.Context(), userID, attemptID)
	if err != nil {
		serviceError(c, err, "claim challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"userChallenge": newUserChallengeResponse(res.UserChallenge),
		"reward":        res.Reward,
		"coins":         res.Coins,
	})
}

func (r *challengeRoutes) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, offset, ok := page(c)
	if !ok {
		return
	}

	attempts, err := r.cs.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		serviceError(c, err, "list challenge history")
		return
	}

	out := make([]*userChallengeResponse, len(attempts))
	for i, uc := range attempts {
		out[i] = newUserChallengeResponse(uc)
	}

	c.JSON(http.StatusOK, gin.H{"userChallenges": out})
}

func decodeSessionData(c *gin.Context, raw json.RawMessage) (model.SessionData, bool) {
	sd, err := model.DecodeSessionData(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sessionData", "details": err.Error()})
		return nil, false
	}
	return sd, true
}
