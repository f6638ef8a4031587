package api

import (
	"net/http"

	"calixo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type socialRoutes struct {
	ss service.SocialChallengeServiceI
}

func NewSocialRoutes(handler *gin.RouterGroup, ss service.SocialChallengeServiceI) {
	r := &socialRoutes{ss: ss}

	h := handler.Group("/challenges/social")
	{
		h.GET("", r.List)
		h.POST("", r.Invite)
		h.GET("/:id", r.Get)
		h.POST("/:id/accept", r.Accept)
		h.POST("/:id/decline", r.Decline)
	}
}

func (r *socialRoutes) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sessions, err := r.ss.List(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "list social challenges")
		return
	}

	out := make([]socialChallengeResponse, len(sessions))
	for i, s := range sessions {
		out[i] = newSocialChallengeResponse(s)
	}

	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

func (r *socialRoutes) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	session, err := r.ss.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		serviceError(c, err, "get social challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": newSocialChallengeResponse(session)})
}

// inviteRequest names the invitee by id or by username.
type inviteRequest struct {
	InviteeID       string `json:"inviteeId"`
	InviteeUsername string `json:"inviteeUsername"`
	ChallengeID     string `json:"challengeId" binding:"required"`
}

func (r *socialRoutes) Invite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid challengeId"})
		return
	}

	invite := service.Invite{
		InviteeUsername: req.InviteeUsername,
		ChallengeID:     challengeID,
	}
	if req.InviteeID != "" {
		inviteeID, err := uuid.Parse(req.InviteeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inviteeId"})
			return
		}
		invite.InviteeID = &inviteeID
	}

	session, err := r.ss.Invite(c.Request.Context(), userID, invite)
	if err != nil {
		serviceError(c, err, "create social challenge")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"session": newSocialChallengeResponse(session),
	})
}

func (r *socialRoutes) Accept(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	session, err := r.ss.Accept(c.Request.Context(), userID, sessionID)
	if err != nil {
		serviceError(c, err, "accept social challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Challenge accepted",
		"session": newSocialChallengeResponse(session),
	})
}

func (r *socialRoutes) Decline(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	session, err := r.ss.Decline(c.Request.Context(), userID, sessionID)
	if err != nil {
		serviceError(c, err, "decline social challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Challenge declined",
		"session": newSocialChallengeResponse(session),
	})
}
