package api

import (
	"net/http"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type reportRoutes struct {
	rs service.ReportServiceI
}

// NewReportRoutes registers report submission on handler and the moderation
// queue on moderation, which must already enforce the moderator role.
func NewReportRoutes(handler, moderation *gin.RouterGroup, rs service.ReportServiceI) {
	r := &reportRoutes{rs: rs}

	handler.POST("/reports", r.Submit)

	h := moderation.Group("/reports")
	{
		h.GET("", r.List)
		h.GET("/:id", r.Get)
		h.POST("/:id/resolve", r.Resolve)
	}
}

type submitReportRequest struct {
	TargetType string `json:"targetType" binding:"required"`
	TargetID   string `json:"targetId" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
	Details    string `json:"details"`
}

func (r *reportRoutes) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid targetId"})
		return
	}

	rep, err := r.rs.Submit(c.Request.Context(), userID, service.ReportInput{
		TargetType: model.ReportTargetType(req.TargetType),
		TargetID:   targetID,
		Reason:     req.Reason,
		Details:    req.Details,
	})
	if err != nil {
		serviceError(c, err, "submit report")
		return
	}

	c.JSON(http.StatusCreated, newReportResponse(rep))
}

func (r *reportRoutes) List(c *gin.Context) {
	status := model.ReportStatus(c.DefaultQuery("status", string(model.ReportPending)))
	switch status {
	case model.ReportPending, model.ReportResolved, model.ReportDismissed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	limit, offset, ok := page(c)
	if !ok {
		return
	}

	reports, err := r.rs.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		serviceError(c, err, "list reports")
		return
	}

	out := make([]reportResponse, len(reports))
	for i, rep := range reports {
		out[i] = newReportResponse(rep)
	}

	c.JSON(http.StatusOK, gin.H{"reports": out})
}

func (r *reportRoutes) Get(c *gin.Context) {
	reportID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	rep, err := r.rs.Get(c.Request.Context(), reportID)
	if err != nil {
		serviceError(c, err, "get report")
		return
	}

	c.JSON(http.StatusOK, newReportResponse(rep))
}

type resolveReportRequest struct {
	Status        string `json:"status" binding:"required"`
	DeleteContent bool   `json:"deleteContent"`
}

func (r *reportRoutes) Resolve(c *gin.Context) {
	moderatorID, ok := currentUser(c)
	if !ok {
		return
	}

	reportID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rep, err := r.rs.Resolve(c.Request.Context(), moderatorID, reportID, model.ReportStatus(req.Status), req.DeleteContent)
	if err != nil {
		serviceError(c, err, "resolve report")
		return
	}

	c.JSON(http.StatusOK, newReportResponse(rep))
}
