package api

import (
	"net/http"

	"calixo/internal/service"

	"github.com/gin-gonic/gin"
)

type feedRoutes struct {
	fs service.FeedServiceI
}

func NewFeedRoutes(handler *gin.RouterGroup, fs service.FeedServiceI) {
	r := &feedRoutes{fs: fs}

	h := handler.Group("/feed")
	{
		h.GET("", r.ListFeed)
		h.POST("", r.CreatePost)
		h.DELETE("/:id", r.DeletePost)
		h.GET("/:id/comments", r.ListComments)
		h.POST("/:id/comments", r.AddComment)
	}

	handler.DELETE("/comments/:id", r.DeleteComment)
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r *feedRoutes) ListFeed(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, offset, ok := page(c)
	if !ok {
		return
	}

	items, err := r.fs.ListFeed(c.Request.Context(), userID, limit, offset)
	if err != nil {
		serviceError(c, err, "list feed")
		return
	}

	out := make([]feedItemResponse, len(items))
	for i, item := range items {
		out[i] = newFeedItemResponse(item)
	}

	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (r *feedRoutes) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := r.fs.CreatePost(c.Request.Context(), userID, req.Content)
	if err != nil {
		serviceError(c, err, "create post")
		return
	}

	c.JSON(http.StatusCreated, newFeedItemResponse(item))
}

func (r *feedRoutes) DeletePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := r.fs.DeletePost(c.Request.Context(), userID, id); err != nil {
		serviceError(c, err, "delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *feedRoutes) ListComments(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	comments, err := r.fs.ListComments(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "list comments")
		return
	}

	out := make([]commentResponse, len(comments))
	for i, cm := range comments {
		out[i] = newCommentResponse(cm)
	}

	c.JSON(http.StatusOK, gin.H{"comments": out})
}

func (r *feedRoutes) AddComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cm, err := r.fs.AddComment(c.Request.Context(), userID, id, req.Content)
	if err != nil {
		serviceError(c, err, "add comment")
		return
	}

	c.JSON(http.StatusCreated, newCommentResponse(cm))
}

func (r *feedRoutes) DeleteComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := r.fs.DeleteComment(c.Request.Context(), userID, id); err != nil {
		serviceError(c, err, "delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
