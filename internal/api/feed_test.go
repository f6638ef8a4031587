package api

import (
	"net/http"
	"testing"
	"time"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFeedRoutes_CreatePost(t *testing.T) {
	userID := uuid.New()

	t.Run("Posted", func(t *testing.T) {
		s := newTestServer(t)
		s.feed.On("CreatePost", mock.Anything, userID, "Finished my first offline evening").
			Return(&model.FeedItem{ID: uuid.New(), UserID: userID, Content: "Finished my first offline evening", CreatedAt: time.Now()}, nil).Once()

		w := s.do(t, http.MethodPost, "/api/v1/feed", &userID, map[string]interface{}{"content": "Finished my first offline evening"})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Blank content", func(t *testing.T) {
		s := newTestServer(t)
		s.feed.On("CreatePost", mock.Anything, userID, "   ").Return(nil, service.ErrInvalidInput).Once()

		w := s.do(t, http.MethodPost, "/api/v1/feed", &userID, map[string]interface{}{"content": "   "})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFeedRoutes_DeleteComment(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.New()
	id := uuid.New()
	s.feed.On("DeleteComment", mock.Anything, userID, id).Return(service.ErrCommentNotFound).Once()

	w := s.do(t, http.MethodDelete, "/api/v1/comments/"+id.String(), &userID, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
