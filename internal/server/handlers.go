package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bloomwell/bloom/internal/chat"
)

type sendMessageRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type userRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and message are required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	response, err := s.chat.SendMessage(c.Request.Context(), req.UserID, req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) || errors.Is(err, chat.ErrMessageTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to handle message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"response":   response,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	history, err := s.chat.History(c.Request.Context(), userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to load history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}

func (s *Server) handleClear(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := s.chat.Clear(c.Request.Context(), req.UserID); err != nil {
		s.log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to clear history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

type sessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// handleCheckIn records a daily check-in for a user, updating the streak and
// wellness score and evaluating the related achievements.
func (s *Server) handleCheckIn(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	result, err := s.chat.CheckIn(c.Request.Context(), req.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to record check-in")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleEndSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	if err := s.chat.EndSession(c.Request.Context(), req.SessionID); err != nil {
		s.log.Error().Err(err).Str("session_id", req.SessionID).Msg("failed to end session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

func (s *Server) handleAchievements(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	ctx := c.Request.Context()
	definitions, err := s.store.Achievements.ListActive(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list achievements")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	earned, err := s.store.Achievements.EarnedForUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to list earned achievements")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"achievements": definitions,
		"earned":       earned,
	})
}

// handleSimilarMoments analyzes the query text and retrieves past moments with
// a close emotional shape.
func (s *Server) handleSimilarMoments(c *gin.Context) {
	userID := c.Query("user_id")
	text := c.Query("text")
	if userID == "" || text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and text are required"})
		return
	}

	result := s.analyzer.Analyze(text)
	if len(result.Emotions) == 0 {
		c.JSON(http.StatusOK, gin.H{"moments": []any{}})
		return
	}

	moments, err := s.store.Patterns.SearchSimilar(c.Request.Context(), userID, result.Emotions, s.topK, s.simThreshold)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to search similar moments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moments": moments})
}
