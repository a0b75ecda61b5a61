package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeiKhy/post-stats/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	service  service.StatsService
	maxLikes int64
	logger   *zap.Logger
}

func NewStatsHandler(service service.StatsService, maxLikes int64, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service:  service,
		maxLikes: maxLikes,
		logger:   logger,
	}
}

type LikeRequest struct {
	Count int64 `json:"count"`
}

type ViewResponse struct {
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GetStats godoc
// @Summary Get post statistics
// @Description Get total view and like counts for a post (zeros for an unseen slug)
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.PostStats
// @Failure 500 {object} ErrorResponse
// @Router /api/posts/{slug}/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	slug := c.Param("slug")

	stats, err := h.service.GetStats(c.Request.Context(), slug)
	if err != nil {
		h.logger.Error("Failed to get stats", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to get post stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUserStats godoc
// @Summary Get post statistics for the current visitor
// @Description Get view/like counts plus the calling visitor's own like count
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.UserPostStats
// @Failure 500 {object} ErrorResponse
// @Router /api/posts/{slug}/user-stats [get]
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	slug := c.Param("slug")

	stats, err := h.service.GetUserStats(c.Request.Context(), slug, c.ClientIP())
	if err != nil {
		h.logger.Error("Failed to get user stats", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to get post stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RecordView godoc
// @Summary Record a page view
// @Description Atomically increment the view counter for a post, creating it on first view
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 201 {object} ViewResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/posts/{slug}/view [post]
func (h *StatsHandler) RecordView(c *gin.Context) {
	slug := c.Param("slug")

	views, err := h.service.RecordView(c.Request.Context(), slug)
	if err != nil {
		h.logger.Error("Failed to record view", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to record view",
		})
		return
	}

	c.JSON(http.StatusCreated, ViewResponse{
		Slug:  slug,
		Views: views,
	})
}

// Like godoc
// @Summary Like a post
// @Description Apply visitor likes up to the per-visitor cap; the increment is clamped to the remaining headroom
// @Tags posts
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body LikeRequest true "Number of likes to apply"
// @Success 200 {object} models.LikeResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/posts/{slug}/like [post]
func (h *StatsHandler) Like(c *gin.Context) {
	slug := c.Param("slug")

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid like request body", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_count",
			Message: "Count must be a number",
		})
		return
	}

	result, err := h.service.Like(c.Request.Context(), slug, c.ClientIP(), req.Count)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCount):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_count",
				Message: fmt.Sprintf("Count must be a positive integer not greater than %d", h.maxLikes),
			})
		case errors.Is(err, service.ErrMaxLikesReached):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "max_likes_reached",
				Message: "Maximum number of likes for this post has been reached",
			})
		default:
			h.logger.Error("Failed to apply like", zap.String("slug", slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to apply like",
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "post-stats",
	})
}
