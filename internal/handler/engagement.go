package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderlust/internal/middleware"
	"wanderlust/internal/service"
)

// EngagementHandler handles ratings, comments, likes, saves and shares.
// Trip ids of either shape are accepted and routed by the gateway.
type EngagementHandler struct {
	gateway     *service.TripGateway
	tripService *service.TripService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(gateway *service.TripGateway, tripService *service.TripService) *EngagementHandler {
	return &EngagementHandler{gateway: gateway, tripService: tripService}
}

// RateRequest is the HTTP request body for POST /api/trips/:id/ratings.
type RateRequest struct {
	Rating  *float64 `json:"rating"`
	Comment string   `json:"comment"`
}

// CommentRequest is the HTTP request body for POST /api/trips/:id/comments.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// LikeResponse is the HTTP response for POST /api/trips/:id/like.
type LikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// SaveResponse is the HTTP response for POST /api/trips/:id/save.
type SaveResponse struct {
	Saved bool `json:"saved"`
}

// ShareResponse is the HTTP response for POST /api/trips/:id/share.
type ShareResponse struct {
	ShareCount int `json:"shareCount"`
}

// Rate handles POST /api/trips/:id/ratings
func (h *EngagementHandler) Rate(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Rating == nil {
		respondBadRequest(c, "rating is required")
		return
	}

	rating, err := h.gateway.Rate(c.Request.Context(), c.Param("id"), middleware.UserID(c), *req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"rating": toRatingResponse(rating)})
}

// DeleteRating handles DELETE /api/ratings/:id
func (h *EngagementHandler) DeleteRating(c *gin.Context) {
	if err := h.tripService.DeleteRating(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, SuccessResponse{Success: true})
}

// Comment handles POST /api/trips/:id/comments
func (h *EngagementHandler) Comment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	comment, err := h.gateway.Comment(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"comment": toCommentResponse(comment)})
}

// Like handles POST /api/trips/:id/like
func (h *EngagementHandler) Like(c *gin.Context) {
	liked, count, err := h.gateway.ToggleLike(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LikeResponse{Liked: liked, LikesCount: count})
}

// Save handles POST /api/trips/:id/save
func (h *EngagementHandler) Save(c *gin.Context) {
	saved, err := h.gateway.ToggleSave(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, SaveResponse{Saved: saved})
}

// Share handles POST /api/trips/:id/share
func (h *EngagementHandler) Share(c *gin.Context) {
	count, err := h.gateway.Share(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ShareResponse{ShareCount: count})
}
