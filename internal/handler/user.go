package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"

	"wanderlust/internal/middleware"
	"wanderlust/internal/service"
)

// DefaultMaxAvatarBytes caps avatar uploads when no limit is configured.
const DefaultMaxAvatarBytes = 5 << 20

// UserHandler handles HTTP requests for profiles.
type UserHandler struct {
	authService    *service.AuthService
	tripService    *service.TripService
	gateway        *service.TripGateway
	maxAvatarBytes int64
}

// NewUserHandler creates a new UserHandler. A non-positive maxAvatarBytes
// selects DefaultMaxAvatarBytes.
func NewUserHandler(
	authService *service.AuthService,
	tripService *service.TripService,
	gateway *service.TripGateway,
	maxAvatarBytes int64,
) *UserHandler {
	if maxAvatarBytes <= 0 {
		maxAvatarBytes = DefaultMaxAvatarBytes
	}
	return &UserHandler{
		authService:    authService,
		tripService:    tripService,
		gateway:        gateway,
		maxAvatarBytes: maxAvatarBytes,
	}
}

// UpdateProfileRequest is the HTTP request body for PATCH /api/users/me.
// Absent fields are kept; null clears a field.
type UpdateProfileRequest struct {
	Name     nullable.Nullable[string] `json:"name"`
	Username nullable.Nullable[string] `json:"username"`
	Bio      nullable.Nullable[string] `json:"bio"`
	Avatar   nullable.Nullable[string] `json:"avatar"`
}

// UpdateMe handles PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.ProfilePatch{
		Name:     optional(req.Name),
		Username: optional(req.Username),
		Bio:      optional(req.Bio),
		Avatar:   optional(req.Avatar),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// UploadAvatar handles POST /api/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		respondBadRequest(c, "avatar file is required")
		return
	}
	if file.Size > h.maxAvatarBytes {
		respondBadRequest(c, fmt.Sprintf("avatar exceeds %d bytes", h.maxAvatarBytes))
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxAvatarBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}
	if int64(len(data)) > h.maxAvatarBytes {
		respondBadRequest(c, fmt.Sprintf("avatar exceeds %d bytes", h.maxAvatarBytes))
		return
	}

	user, err := h.authService.UploadAvatar(c.Request.Context(), middleware.UserID(c), file.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// SavedTrips handles GET /api/users/me/saved-trips
func (h *UserHandler) SavedTrips(c *gin.Context) {
	trips, err := h.gateway.ListSavedTrips(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"trips": toTripResponses(trips)})
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// UserTrips handles GET /api/users/:id/trips
func (h *UserHandler) UserTrips(c *gin.Context) {
	trips, err := h.tripService.ListTripsByAuthor(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"trips": toTripResponses(trips)})
}

// optional turns a PATCH field into a service pointer: absent is nil and
// null is the zero value.
func optional[T any](n nullable.Nullable[T]) *T {
	if !n.IsSpecified() {
		return nil
	}
	var v T
	if !n.IsNull() {
		v = n.MustGet()
	}
	return &v
}
