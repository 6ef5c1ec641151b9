package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"

	"wanderlust/internal/domain"
	"wanderlust/internal/middleware"
	"wanderlust/internal/service"
)

// TripHandler handles HTTP requests for trips and their stops.
type TripHandler struct {
	tripService *service.TripService
	gateway     *service.TripGateway
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService, gateway *service.TripGateway) *TripHandler {
	return &TripHandler{tripService: tripService, gateway: gateway}
}

// StopRequest is a stop in a trip request body.
type StopRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Location    string   `json:"location"`
	Position    int      `json:"position"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// CreateTripRequest is the HTTP request body for POST /api/trips.
type CreateTripRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Distance    float64       `json:"distance"`
	Duration    float64       `json:"duration"`
	Location    string        `json:"location"`
	Difficulty  string        `json:"difficulty"`
	Stops       []StopRequest `json:"stops"`
}

// UpdateTripRequest is the HTTP request body for PATCH /api/trips/:id.
// A present stops list replaces the previous one; null empties it.
type UpdateTripRequest struct {
	Title       nullable.Nullable[string]        `json:"title"`
	Description nullable.Nullable[string]        `json:"description"`
	Image       nullable.Nullable[string]        `json:"image"`
	Distance    nullable.Nullable[float64]       `json:"distance"`
	Duration    nullable.Nullable[float64]       `json:"duration"`
	Location    nullable.Nullable[string]        `json:"location"`
	Difficulty  nullable.Nullable[string]        `json:"difficulty"`
	Stops       nullable.Nullable[[]StopRequest] `json:"stops"`
}

// List handles GET /api/trips
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"trips": toTripResponses(trips)})
}

// ListDemo handles GET /api/demo-trips
func (h *TripHandler) ListDemo(c *gin.Context) {
	trips, err := h.gateway.ListDemoTrips(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"trips": toTripResponses(trips)})
}

// Get handles GET /api/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.gateway.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"trip": toTripResponse(trip)})
}

// Create handles POST /api/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), middleware.UserID(c), service.TripInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Distance:    req.Distance,
		Duration:    req.Duration,
		Location:    req.Location,
		Difficulty:  domain.Difficulty(req.Difficulty),
		Stops:       toStopInputs(req.Stops),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"trip": toTripResponse(trip)})
}

// Update handles PATCH /api/trips/:id
func (h *TripHandler) Update(c *gin.Context) {
	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	patch := service.TripPatch{
		Title:       optional(req.Title),
		Description: optional(req.Description),
		Image:       optional(req.Image),
		Distance:    optional(req.Distance),
		Duration:    optional(req.Duration),
		Location:    optional(req.Location),
	}
	if d := optional(req.Difficulty); d != nil {
		difficulty := domain.Difficulty(*d)
		patch.Difficulty = &difficulty
	}
	if s := optional(req.Stops); s != nil {
		stops := toStopInputs(*s)
		patch.Stops = &stops
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"trip": toTripResponse(trip)})
}

// Delete handles DELETE /api/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	if err := h.tripService.DeleteTrip(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, SuccessResponse{Success: true})
}

// AddStop handles POST /api/trips/:id/stops
func (h *TripHandler) AddStop(c *gin.Context) {
	var req StopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	in := toStopInput(req)
	in.Position = 0
	trip, err := h.tripService.AddStop(c.Request.Context(), middleware.UserID(c), c.Param("id"), in, req.Position)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"trip": toTripResponse(trip)})
}

// RemoveStop handles DELETE /api/trips/:id/stops/:stopId
func (h *TripHandler) RemoveStop(c *gin.Context) {
	trip, err := h.tripService.RemoveStop(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("stopId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"trip": toTripResponse(trip)})
}

func toStopInput(s StopRequest) service.StopInput {
	return service.StopInput{
		Name:        s.Name,
		Description: s.Description,
		Image:       s.Image,
		Location:    s.Location,
		Position:    s.Position,
		Lat:         s.Lat,
		Lng:         s.Lng,
	}
}

func toStopInputs(stops []StopRequest) []service.StopInput {
	out := make([]service.StopInput, 0, len(stops))
	for _, s := range stops {
		out = append(out, toStopInput(s))
	}
	return out
}
