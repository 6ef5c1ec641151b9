package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"wanderlust/internal/app"
	"wanderlust/internal/handler"
	"wanderlust/internal/middleware"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// ──────────────────────────────────────────────
// HTTP SURFACE
// ──────────────────────────────────────────────

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func newAPI(t *testing.T, e *env) *apiClient {
	t.Helper()
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:       handler.NewAuthHandler(e.auth),
		UserHandler:       handler.NewUserHandler(e.auth, e.tripService, e.gateway, 0),
		TripHandler:       handler.NewTripHandler(e.tripService, e.gateway),
		EngagementHandler: handler.NewEngagementHandler(e.gateway, e.tripService),
		Tokens:            e.tokens,
		AuthLimiter:       middleware.NewRateLimiter(100, 100),
	})
	return &apiClient{t: t, router: router}
}

func (c *apiClient) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			c.t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

func (c *apiClient) register(email string) (string, string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if code != http.StatusCreated {
		c.t.Fatalf("register: expected 201, got %d %v", code, body)
	}
	user := body["user"].(map[string]any)
	return body["token"].(string), user["_id"].(string)
}

func TestAPI_Health(t *testing.T) {
	t.Parallel()

	api := newAPI(t, newEnv(t))
	code, body := api.do(http.MethodGet, "/health", "", nil)
	if code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("unexpected health response %d %v", code, body)
	}
}

func TestAPI_TripLifecycle(t *testing.T) {
	t.Parallel()

	api := newAPI(t, newEnv(t))
	token, _ := api.register("writer@example.com")
	fanToken, _ := api.register("fan@example.com")

	code, body := api.do(http.MethodPost, "/api/trips", token, map[string]any{
		"title":      "Pacific Coast Highway Adventure",
		"distance":   750,
		"duration":   5,
		"difficulty": "Moderate",
		"stops":      []map[string]any{{"name": "Big Sur", "lat": 36.27, "lng": -121.8}},
	})
	if code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %v", code, body)
	}
	trip := body["trip"].(map[string]any)
	id := trip["_id"].(string)

	code, body = api.do(http.MethodGet, "/api/trips/"+id, "", nil)
	if code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", code)
	}
	trip = body["trip"].(map[string]any)
	if trip["averageRating"].(float64) != 0 || trip["likesCount"].(float64) != 0 || trip["shareCount"].(float64) != 0 {
		t.Errorf("expected zero engagement, got %v", trip)
	}

	for _, score := range []float64{5, 4} {
		code, body = api.do(http.MethodPost, "/api/trips/"+id+"/ratings", fanToken, map[string]any{"rating": score, "comment": "lovely"})
		if code != http.StatusCreated {
			t.Fatalf("rate: expected 201, got %d %v", code, body)
		}
	}
	_, body = api.do(http.MethodGet, "/api/trips/"+id, fanToken, nil)
	if avg := body["trip"].(map[string]any)["averageRating"].(float64); avg != 4.5 {
		t.Errorf("expected average 4.5, got %v", avg)
	}

	code, body = api.do(http.MethodPost, "/api/trips/"+id+"/like", fanToken, nil)
	if code != http.StatusOK || body["liked"] != true || body["likesCount"].(float64) != 1 {
		t.Errorf("like: unexpected %d %v", code, body)
	}

	code, body = api.do(http.MethodPost, "/api/trips/"+id+"/share", "", nil)
	if code != http.StatusOK || body["shareCount"].(float64) != 1 {
		t.Errorf("share: unexpected %d %v", code, body)
	}

	code, body = api.do(http.MethodPatch, "/api/trips/"+id, fanToken, map[string]any{"title": "Mine now"})
	if code != http.StatusForbidden {
		t.Errorf("patch by non-author: expected 403, got %d %v", code, body)
	}

	code, body = api.do(http.MethodPatch, "/api/trips/"+id, token, map[string]any{"title": "PCH", "stops": nil})
	if code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d %v", code, body)
	}
	trip = body["trip"].(map[string]any)
	if trip["title"] != "PCH" || len(trip["stops"].([]any)) != 0 || trip["distance"].(float64) != 750 {
		t.Errorf("patch: unexpected trip %v", trip)
	}

	code, body = api.do(http.MethodDelete, "/api/trips/"+id, token, nil)
	if code != http.StatusOK || body["success"] != true {
		t.Fatalf("delete: unexpected %d %v", code, body)
	}

	_, body = api.do(http.MethodGet, "/api/trips", "", nil)
	if trips := body["trips"].([]any); len(trips) != 0 {
		t.Errorf("expected no trips after delete, got %d", len(trips))
	}
	code, _ = api.do(http.MethodGet, "/api/trips/"+id, "", nil)
	if code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", code)
	}
}

func TestAPI_AuthErrors(t *testing.T) {
	t.Parallel()

	api := newAPI(t, newEnv(t))
	api.register("taken@example.com")

	code, body := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "TAKEN@example.com", "password": "x"})
	if code != http.StatusConflict {
		t.Errorf("duplicate register: expected 409, got %d %v", code, body)
	}

	code, body = api.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "long@example.com", "password": strings.Repeat("p", 73)})
	if code != http.StatusBadRequest {
		t.Errorf("overlong password: expected 400, got %d %v", code, body)
	}

	code, body = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "taken@example.com", "password": "wrong"})
	if code != http.StatusUnauthorized || body["message"] != "invalid email or password" {
		t.Errorf("bad login: unexpected %d %v", code, body)
	}

	code, _ = api.do(http.MethodGet, "/api/auth/me", "", nil)
	if code != http.StatusUnauthorized {
		t.Errorf("me without token: expected 401, got %d", code)
	}
	code, _ = api.do(http.MethodGet, "/api/auth/me", "garbage", nil)
	if code != http.StatusUnauthorized {
		t.Errorf("me with bad token: expected 401, got %d", code)
	}

	code, _ = api.do(http.MethodPost, "/api/trips", "", map[string]string{"title": "x"})
	if code != http.StatusUnauthorized {
		t.Errorf("create without token: expected 401, got %d", code)
	}
}

func TestAPI_DemoTripEngagement(t *testing.T) {
	t.Parallel()

	api := newAPI(t, newEnv(t))
	token, _ := api.register("fan@example.com")

	code, body := api.do(http.MethodPost, "/api/trips/eu1/like", "", nil)
	if code != http.StatusUnauthorized || body["message"] != "please login first" {
		t.Errorf("anonymous demo like: unexpected %d %v", code, body)
	}

	code, body = api.do(http.MethodPost, "/api/trips/eu1/like", token, nil)
	if code != http.StatusOK || body["likesCount"].(float64) != 1 {
		t.Errorf("demo like: unexpected %d %v", code, body)
	}

	code, body = api.do(http.MethodGet, "/api/trips/eu1", token, nil)
	if code != http.StatusOK {
		t.Fatalf("demo get: expected 200, got %d", code)
	}
	trip := body["trip"].(map[string]any)
	if trip["isDemo"] != true || trip["likedByMe"] != true {
		t.Errorf("demo get: unexpected %v", trip)
	}

	code, _ = api.do(http.MethodGet, "/api/trips/unknown-demo", "", nil)
	if code != http.StatusNotFound {
		t.Errorf("unknown demo: expected 404, got %d", code)
	}

	code, body = api.do(http.MethodPost, "/api/trips/eu1/ratings", token, map[string]any{"rating": 9, "comment": "x"})
	if code != http.StatusBadRequest {
		t.Errorf("invalid demo rating: expected 400, got %d %v", code, body)
	}

	code, body = api.do(http.MethodGet, "/api/demo-trips", "", nil)
	if code != http.StatusOK || len(body["trips"].([]any)) != 8 {
		t.Errorf("demo list: unexpected %d %v", code, body)
	}
}

func TestAPI_ProfileRoutes(t *testing.T) {
	t.Parallel()

	api := newAPI(t, newEnv(t))
	token, userID := api.register("me@example.com")

	code, body := api.do(http.MethodPatch, "/api/users/me", token, map[string]any{"bio": "Road tripper", "name": nil})
	if code != http.StatusOK {
		t.Fatalf("patch me: expected 200, got %d %v", code, body)
	}
	user := body["user"].(map[string]any)
	if user["bio"] != "Road tripper" || user["name"] != "" || user["username"] != "me" {
		t.Errorf("patch me: unexpected %v", user)
	}

	code, body = api.do(http.MethodGet, "/api/users/"+userID, "", nil)
	if code != http.StatusOK || body["user"].(map[string]any)["bio"] != "Road tripper" {
		t.Errorf("public profile: unexpected %d %v", code, body)
	}
	if _, ok := body["user"].(map[string]any)["passwordHash"]; ok {
		t.Error("password hash must never be exposed")
	}

	code, _ = api.do(http.MethodGet, "/api/users/unknown", "", nil)
	if code != http.StatusNotFound {
		t.Errorf("unknown profile: expected 404, got %d", code)
	}

	if code, _ := api.do(http.MethodPost, "/api/trips/us1/save", token, nil); code != http.StatusOK {
		t.Fatalf("save demo: expected 200, got %d", code)
	}
	code, body = api.do(http.MethodGet, "/api/users/me/saved-trips", token, nil)
	if code != http.StatusOK || len(body["trips"].([]any)) != 1 {
		t.Errorf("saved trips: unexpected %d %v", code, body)
	}
}
