package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
	idempotencyTTL    = 24 * time.Hour
	maxIdempotencyKey = 255
)

// storedReply is what a successful mutation leaves behind for its retries.
type storedReply struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// replayStore keeps replies in Redis under "idempotency:" keys.
type replayStore struct {
	client *redis.Client
}

func (s replayStore) lookup(ctx context.Context, key string) (*storedReply, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var reply storedReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (s replayStore) remember(ctx context.Context, key string, reply storedReply) error {
	data, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, idempotencyTTL).Err()
}

// bodyRecorder copies everything the handler writes.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware answers a retried POST or PATCH carrying an
// Idempotency-Key with the reply of its first successful attempt. Keys are
// scoped to the caller and the route. A nil client disables it.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	if redisClient == nil {
		return func(c *gin.Context) { c.Next() }
	}
	store := replayStore{client: redisClient}

	return func(c *gin.Context) {
		key := c.GetHeader(idempotencyHeader)
		if key == "" || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPatch) {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKey {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "idempotency key is too long"})
			return
		}

		ctx := c.Request.Context()
		cacheKey := replayKey(c, key)

		reply, err := store.lookup(ctx, cacheKey)
		if err != nil {
			log.Printf("idempotency lookup failed for %s: %v", c.Request.URL.Path, err)
		}
		if reply != nil {
			c.Header(replayedHeader, "true")
			c.Data(reply.Status, reply.ContentType, reply.Body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		err = store.remember(ctx, cacheKey, storedReply{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err != nil {
			log.Printf("idempotency store failed for %s: %v", c.Request.URL.Path, err)
		}
	}
}

// replayKey scopes key to the caller, method and path. Anonymous callers
// share one scope per route.
func replayKey(c *gin.Context, key string) string {
	return strings.Join([]string{"idempotency", UserID(c), c.Request.Method, c.Request.URL.Path, key}, ":")
}
