package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"wanderlust/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripRated     NotificationType = "TRIP_RATED"
	NotificationTripCommented NotificationType = "TRIP_COMMENTED"
	NotificationTripLiked     NotificationType = "TRIP_LIKED"
)

// Notification represents a notification to be sent.
type Notification struct {
	ID          string
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService tells trip authors about engagement on their trips.
type NotificationService struct {
	sent func(Notification)
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// OnSend registers a hook called with every delivered notification.
func (s *NotificationService) OnSend(fn func(Notification)) {
	s.sent = fn
}

// NotifyTripRated tells the author that their trip received a rating.
func (s *NotificationService) NotifyTripRated(ctx context.Context, trip *domain.Trip, rating *domain.Rating) error {
	if trip.AuthorID == rating.UserID {
		return nil
	}
	return s.send(ctx, Notification{
		Type:        NotificationTripRated,
		RecipientID: trip.AuthorID,
		Title:       "New Rating",
		Message:     fmt.Sprintf("Your trip %q was rated %.1f", trip.Title, rating.Score),
		Data: map[string]interface{}{
			"trip_id":   trip.ID,
			"rating_id": rating.ID,
			"rating":    rating.Score,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyTripCommented tells the author that their trip received a comment.
func (s *NotificationService) NotifyTripCommented(ctx context.Context, trip *domain.Trip, comment *domain.Comment) error {
	if trip.AuthorID == comment.UserID {
		return nil
	}
	return s.send(ctx, Notification{
		Type:        NotificationTripCommented,
		RecipientID: trip.AuthorID,
		Title:       "New Comment",
		Message:     fmt.Sprintf("Someone commented on %q", trip.Title),
		Data: map[string]interface{}{
			"trip_id":    trip.ID,
			"comment_id": comment.ID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyTripLiked tells the author that their trip was liked.
func (s *NotificationService) NotifyTripLiked(ctx context.Context, trip *domain.Trip, likerID string, likesCount int) error {
	if trip.AuthorID == likerID {
		return nil
	}
	return s.send(ctx, Notification{
		Type:        NotificationTripLiked,
		RecipientID: trip.AuthorID,
		Title:       "New Like",
		Message:     fmt.Sprintf("%q now has %d likes", trip.Title, likesCount),
		Data: map[string]interface{}{
			"trip_id":     trip.ID,
			"liked_by":    likerID,
			"likes_count": likesCount,
		},
		CreatedAt: time.Now(),
	})
}

// send delivers a notification by logging it.
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	notification.ID = domain.NewID()

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	if s.sent != nil {
		s.sent(notification)
	}
	return nil
}
