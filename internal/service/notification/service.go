package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/notification"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/clock"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/sse"
)

// Service persists notifications and pushes them to any live SSE
// subscribers of the recipient profile.
type Service struct {
	clock clock.Clock
	hub   *sse.Hub

	notification.NotificationRepository
}

func NewService(clk clock.Clock, hub *sse.Hub, repo notification.NotificationRepository) *Service {
	return &Service{
		clock:                  clk,
		hub:                    hub,
		NotificationRepository: repo,
	}
}

// NotifyProfile stores the notification and publishes it. Persistence
// failures are swallowed: notifications are best-effort and must never
// fail the operation that triggered them.
func (s *Service) NotifyProfile(ctx context.Context, profileID string, typ notification.NotificationType, title, message string) {
	n := notification.Notification{
		ID:                 uuid.NewString(),
		RecipientProfileID: profileID,
		Type:               typ,
		Title:              title,
		Message:            message,
		CreatedAt:          s.clock.Now(),
	}

	stored, err := s.NotificationRepository.Create(ctx, n)
	if err != nil {
		stored = n
	}

	if s.hub != nil {
		s.hub.Publish(profileID, sse.Event{
			ProfileID: profileID,
			Event:     string(typ),
			Data:      stored,
		})
	}
}

// List returns the profile's notifications, optionally unread only.
func (s *Service) List(ctx context.Context, profileID string, unreadOnly bool) ([]notification.Notification, error) {
	items, err := s.NotificationRepository.ListByRecipient(ctx, profileID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, nil
}

// MarkRead marks one notification as read for the profile.
func (s *Service) MarkRead(ctx context.Context, id, profileID string) error {
	if err := s.NotificationRepository.MarkRead(ctx, id, profileID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
