package notification

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByRecipient(ctx context.Context, recipientProfileID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientProfileID string) error
}
