package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/notification"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.NotificationRepository.
func (n *notificationRepositoryImpl) Create(ctx context.Context, newNotification notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, n.db)

	query := `
		INSERT INTO notifications (id, recipient_profile_id, type, title, message, is_read)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id, recipient_profile_id, type, title, message, is_read, read_at, created_at
	`

	var created notification.Notification
	err := q.QueryRow(ctx, query,
		newNotification.ID, newNotification.RecipientProfileID, newNotification.Type,
		newNotification.Title, newNotification.Message,
	).Scan(
		&created.ID, &created.RecipientProfileID, &created.Type,
		&created.Title, &created.Message, &created.IsRead, &created.ReadAt, &created.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return created, nil
}

// ListByRecipient implements notification.NotificationRepository.
func (n *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientProfileID string, unreadOnly bool) ([]notification.Notification, error) {
	q := GetQuerier(ctx, n.db)

	query := `
		SELECT id, recipient_profile_id, type, title, message, is_read, read_at, created_at
		FROM notifications
		WHERE recipient_profile_id = $1 AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := q.Query(ctx, query, recipientProfileID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var item notification.Notification
		err := rows.Scan(
			&item.ID, &item.RecipientProfileID, &item.Type,
			&item.Title, &item.Message, &item.IsRead, &item.ReadAt, &item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkRead implements notification.NotificationRepository.
func (n *notificationRepositoryImpl) MarkRead(ctx context.Context, id, recipientProfileID string) error {
	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE id = $1 AND recipient_profile_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, recipientProfileID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return nil
}
