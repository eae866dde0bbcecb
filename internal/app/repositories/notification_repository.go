package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for in-app notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

// insertNotification writes a notification inside an existing transaction.
// Used by the application repository to group notifications with the state
// changes that produce them.
func insertNotification(ctx context.Context, tx pgx.Tx, notif *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, related_entity_type, related_entity_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		notif.UserID, notif.Title, notif.Message, notif.Type,
		notif.RelatedEntityType, notif.RelatedEntityID,
	).Scan(&notif.ID, &notif.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// Create writes a standalone notification outside any transaction
func (r *NotificationRepository) Create(ctx context.Context, notif *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, related_entity_type, related_entity_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		notif.UserID, notif.Title, notif.Message, notif.Type,
		notif.RelatedEntityType, notif.RelatedEntityID,
	).Scan(&notif.ID, &notif.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, related_entity_type, related_entity_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var notif models.Notification
		if err := rows.Scan(
			&notif.ID,
			&notif.UserID,
			&notif.Title,
			&notif.Message,
			&notif.Type,
			&notif.RelatedEntityType,
			&notif.RelatedEntityID,
			&notif.IsRead,
			&notif.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, &notif)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// UnreadCount returns the user's unread notification count
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead marks one of the user's notifications as read. Ownership is part
// of the predicate so users cannot touch each other's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks all of the user's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`,
		userID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
