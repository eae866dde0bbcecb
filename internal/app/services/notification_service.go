package services

import (
	"context"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/repositories"
)

// NotificationService exposes the in-app notification inbox
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// List retrieves the user's notifications newest first
func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly)
}

// UnreadCount returns the user's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the user's notifications as read and reports how
// many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
