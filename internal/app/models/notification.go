package models

import "time"

// Notification is an in-app message targeted at a user. The related entity
// reference is a weak link: the notification stays valid regardless of what
// later happens to the entity it points at.
type Notification struct {
	ID                int64            `json:"id" db:"id"`
	UserID            int64            `json:"userId" db:"user_id"`
	Title             string           `json:"title" db:"title"`
	Message           string           `json:"message" db:"message"`
	Type              NotificationType `json:"type" db:"type"`
	RelatedEntityType *string          `json:"relatedEntityType,omitempty" db:"related_entity_type"`
	RelatedEntityID   *int64           `json:"relatedEntityId,omitempty" db:"related_entity_id"`
	IsRead            bool             `json:"isRead" db:"is_read"`
	CreatedAt         time.Time        `json:"createdAt" db:"created_at"`
}
