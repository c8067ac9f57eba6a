package inbound

import (
	"time"

	"github.com/drivelaw/backend/internal/notification/entity"
)

type NotificationResponse struct {
	ID        int64      `json:"id,string"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	// meta
	unread int64
}

func (r NotificationsResponse) Meta() map[string]any {
	return map[string]any{
		"unread": r.unread,
	}
}

func toNotificationsResponse(items []entity.NotificationItem, unread int64) NotificationsResponse {
	notifications := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		notifications = append(notifications, NotificationResponse{
			ID:        item.ID,
			Kind:      item.Kind.String(),
			Title:     item.Title,
			Body:      item.Body,
			ReadAt:    item.ReadAt,
			CreatedAt: item.CreatedAt,
		})
	}

	return NotificationsResponse{Notifications: notifications, unread: unread}
}
