package entity

import (
	"time"
)

type CreateNotification struct {
	ID     int64
	UserID int64
	Kind   Kind
	Title  string
	Body   string
}

type CreateDeliveryLog struct {
	NotificationID int64
	Channel        Channel
	Status         DeliveryStatus
}

type UpdateDeliveryLog struct {
	ID               int64
	Status           DeliveryStatus
	ProviderResponse string
	NextRetryAt      *time.Time
}

type NotificationItem struct {
	ID        int64
	Kind      Kind
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Recipient is the slice of a user record delivery needs.
type Recipient struct {
	ID       int64
	FullName string
	Email    string
	Phone    string
	Language string
}
