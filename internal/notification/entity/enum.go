package entity

import (
	"strings"
)

type Channel int16

const (
	ChannelUnknown Channel = 0
	ChannelInApp   Channel = 1
	ChannelEmail   Channel = 2
	ChannelSMS     Channel = 3
)

func ChannelFromString(raw string) Channel {
	switch strings.TrimSpace(raw) {
	case "in_app":
		return ChannelInApp
	case "email":
		return ChannelEmail
	case "sms":
		return ChannelSMS
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelInApp:
		return "in_app"
	case ChannelEmail:
		return "email"
	case ChannelSMS:
		return "sms"
	default:
		return "unknown"
	}
}

type DeliveryStatus int16

const (
	DeliveryStatusUnknown DeliveryStatus = 0
	DeliveryStatusQueued  DeliveryStatus = 1
	DeliveryStatusSent    DeliveryStatus = 2
	DeliveryStatusFailed  DeliveryStatus = 3
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryStatusQueued:
		return "queued"
	case DeliveryStatusSent:
		return "sent"
	case DeliveryStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Kind names the domain occurrence a notification announces.
type Kind int16

const (
	KindUnknown         Kind = 0
	KindOTP             Kind = 1
	KindOffenseRecorded Kind = 2
	KindAppealSubmitted Kind = 3
	KindAppealDecided   Kind = 4
	KindPaymentReceived Kind = 5
)

func (k Kind) String() string {
	switch k {
	case KindOTP:
		return "otp"
	case KindOffenseRecorded:
		return "offense_recorded"
	case KindAppealSubmitted:
		return "appeal_submitted"
	case KindAppealDecided:
		return "appeal_decided"
	case KindPaymentReceived:
		return "payment_received"
	default:
		return "unknown"
	}
}

type NotificationStatus string

const (
	NotificationStatusAll    NotificationStatus = "all"
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)
