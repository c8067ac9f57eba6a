package entity

import (
	"strings"
	"time"
)

// OffenseType classifies a recorded traffic offense, as stored in the
// offenses table.
type OffenseType int16

func (t OffenseType) String() string {
	switch t {
	case 1:
		return "speeding"
	case 2:
		return "red_light"
	case 3:
		return "illegal_parking"
	case 4:
		return "drunk_driving"
	case 5:
		return "no_license"
	case 6:
		return "phone_usage"
	case 7:
		return "reckless_driving"
	case 8:
		return "other"
	default:
		return "unknown"
	}
}

// OffenseStatus is the offense lifecycle state, as stored in the offenses
// table.
type OffenseStatus int16

const (
	OffenseStatusUnknown   OffenseStatus = 0
	OffenseStatusPending   OffenseStatus = 1
	OffenseStatusConfirmed OffenseStatus = 2
	OffenseStatusPaid      OffenseStatus = 3
	OffenseStatusCancelled OffenseStatus = 4
)

func OffenseStatusFromString(str string) OffenseStatus {
	switch strings.ToLower(str) {
	case "pending":
		return OffenseStatusPending
	case "confirmed":
		return OffenseStatusConfirmed
	case "paid":
		return OffenseStatusPaid
	case "cancelled":
		return OffenseStatusCancelled
	default:
		return OffenseStatusUnknown
	}
}

func (s OffenseStatus) String() string {
	switch s {
	case OffenseStatusPending:
		return "pending"
	case OffenseStatusConfirmed:
		return "confirmed"
	case OffenseStatusPaid:
		return "paid"
	case OffenseStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Offense is the driver-facing view of one of their offense records.
type Offense struct {
	ID          int64
	Number      string
	Type        OffenseType
	Status      OffenseStatus
	FineAmount  int64
	Points      int16
	Location    string
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
}

type OffenseListFilterData struct {
	IsFilterByStatus bool
	Statuses         []int16
	Limit            int32
	Offset           int32
}

// StatusCount is one row of a status breakdown.
type StatusCount struct {
	Status OffenseStatus
	Count  int64
}

// Dashboard is the driver's home screen aggregate.
type Dashboard struct {
	DrivingScore     int16
	OutstandingTotal int64
	OffensesByStatus []StatusCount
	PendingAppeals   int64
	UnreadCount      int64
	RecentOffenses   []Offense
}

// Payment is one row of the driver's settlement history.
type Payment struct {
	ID            int64
	Reference     string
	OffenseID     int64
	OffenseNumber string
	Amount        int64
	Method        int16
	PaidAt        time.Time
}

func (p Payment) MethodName() string {
	switch p.Method {
	case 1:
		return "mobile_money"
	case 2:
		return "card"
	case 3:
		return "bank"
	default:
		return "unknown"
	}
}

// PaymentSummary totals what the driver has paid and still owes.
type PaymentSummary struct {
	PaidTotal        int64
	PaidCount        int64
	OutstandingTotal int64
	OutstandingCount int64
	History          []Payment
}

// PatchProfile carries the self-service profile fields a driver may change.
// Empty strings leave the stored value untouched.
type PatchProfile struct {
	ID       int64
	FullName string
	Region   string
	Language string
}
