package entity

import (
	"strings"
	"time"
)

// AppealStatus is the review state of an appeal.
type AppealStatus int16

const (
	AppealStatusUnknown AppealStatus = 0

	// AppealStatusPending mean the appeal awaits an admin decision.
	AppealStatusPending AppealStatus = 1

	// AppealStatusApproved mean the offense was overturned.
	AppealStatusApproved AppealStatus = 2

	// AppealStatusRejected mean the offense stands.
	AppealStatusRejected AppealStatus = 3
)

func AppealStatusFromString(str string) AppealStatus {
	switch strings.ToLower(str) {
	case "pending":
		return AppealStatusPending
	case "approved":
		return AppealStatusApproved
	case "rejected":
		return AppealStatusRejected
	default:
		return AppealStatusUnknown
	}
}

func (s AppealStatus) String() string {
	switch s {
	case AppealStatusPending:
		return "pending"
	case AppealStatusApproved:
		return "approved"
	case AppealStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Priority ranks how urgently a pending appeal needs review.
type Priority int16

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "low"
	}
}

type Appeal struct {
	ID             int64
	Number         string
	OffenseID      int64
	OffenseNumber  string
	DriverID       int64
	Reason         string
	Status         AppealStatus
	DueAt          time.Time
	DecidedAt      *time.Time
	DecidedBy      int64
	DecisionReason string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PriorityAt derives review priority from how long the appeal has waited.
// Older than seven days is high, older than three days is medium.
func (a Appeal) PriorityAt(now time.Time) Priority {
	age := now.Sub(a.CreatedAt)
	switch {
	case age > 7*24*time.Hour:
		return PriorityHigh
	case age > 3*24*time.Hour:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Decided reports whether the appeal has a final decision.
func (a Appeal) Decided() bool {
	return a.Status == AppealStatusApproved || a.Status == AppealStatusRejected
}

type NewAppeal struct {
	ID        int64
	OffenseID int64
	DriverID  int64
	Reason    string
	DueAt     time.Time
}

// AppealOffense is the slice of an offense record the appeal flow needs.
type AppealOffense struct {
	ID       int64
	Number   string
	DriverID int64
	Status   int16
	Points   int16
}

// Offense status codes as stored in the offenses table.
const (
	OffenseStatusPending   int16 = 1
	OffenseStatusConfirmed int16 = 2
	OffenseStatusCancelled int16 = 4
)

// Appealable mirrors the offense lifecycle: only pending or confirmed
// offenses can be contested.
func (o AppealOffense) Appealable() bool {
	return o.Status == OffenseStatusPending || o.Status == OffenseStatusConfirmed
}

type AppealListFilterData struct {
	IsFilterByDriver bool
	IsFilterByStatus bool
	DriverID         int64
	Statuses         []int16
	Limit            int32
	Offset           int32
}

// Decision records an admin ruling on an appeal.
type Decision struct {
	AppealID  int64
	OffenseID int64
	DriverID  int64
	Points    int16
	DecidedBy int64
	Reason    string
	DecidedAt time.Time
}

// StatusCount is one row of a status breakdown.
type StatusCount struct {
	Status AppealStatus
	Count  int64
}

// Statistics is the admin-facing appeal aggregate view.
type Statistics struct {
	Total        int64
	Pending      int64
	ByStatus     []StatusCount
	ApprovalRate float64
}
