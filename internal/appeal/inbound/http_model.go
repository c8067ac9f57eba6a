package inbound

import (
	"time"

	"github.com/drivelaw/backend/internal/appeal/entity"
)

type SubmitAppealRequest struct {
	OffenseID int64  `json:"offense_id,string"`
	Reason    string `json:"reason"`
}

type SubmitAppealResponse struct {
	ID     int64     `json:"id,string"`
	Number string    `json:"number"`
	Status string    `json:"status"`
	DueAt  time.Time `json:"due_at"`
}

func (SubmitAppealResponse) Message() string {
	return "Appeal submitted."
}

type AppealResponse struct {
	ID             int64      `json:"id,string"`
	Number         string     `json:"number"`
	OffenseID      int64      `json:"offense_id,string"`
	OffenseNumber  string     `json:"offense_number"`
	DriverID       int64      `json:"driver_id,string"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueAt          time.Time  `json:"due_at"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	DecisionReason string     `json:"decision_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toAppealResponse(a entity.Appeal, now time.Time) AppealResponse {
	return AppealResponse{
		ID:             a.ID,
		Number:         a.Number,
		OffenseID:      a.OffenseID,
		OffenseNumber:  a.OffenseNumber,
		DriverID:       a.DriverID,
		Reason:         a.Reason,
		Status:         a.Status.String(),
		Priority:       a.PriorityAt(now).String(),
		DueAt:          a.DueAt,
		DecidedAt:      a.DecidedAt,
		DecisionReason: a.DecisionReason,
		CreatedAt:      a.CreatedAt,
	}
}

type AppealsResponse struct {
	Appeals []AppealResponse `json:"appeals"`
	// meta
	total int64
	limit int32
	page  int32
}

func (r AppealsResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"limit": r.limit,
		"page":  r.page,
	}
}

type AppealDetailResponse struct {
	Appeal AppealResponse `json:"appeal"`
}

type DecideAppealRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

type AppealStatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type AppealStatisticsResponse struct {
	Total        int64                       `json:"total"`
	Pending      int64                       `json:"pending"`
	ByStatus     []AppealStatusCountResponse `json:"by_status"`
	ApprovalRate float64                     `json:"approval_rate"`
}
