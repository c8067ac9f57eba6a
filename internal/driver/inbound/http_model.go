package inbound

import (
	"time"

	"github.com/drivelaw/backend/internal/driver/entity"
)

type DriverOffenseResponse struct {
	ID          int64     `json:"id,string"`
	Number      string    `json:"number"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	FineAmount  int64     `json:"fine_amount"`
	Points      int16     `json:"points"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDriverOffenseResponse(o entity.Offense) DriverOffenseResponse {
	return DriverOffenseResponse{
		ID:          o.ID,
		Number:      o.Number,
		Type:        o.Type.String(),
		Status:      o.Status.String(),
		FineAmount:  o.FineAmount,
		Points:      o.Points,
		Location:    o.Location,
		Description: o.Description,
		OccurredAt:  o.OccurredAt,
		CreatedAt:   o.CreatedAt,
	}
}

type DriverStatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardResponse struct {
	DrivingScore     int16                       `json:"driving_score"`
	OutstandingTotal int64                       `json:"outstanding_total"`
	OffensesByStatus []DriverStatusCountResponse `json:"offenses_by_status"`
	PendingAppeals   int64                       `json:"pending_appeals"`
	UnreadCount      int64                       `json:"unread_count"`
	RecentOffenses   []DriverOffenseResponse     `json:"recent_offenses"`
}

type DriverOffensesResponse struct {
	Offenses []DriverOffenseResponse `json:"offenses"`
	// meta
	total int64
	limit int32
	page  int32
}

func (r DriverOffensesResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"limit": r.limit,
		"page":  r.page,
	}
}

type DriverOffenseDetailResponse struct {
	Offense DriverOffenseResponse `json:"offense"`
}

type DriverPaymentResponse struct {
	ID            int64     `json:"id,string"`
	Reference     string    `json:"reference"`
	OffenseID     int64     `json:"offense_id,string"`
	OffenseNumber string    `json:"offense_number"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	PaidAt        time.Time `json:"paid_at"`
}

type PaymentSummaryResponse struct {
	PaidTotal        int64                   `json:"paid_total"`
	PaidCount        int64                   `json:"paid_count"`
	OutstandingTotal int64                   `json:"outstanding_total"`
	OutstandingCount int64                   `json:"outstanding_count"`
	History          []DriverPaymentResponse `json:"history"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Region   string `json:"region"`
	Language string `json:"language"`
}
