package inbound

import (
	"time"

	"github.com/drivelaw/backend/internal/offense/entity"
)

type CreateOffenseRequest struct {
	LicenseNumber string    `json:"license_number"`
	Type          string    `json:"type"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type CreateOffenseResponse struct {
	ID         int64  `json:"id,string"`
	Number     string `json:"number"`
	DriverID   int64  `json:"driver_id,string"`
	FineAmount int64  `json:"fine_amount"`
	Points     int16  `json:"points"`
	Status     string `json:"status"`
}

func (CreateOffenseResponse) Message() string {
	return "Offense recorded."
}

type UpdateOffenseStatusRequest struct {
	Status string `json:"status"`
}

type OffenseResponse struct {
	ID           int64     `json:"id,string"`
	Number       string    `json:"number"`
	DriverID     int64     `json:"driver_id,string"`
	OfficerID    int64     `json:"officer_id,string"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	FineAmount   int64     `json:"fine_amount"`
	Points       int16     `json:"points"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	EvidenceKeys []string  `json:"evidence_keys"`
	OccurredAt   time.Time `json:"occurred_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func toOffenseResponse(o entity.Offense) OffenseResponse {
	keys := o.EvidenceKeys
	if keys == nil {
		keys = []string{}
	}

	return OffenseResponse{
		ID:           o.ID,
		Number:       o.Number,
		DriverID:     o.DriverID,
		OfficerID:    o.OfficerID,
		Type:         o.Type.String(),
		Status:       o.Status.String(),
		FineAmount:   o.FineAmount,
		Points:       o.Points,
		Location:     o.Location,
		Description:  o.Description,
		EvidenceKeys: keys,
		OccurredAt:   o.OccurredAt,
		CreatedAt:    o.CreatedAt,
	}
}

type OffensesResponse struct {
	Offenses []OffenseResponse `json:"offenses"`
	// meta
	total int64
	limit int32
	page  int32
}

func (r OffensesResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"limit": r.limit,
		"page":  r.page,
	}
}

type OffenseDetailResponse struct {
	Offense OffenseResponse `json:"offense"`
}

type OfficerDashboardResponse struct {
	TodayCount     int64 `json:"today_count"`
	TodayFineTotal int64 `json:"today_fine_total"`
	TotalCount     int64 `json:"total_count"`
	PendingCount   int64 `json:"pending_count"`
	ConfirmedCount int64 `json:"confirmed_count"`
}

type EvidenceUploadResponse struct {
	Key string `json:"key"`
}

func (EvidenceUploadResponse) Message() string {
	return "Evidence uploaded."
}

type EvidenceURLResponse struct {
	URL string `json:"url"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type TypeCountResponse struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type MonthlyTotalResponse struct {
	Month     string `json:"month"`
	Count     int64  `json:"count"`
	FineTotal int64  `json:"fine_total"`
}

type StatisticsResponse struct {
	Total     int64                  `json:"total"`
	FineTotal int64                  `json:"fine_total"`
	ByStatus  []StatusCountResponse  `json:"by_status"`
	ByType    []TypeCountResponse    `json:"by_type"`
	Monthly   []MonthlyTotalResponse `json:"monthly"`
}
