package inbound

import (
	"github.com/drivelaw/backend/internal/driver/usecase"
	"github.com/drivelaw/backend/internal/pkg/router"
)

// HTTPEndpoint exposes the driver self-service handlers.
type HTTPEndpoint struct {
	uc uc
}

// Dashboard returns the driver home screen aggregate.
// @Summary Driver dashboard
// @Description Returns driving score, outstanding fines, offense and appeal counts, unread notifications, and recent offenses.
// @Tags Driver
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=DashboardResponse} "Dashboard"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/driver/dashboard [get]
func (h *HTTPEndpoint) Dashboard(r *router.Request) (any, error) {
	resp, err := h.uc.Dashboard(r.Context())
	if err != nil {
		return nil, err
	}

	d := resp.Dashboard

	byStatus := make([]DriverStatusCountResponse, 0, len(d.OffensesByStatus))
	for _, sc := range d.OffensesByStatus {
		byStatus = append(byStatus, DriverStatusCountResponse{
			Status: sc.Status.String(),
			Count:  sc.Count,
		})
	}

	recent := make([]DriverOffenseResponse, 0, len(d.RecentOffenses))
	for _, o := range d.RecentOffenses {
		recent = append(recent, toDriverOffenseResponse(o))
	}

	return DashboardResponse{
		DrivingScore:     d.DrivingScore,
		OutstandingTotal: d.OutstandingTotal,
		OffensesByStatus: byStatus,
		PendingAppeals:   d.PendingAppeals,
		UnreadCount:      d.UnreadCount,
		RecentOffenses:   recent,
	}, nil
}

// Offenses returns the driver's own offense records.
// @Summary Driver offenses
// @Tags Driver
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status (pending|confirmed|paid|cancelled)"
// @Param page query int false "Pagination page"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} router.successResponse{data=DriverOffensesResponse} "Offense list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/driver/offenses [get]
func (h *HTTPEndpoint) Offenses(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Offenses(r.Context(), usecase.OffensesInput{
		Status: r.GetQuery("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	offenses := make([]DriverOffenseResponse, 0, len(resp.Offenses))
	for _, o := range resp.Offenses {
		offenses = append(offenses, toDriverOffenseResponse(o))
	}

	return DriverOffensesResponse{
		Offenses: offenses,
		total:    resp.Total,
		limit:    resp.Limit,
		page:     resp.Page,
	}, nil
}

// OffenseDetail returns one of the driver's own offense records.
// @Summary Driver offense detail
// @Tags Driver
// @Security BearerAuth
// @Produce json
// @Param id path int true "Offense ID"
// @Success 200 {object} router.successResponse{data=DriverOffenseDetailResponse} "Offense detail"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Offense not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/driver/offenses/{id} [get]
func (h *HTTPEndpoint) OffenseDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.OffenseDetail(r.Context(), usecase.OffenseDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return DriverOffenseDetailResponse{Offense: toDriverOffenseResponse(resp.Offense)}, nil
}

// PaymentsSummary returns the driver's settlement totals and history.
// @Summary Driver payment summary
// @Tags Driver
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=PaymentSummaryResponse} "Payment summary"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/driver/payments/summary [get]
func (h *HTTPEndpoint) PaymentsSummary(r *router.Request) (any, error) {
	resp, err := h.uc.PaymentsSummary(r.Context())
	if err != nil {
		return nil, err
	}

	history := make([]DriverPaymentResponse, 0, len(resp.Summary.History))
	for _, p := range resp.Summary.History {
		history = append(history, DriverPaymentResponse{
			ID:            p.ID,
			Reference:     p.Reference,
			OffenseID:     p.OffenseID,
			OffenseNumber: p.OffenseNumber,
			Amount:        p.Amount,
			Method:        p.MethodName(),
			PaidAt:        p.PaidAt,
		})
	}

	return PaymentSummaryResponse{
		PaidTotal:        resp.Summary.PaidTotal,
		PaidCount:        resp.Summary.PaidCount,
		OutstandingTotal: resp.Summary.OutstandingTotal,
		OutstandingCount: resp.Summary.OutstandingCount,
		History:          history,
	}, nil
}

// ProfileUpdate changes the driver's self-service profile fields.
// @Summary Update driver profile
// @Tags Driver
// @Security BearerAuth
// @Accept json
// @Param request body UpdateProfileRequest true "Profile payload"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/driver/profile [put]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req UpdateProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		FullName: req.FullName,
		Region:   req.Region,
		Language: req.Language,
	})
}
