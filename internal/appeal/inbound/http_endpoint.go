package inbound

import (
	"time"

	"github.com/drivelaw/backend/internal/appeal/usecase"
	"github.com/drivelaw/backend/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the appeal workflow, driver side
// and admin side.
type HTTPEndpoint struct {
	uc uc
}

// Submit files an appeal against one of the caller's offenses.
// @Summary Submit appeal
// @Description Files an appeal against a pending or confirmed offense owned by the caller. An offense can only be appealed once.
// @Tags Appeal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SubmitAppealRequest true "Appeal payload"
// @Success 200 {object} router.successResponse{data=SubmitAppealResponse} "Submitted appeal"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Offense not found"
// @Failure 409 {object} router.errorResponse "Offense not appealable or already appealed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/appeals [post]
func (h *HTTPEndpoint) Submit(r *router.Request) (any, error) {
	var req SubmitAppealRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Submit(r.Context(), usecase.SubmitInput{
		OffenseID: req.OffenseID,
		Reason:    req.Reason,
	})
	if err != nil {
		return nil, err
	}

	return SubmitAppealResponse{
		ID:     resp.ID,
		Number: resp.Number,
		Status: resp.Status.String(),
		DueAt:  resp.DueAt,
	}, nil
}

// ListOwn returns the calling driver's appeals.
// @Summary List own appeals
// @Description Returns the caller's appeals with optional status filter and pagination.
// @Tags Appeal
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status (pending|approved|rejected)"
// @Param page query int false "Pagination page"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} router.successResponse{data=AppealsResponse} "Appeal list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/appeals [get]
func (h *HTTPEndpoint) ListOwn(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListOwn(r.Context(), usecase.ListOwnInput{
		Status: r.GetQuery("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return toAppealsResponse(resp), nil
}

// Queue returns the admin review queue.
// @Summary Appeal review queue
// @Description Returns appeals for admin review, oldest first. Defaults to pending appeals when no status filter is given.
// @Tags Appeal
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status (pending|approved|rejected)"
// @Param page query int false "Pagination page"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} router.successResponse{data=AppealsResponse} "Appeal queue"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/appeals [get]
func (h *HTTPEndpoint) Queue(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Queue(r.Context(), usecase.QueueInput{
		Status: r.GetQuery("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return toAppealsResponse(resp), nil
}

// Detail returns one appeal for admin review.
// @Summary Appeal detail
// @Tags Appeal
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appeal ID"
// @Success 200 {object} router.successResponse{data=AppealDetailResponse} "Appeal detail"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Appeal not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/appeals/{id} [get]
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Detail(r.Context(), usecase.DetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return AppealDetailResponse{Appeal: toAppealResponse(resp.Appeal, time.Now())}, nil
}

// Decide records an admin ruling on a pending appeal.
// @Summary Decide appeal
// @Description Approves or rejects a pending appeal. Approval cancels the offense and restores the driver's deducted points.
// @Tags Appeal
// @Security BearerAuth
// @Accept json
// @Param id path int true "Appeal ID"
// @Param request body DecideAppealRequest true "Decision payload"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Appeal not found"
// @Failure 409 {object} router.errorResponse "Appeal already decided"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/appeals/{id}/decision [post]
func (h *HTTPEndpoint) Decide(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req DecideAppealRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.Decide(r.Context(), usecase.DecideInput{
		ID:       id,
		Decision: req.Decision,
		Reason:   req.Reason,
	})
}

// Statistics returns admin appeal aggregates.
// @Summary Appeal statistics
// @Tags Appeal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=AppealStatisticsResponse} "Appeal statistics"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/appeals/statistics [get]
func (h *HTTPEndpoint) Statistics(r *router.Request) (any, error) {
	resp, err := h.uc.Statistics(r.Context())
	if err != nil {
		return nil, err
	}

	byStatus := make([]AppealStatusCountResponse, 0, len(resp.Statistics.ByStatus))
	for _, sc := range resp.Statistics.ByStatus {
		byStatus = append(byStatus, AppealStatusCountResponse{
			Status: sc.Status.String(),
			Count:  sc.Count,
		})
	}

	return AppealStatisticsResponse{
		Total:        resp.Statistics.Total,
		Pending:      resp.Statistics.Pending,
		ByStatus:     byStatus,
		ApprovalRate: resp.Statistics.ApprovalRate,
	}, nil
}

func toAppealsResponse(resp *usecase.ListOutput) AppealsResponse {
	now := time.Now()
	appeals := make([]AppealResponse, 0, len(resp.Appeals))
	for _, a := range resp.Appeals {
		appeals = append(appeals, toAppealResponse(a, now))
	}

	return AppealsResponse{
		Appeals: appeals,
		total:   resp.Total,
		limit:   resp.Limit,
		page:    resp.Page,
	}
}
