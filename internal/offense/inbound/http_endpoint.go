package inbound

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/drivelaw/backend/internal/offense/usecase"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for offense recording, evidence, and
// statistics workflows.
type HTTPEndpoint struct {
	uc uc
}

// Create records a new offense.
// @Summary Record offense
// @Description Records an offense against the driver holding the given license number. Fine amount and points come from the penalty schedule. Supports an Idempotency-Key header.
// @Tags Offense
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Duplicate submission guard"
// @Param request body CreateOffenseRequest true "Offense payload"
// @Success 200 {object} router.successResponse{data=CreateOffenseResponse} "Recorded offense"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Driver not found"
// @Failure 409 {object} router.errorResponse "Duplicate submission"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/offenses [post]
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateOffenseRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Create(r.Context(), usecase.CreateInput{
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		LicenseNumber:  req.LicenseNumber,
		Type:           req.Type,
		Location:       req.Location,
		Description:    req.Description,
		OccurredAt:     req.OccurredAt,
	})
	if err != nil {
		return nil, err
	}

	return CreateOffenseResponse{
		ID:         resp.ID,
		Number:     resp.Number,
		DriverID:   resp.DriverID,
		FineAmount: resp.FineAmount,
		Points:     resp.Points,
		Status:     resp.Status.String(),
	}, nil
}

// UpdateStatus confirms or cancels a pending offense.
// @Summary Update offense status
// @Description Moves a pending offense to confirmed or cancelled. Confirmation deducts driving score points.
// @Tags Offense
// @Security BearerAuth
// @Accept json
// @Param id path int true "Offense ID"
// @Param request body UpdateOffenseStatusRequest true "Status payload"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Offense not found"
// @Failure 409 {object} router.errorResponse "Offense is not pending"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/offenses/{id}/status [put]
func (h *HTTPEndpoint) UpdateStatus(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateOffenseStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.UpdateStatus(r.Context(), usecase.UpdateStatusInput{
		ID:     id,
		Status: req.Status,
	})
}

// List returns offenses with optional filters.
// @Summary List offenses
// @Description Returns a paginated offense list. mine=true restricts to the calling officer's records.
// @Tags Offense
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status (pending|confirmed|paid|cancelled)"
// @Param type query string false "Filter by offense type"
// @Param driver_id query int false "Filter by driver"
// @Param mine query bool false "Only the calling officer's records"
// @Param page query int false "Pagination page"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} router.successResponse{data=OffensesResponse} "Offense list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/offenses [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	var driverID int64
	if raw := r.GetQuery("driver_id"); raw != "" {
		id, err := r.GetQueryInt32("driver_id")
		if err != nil {
			return nil, err
		}
		driverID = int64(id)
	}

	resp, err := h.uc.List(r.Context(), usecase.ListInput{
		Status:   r.GetQuery("status"),
		Type:     r.GetQuery("type"),
		DriverID: driverID,
		Mine:     r.GetQuery("mine") == "true",
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	offenses := make([]OffenseResponse, 0, len(resp.Offenses))
	for _, item := range resp.Offenses {
		offenses = append(offenses, toOffenseResponse(item))
	}

	return OffensesResponse{
		Offenses: offenses,
		total:    resp.Total,
		limit:    resp.Limit,
		page:     resp.Page,
	}, nil
}

// @Summary Get offense detail
// @Tags Offense
// @Security BearerAuth
// @Produce json
// @Param id path int true "Offense ID"
// @Success 200 {object} router.successResponse{data=OffenseDetailResponse} "Offense detail"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Offense not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/offenses/{id} [get]
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Detail(r.Context(), usecase.DetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return OffenseDetailResponse{Offense: toOffenseResponse(resp.Offense)}, nil
}

// OfficerDashboard summarizes the calling officer's activity.
// @Summary Officer dashboard
// @Tags Offense
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=OfficerDashboardResponse} "Dashboard"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/officer/dashboard [get]
func (h *HTTPEndpoint) OfficerDashboard(r *router.Request) (any, error) {
	resp, err := h.uc.OfficerDashboard(r.Context())
	if err != nil {
		return nil, err
	}

	return OfficerDashboardResponse{
		TodayCount:     resp.Dashboard.TodayCount,
		TodayFineTotal: resp.Dashboard.TodayFineTotal,
		TotalCount:     resp.Dashboard.TotalCount,
		PendingCount:   resp.Dashboard.PendingCount,
		ConfirmedCount: resp.Dashboard.ConfirmedCount,
	}, nil
}

// EvidenceUpload attaches an evidence object to an offense.
// @Summary Upload evidence
// @Description Stores a multipart evidence file for the offense and returns its object key.
// @Tags Offense
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Offense ID"
// @Param evidence formData file true "Evidence file"
// @Success 200 {object} router.successResponse{data=EvidenceUploadResponse} "Stored evidence key"
// @Failure 400 {object} router.errorResponse "Invalid upload"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Offense not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/offenses/{id}/evidence [post]
func (h *HTTPEndpoint) EvidenceUpload(r *router.Request) (any, error) {
	ctx := r.Context()

	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	file, err := r.StreamSingleFile("evidence")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, goerror.NewInvalidFormat()
	}

	resp, err := h.uc.EvidenceUpload(ctx, usecase.EvidenceUploadInput{
		OffenseID:   id,
		FileName:    r.GetQuery("filename"),
		File:        io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType: http.DetectContentType(head[:n]),
	})
	if err != nil {
		return nil, err
	}

	return EvidenceUploadResponse{Key: resp.Key}, nil
}

// EvidenceURL returns a presigned download URL for an evidence object.
// @Summary Get evidence URL
// @Tags Offense
// @Security BearerAuth
// @Produce json
// @Param id path int true "Offense ID"
// @Param key query string true "Evidence object key"
// @Success 200 {object} router.successResponse{data=EvidenceURLResponse} "Presigned URL"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Evidence not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/offenses/{id}/evidence-url [get]
func (h *HTTPEndpoint) EvidenceURL(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.EvidenceURL(r.Context(), usecase.EvidenceURLInput{
		OffenseID: id,
		Key:       r.GetQuery("key"),
	})
	if err != nil {
		return nil, err
	}

	return EvidenceURLResponse{URL: resp.URL}, nil
}

// Statistics returns admin offense aggregates.
// @Summary Offense statistics
// @Tags Offense, Management
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=StatisticsResponse} "Aggregates"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/offenses/statistics [get]
func (h *HTTPEndpoint) Statistics(r *router.Request) (any, error) {
	resp, err := h.uc.Statistics(r.Context())
	if err != nil {
		return nil, err
	}

	byStatus := make([]StatusCountResponse, 0, len(resp.Statistics.ByStatus))
	for _, item := range resp.Statistics.ByStatus {
		byStatus = append(byStatus, StatusCountResponse{
			Status: item.Status.String(),
			Count:  item.Count,
		})
	}

	byType := make([]TypeCountResponse, 0, len(resp.Statistics.ByType))
	for _, item := range resp.Statistics.ByType {
		byType = append(byType, TypeCountResponse{
			Type:  item.Type.String(),
			Count: item.Count,
		})
	}

	monthly := make([]MonthlyTotalResponse, 0, len(resp.Statistics.Monthly))
	for _, item := range resp.Statistics.Monthly {
		monthly = append(monthly, MonthlyTotalResponse{
			Month:     item.Month.Format("2006-01"),
			Count:     item.Count,
			FineTotal: item.FineTotal,
		})
	}

	return StatisticsResponse{
		Total:     resp.Statistics.Total,
		FineTotal: resp.Statistics.FineTotal,
		ByStatus:  byStatus,
		ByType:    byType,
		Monthly:   monthly,
	}, nil
}
