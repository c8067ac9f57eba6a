package inbound

import (
	"github.com/drivelaw/backend/internal/payment/usecase"
	"github.com/drivelaw/backend/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for fine settlement.
type HTTPEndpoint struct {
	uc uc
}

// Pay settles the fine on a confirmed offense.
// @Summary Pay offense fine
// @Description Charges the fine amount of one of the caller's confirmed offenses and marks it paid. Supports an Idempotency-Key header.
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Duplicate capture guard"
// @Param request body PayRequest true "Payment payload"
// @Success 200 {object} router.successResponse{data=PayResponse} "Captured payment"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Offense not found"
// @Failure 409 {object} router.errorResponse "Offense not payable or already paid"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/payments [post]
func (h *HTTPEndpoint) Pay(r *router.Request) (any, error) {
	var req PayRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Pay(r.Context(), usecase.PayInput{
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		OffenseID:      req.OffenseID,
		Method:         req.Method,
	})
	if err != nil {
		return nil, err
	}

	return PayResponse{
		ID:        resp.ID,
		Reference: resp.Reference,
		OffenseID: resp.OffenseID,
		Amount:    resp.Amount,
		Method:    resp.Method.String(),
		PaidAt:    resp.PaidAt,
	}, nil
}

// Receipt returns the settlement record for one payment.
// @Summary Payment receipt
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} router.successResponse{data=ReceiptResponse} "Payment receipt"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Payment not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/payments/{id}/receipt [get]
func (h *HTTPEndpoint) Receipt(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Receipt(r.Context(), usecase.ReceiptInput{ID: id})
	if err != nil {
		return nil, err
	}

	p := resp.Payment

	return ReceiptResponse{
		ID:            p.ID,
		Reference:     p.Reference,
		OffenseID:     p.OffenseID,
		OffenseNumber: p.OffenseNumber,
		DriverID:      p.DriverID,
		Amount:        p.Amount,
		Method:        p.Method.String(),
		PaidAt:        p.PaidAt,
	}, nil
}

// Statistics returns admin collection aggregates.
// @Summary Payment statistics
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=PaymentStatisticsResponse} "Payment statistics"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/payments/statistics [get]
func (h *HTTPEndpoint) Statistics(r *router.Request) (any, error) {
	resp, err := h.uc.Statistics(r.Context())
	if err != nil {
		return nil, err
	}

	byMethod := make([]MethodTotalResponse, 0, len(resp.Statistics.ByMethod))
	for _, mt := range resp.Statistics.ByMethod {
		byMethod = append(byMethod, MethodTotalResponse{
			Method: mt.Method.String(),
			Count:  mt.Count,
			Amount: mt.Amount,
		})
	}

	monthly := make([]MonthlyTotalResponse, 0, len(resp.Statistics.Monthly))
	for _, mt := range resp.Statistics.Monthly {
		monthly = append(monthly, MonthlyTotalResponse{
			Month:  mt.Month,
			Count:  mt.Count,
			Amount: mt.Amount,
		})
	}

	return PaymentStatisticsResponse{
		TotalCount:  resp.Statistics.TotalCount,
		TotalAmount: resp.Statistics.TotalAmount,
		ByMethod:    byMethod,
		Monthly:     monthly,
	}, nil
}
