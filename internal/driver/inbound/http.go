package inbound

import (
	"context"

	"github.com/drivelaw/backend/internal/driver/usecase"
	"github.com/drivelaw/backend/internal/pkg/router"
)

type uc interface {
	Dashboard(ctx context.Context) (*usecase.DashboardOutput, error)
	Offenses(ctx context.Context, in usecase.OffensesInput) (*usecase.OffensesOutput, error)
	OffenseDetail(ctx context.Context, in usecase.OffenseDetailInput) (*usecase.OffenseDetailOutput, error)
	PaymentsSummary(ctx context.Context) (*usecase.PaymentSummaryOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Driver self-service (need authenticated & authorization)
	r.GET("/api/v1/driver/dashboard", end.Dashboard)
	r.GET("/api/v1/driver/offenses", end.Offenses)
	r.GET("/api/v1/driver/offenses/:id", end.OffenseDetail)
	r.GET("/api/v1/driver/payments/summary", end.PaymentsSummary)
	r.PUT("/api/v1/driver/profile", end.ProfileUpdate)
}
