package inbound

import (
	"context"

	"github.com/drivelaw/backend/internal/offense/usecase"
	"github.com/drivelaw/backend/internal/pkg/router"
)

type uc interface {
	Create(ctx context.Context, in usecase.CreateInput) (*usecase.CreateOutput, error)
	UpdateStatus(ctx context.Context, in usecase.UpdateStatusInput) error
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
	Detail(ctx context.Context, in usecase.DetailInput) (*usecase.DetailOutput, error)
	OfficerDashboard(ctx context.Context) (*usecase.OfficerDashboardOutput, error)

	EvidenceUpload(ctx context.Context, in usecase.EvidenceUploadInput) (*usecase.EvidenceUploadOutput, error)
	EvidenceURL(ctx context.Context, in usecase.EvidenceURLInput) (*usecase.EvidenceURLOutput, error)

	Statistics(ctx context.Context) (*usecase.StatisticsOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Offense Recording (need authenticated & authorization)
	r.POST("/api/v1/offenses", end.Create)
	r.GET("/api/v1/offenses", end.List)
	r.GET("/api/v1/offenses/:id", end.Detail)
	r.PUT("/api/v1/offenses/:id/status", end.UpdateStatus)
	r.GET("/api/v1/officer/dashboard", end.OfficerDashboard)

	// Evidence
	r.POST("/api/v1/offenses/:id/evidence", end.EvidenceUpload)
	r.GET("/api/v1/offenses/:id/evidence-url", end.EvidenceURL)

	// Management
	r.GET("/api/v1/admin/offenses/statistics", end.Statistics)
}
