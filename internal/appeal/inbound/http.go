package inbound

import (
	"context"

	"github.com/drivelaw/backend/internal/appeal/usecase"
	"github.com/drivelaw/backend/internal/pkg/router"
)

type uc interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitOutput, error)
	ListOwn(ctx context.Context, in usecase.ListOwnInput) (*usecase.ListOutput, error)

	Queue(ctx context.Context, in usecase.QueueInput) (*usecase.ListOutput, error)
	Detail(ctx context.Context, in usecase.DetailInput) (*usecase.DetailOutput, error)
	Decide(ctx context.Context, in usecase.DecideInput) error

	Statistics(ctx context.Context) (*usecase.StatisticsOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Driver side (need authenticated & authorization)
	r.POST("/api/v1/appeals", end.Submit)
	r.GET("/api/v1/appeals", end.ListOwn)

	// Admin review
	r.GET("/api/v1/admin/appeals", end.Queue)
	r.GET("/api/v1/admin/appeals/statistics", end.Statistics)
	r.GET("/api/v1/admin/appeals/:id", end.Detail)
	r.POST("/api/v1/admin/appeals/:id/decision", end.Decide)
}
