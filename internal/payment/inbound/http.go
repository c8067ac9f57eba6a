package inbound

import (
	"context"

	"github.com/drivelaw/backend/internal/payment/usecase"
	"github.com/drivelaw/backend/internal/pkg/router"
)

type uc interface {
	Pay(ctx context.Context, in usecase.PayInput) (*usecase.PayOutput, error)
	Receipt(ctx context.Context, in usecase.ReceiptInput) (*usecase.ReceiptOutput, error)
	Statistics(ctx context.Context) (*usecase.StatisticsOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Fine settlement (need authenticated & authorization)
	r.POST("/api/v1/payments", end.Pay)
	r.GET("/api/v1/payments/:id/receipt", end.Receipt)

	// Management
	r.GET("/api/v1/admin/payments/statistics", end.Statistics)
}
