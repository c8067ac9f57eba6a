package inbound

import (
	"github.com/drivelaw/backend/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Inbox (need authenticated)
	r.GET("/api/v1/notifications", end.List)
	r.POST("/api/v1/notifications/read-all", end.MarkAllRead)
	r.POST("/api/v1/notifications/:id/read", end.MarkRead)
}
