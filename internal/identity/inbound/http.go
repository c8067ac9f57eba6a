package inbound

import (
	"context"

	"github.com/drivelaw/backend/internal/identity/usecase"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/router"
)

type uc interface {
	SendOTP(ctx context.Context, in usecase.SendOTPInput) (*usecase.SendOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	Me(ctx context.Context) (*usecase.MeOutput, error)
	Logout(ctx context.Context) error
	Onboarding(ctx context.Context, in usecase.OnboardingInput) (*usecase.OnboardingOutput, error)

	DriverList(ctx context.Context, in usecase.DriverListInput) (*usecase.DriverListOutput, error)
	DriverDetail(ctx context.Context, in usecase.DriverDetailInput) (*usecase.DriverDetailOutput, error)
	DriverUpdate(ctx context.Context, in usecase.DriverUpdateInput) error
	DriverDelete(ctx context.Context, in usecase.DriverDeleteInput) error
	LicenseAction(ctx context.Context, in usecase.LicenseActionInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cfg config.Config) {
	end := &HTTPEndpoint{uc: uc, cookies: newCookieSettings(cfg)}

	// Authentication & Session
	r.POST("/api/v1/auth/send-otp", end.SendOTP)
	r.POST("/api/v1/auth/verify-otp", end.VerifyOTP)
	r.GET("/api/v1/auth/me", end.Me)           // need authenticated
	r.POST("/api/v1/auth/logout", end.Logout)
	r.POST("/api/v1/auth/onboarding", end.Onboarding) // need authenticated

	// Driver Directory (need authenticated & authorization)
	r.GET("/api/v1/admin/drivers", end.DriverList)
	r.GET("/api/v1/admin/drivers/:id", end.DriverDetail)
	r.PUT("/api/v1/admin/drivers/:id", end.DriverUpdate)
	r.DELETE("/api/v1/admin/drivers/:id", end.DriverDelete)
	r.POST("/api/v1/admin/drivers/:id/license", end.LicenseAction)
}
