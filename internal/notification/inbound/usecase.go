package inbound

import (
	"context"

	"github.com/drivelaw/backend/internal/notification/usecase"
)

type ucConsumer interface {
	ConsumeOTPRequested(ctx context.Context, in usecase.ConsumeOTPRequestedInput) error
	ConsumeOffenseRecorded(ctx context.Context, in usecase.ConsumeOffenseRecordedInput) error
	ConsumeAppealSubmitted(ctx context.Context, in usecase.ConsumeAppealSubmittedInput) error
	ConsumeAppealDecided(ctx context.Context, in usecase.ConsumeAppealDecidedInput) error
	ConsumePaymentReceived(ctx context.Context, in usecase.ConsumePaymentReceivedInput) error
}

type uc interface {
	ucConsumer

	ListInbox(ctx context.Context, in usecase.ListInboxInput) (*usecase.ListInboxOutput, error)
	MarkInboxRead(ctx context.Context, in usecase.MarkInboxReadInput) error
	MarkAllInboxRead(ctx context.Context) error
}
