package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goroutine"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/messaging"
	"github.com/drivelaw/backend/internal/pkg/uid"
	"github.com/drivelaw/backend/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHanlder := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name               string
		topic              string // destination where publisher sent message
		nsqConsumerName    string // for nsq
		natsConsumerName   string // for nats
		kafkaConsumerName  string // for kafka
		pubsubConsumerName string // for google pubusb
		handler            messaging.Handler
	}{
		{
			name:               event.OTPRequestedConsumerNotification,
			topic:              event.OTPRequestedDestination,
			nsqConsumerName:    event.OTPRequestedConsumerNotification,
			natsConsumerName:   event.OTPRequestedConsumerNotification,
			kafkaConsumerName:  event.OTPRequestedConsumerNotification,
			pubsubConsumerName: event.OTPRequestedConsumerNotification,
			handler:            mqHanlder.OTPRequestedNotification,
		},
		{
			name:               event.OffenseRecordedConsumerNotification,
			topic:              event.OffenseRecordedDestination,
			nsqConsumerName:    event.OffenseRecordedConsumerNotification,
			natsConsumerName:   event.OffenseRecordedConsumerNotification,
			kafkaConsumerName:  event.OffenseRecordedConsumerNotification,
			pubsubConsumerName: event.OffenseRecordedConsumerNotification,
			handler:            mqHanlder.OffenseRecordedNotification,
		},
		{
			name:               event.AppealSubmittedConsumerNotification,
			topic:              event.AppealSubmittedDestination,
			nsqConsumerName:    event.AppealSubmittedConsumerNotification,
			natsConsumerName:   event.AppealSubmittedConsumerNotification,
			kafkaConsumerName:  event.AppealSubmittedConsumerNotification,
			pubsubConsumerName: event.AppealSubmittedConsumerNotification,
			handler:            mqHanlder.AppealSubmittedNotification,
		},
		{
			name:               event.AppealDecidedConsumerNotification,
			topic:              event.AppealDecidedDestination,
			nsqConsumerName:    event.AppealDecidedConsumerNotification,
			natsConsumerName:   event.AppealDecidedConsumerNotification,
			kafkaConsumerName:  event.AppealDecidedConsumerNotification,
			pubsubConsumerName: event.AppealDecidedConsumerNotification,
			handler:            mqHanlder.AppealDecidedNotification,
		},
		{
			name:               event.PaymentReceivedConsumerNotification,
			topic:              event.PaymentReceivedDestination,
			nsqConsumerName:    event.PaymentReceivedConsumerNotification,
			natsConsumerName:   event.PaymentReceivedConsumerNotification,
			kafkaConsumerName:  event.PaymentReceivedConsumerNotification,
			pubsubConsumerName: event.PaymentReceivedConsumerNotification,
			handler:            mqHanlder.PaymentReceivedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.nsqConsumerName),
					messaging.WithQueueGroup(consumer.natsConsumerName),
					messaging.WithGroup(consumer.kafkaConsumerName),
					messaging.WithSubscription(consumer.pubsubConsumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
