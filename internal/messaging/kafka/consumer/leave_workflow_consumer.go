package consumer

import (
	"context"
	"encoding/json"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier delivers workflow notifications to requesters and approvers.
type Notifier interface {
	NotifySubmitted(ctx context.Context, event events.LeaveRequestSubmittedEvent) error
	NotifyDecided(ctx context.Context, event events.ApprovalDecidedEvent) error
}

func ConsumeLeaveWorkflow(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_workflow")
	log.Info("leave workflow consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave workflow consumer stopped")
				return
			}
			log.Error("fetch leave workflow message failed", zap.Error(err))
			continue
		}

		if err := dispatch(ctx, msg, notifier); err != nil {
			log.Error("handle leave workflow event failed",
				zap.String("event_type", headerValue(msg, "event_type")),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave workflow message failed", zap.Error(err))
		}
	}
}

func dispatch(ctx context.Context, msg kafkago.Message, notifier Notifier) error {
	switch headerValue(msg, "event_type") {
	case "leave_request_submitted":
		var event events.LeaveRequestSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		return notifier.NotifySubmitted(ctx, event)
	default:
		var event events.ApprovalDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		return notifier.NotifyDecided(ctx, event)
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// ZapNotifier writes notification intents to the log. A mail or chat
// integration can replace it behind the same interface.
type ZapNotifier struct {
	logger *zap.Logger
}

func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger.Named("notifier")}
}

func (n *ZapNotifier) NotifySubmitted(_ context.Context, event events.LeaveRequestSubmittedEvent) error {
	n.logger.Info("leave request submitted, notify first approver",
		zap.String("leave_request_id", event.LeaveRequestID),
		zap.String("requester_id", event.RequesterID),
		zap.String("approver_id", event.FirstApprover),
	)
	return nil
}

func (n *ZapNotifier) NotifyDecided(_ context.Context, event events.ApprovalDecidedEvent) error {
	n.logger.Info("approval decided, notify requester",
		zap.String("leave_request_id", event.LeaveRequestID),
		zap.String("step_id", event.StepID),
		zap.String("decision", event.Decision),
		zap.String("leave_request_status", event.RequestStatus),
		zap.String("next_approver_id", event.NextApproverID),
	)
	return nil
}
