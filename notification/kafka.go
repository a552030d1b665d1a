package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"procurement-service/pkg/kafka"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"
)

var errUnknownEvent = errors.New("no topic configured for event")

// Topics maps event types to Kafka topics
type Topics struct {
	InquiryCreated string
	OrderPlaced    string
}

func (t Topics) forEvent(event string) string {
	switch event {
	case EventInquiryCreated:
		return t.InquiryCreated
	case EventOrderPlaced:
		return t.OrderPlaced
	}
	return ""
}

// Envelope is the record value consumed by the mail sender
type Envelope struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Recipients []string  `json:"recipients"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    Payload   `json:"payload"`
}

// KafkaNotifier publishes notifications as Kafka records keyed by event id
type KafkaNotifier struct {
	client   kafka.KafkaClient
	topics   Topics
	logger   logger.LoggerInterface
	recorder metrics.Recorder
	now      func() time.Time
}

// NewKafkaNotifier creates a notifier over an existing Kafka client
func NewKafkaNotifier(client kafka.KafkaClient, topics Topics, log logger.LoggerInterface, recorder metrics.Recorder) *KafkaNotifier {
	return &KafkaNotifier{
		client:   client,
		topics:   topics,
		logger:   log,
		recorder: recorder,
		now:      time.Now,
	}
}

// Send publishes asynchronously. The record outlives the request, so the
// produce context is detached from ctx cancellation.
func (n *KafkaNotifier) Send(ctx context.Context, recipients []string, payload Payload) {
	if len(recipients) == 0 {
		n.logger.WarnContext(ctx, "Notification skipped, no recipients", "event", payload.Event())
		return
	}
	topic := n.topics.forEvent(payload.Event())
	if topic == "" {
		n.fail(ctx, payload.Event(), "", errUnknownEvent)
		return
	}

	envelope := Envelope{
		EventID:    ulid.Make().String(),
		Type:       payload.Event(),
		Recipients: recipients,
		OccurredAt: n.now().UTC(),
		Payload:    payload,
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		n.fail(ctx, envelope.Type, envelope.EventID, err)
		return
	}

	n.client.ProduceAsync(context.WithoutCancel(ctx), topic, []byte(envelope.EventID), value, func(err error) {
		n.fail(ctx, envelope.Type, envelope.EventID, err)
	})
	n.logger.InfoContext(ctx, "Notification queued", "event", envelope.Type, "eventID", envelope.EventID, "recipients", len(recipients))
}

func (n *KafkaNotifier) fail(ctx context.Context, event, eventID string, err error) {
	n.logger.ErrorContext(ctx, "Failed to publish notification", "event", event, "eventID", eventID, "error", err)
	n.recorder.RecordOperation("notification_failed", metrics.OutcomeFailure)
}
