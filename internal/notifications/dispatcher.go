package notifications

import (
	"context"

	"slotwise/pkg/kafka"
	"slotwise/pkg/logger"
)

const (
	EventAppointmentBooked      = "appointment.booked"
	EventAppointmentTransition  = "appointment.transitioned"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentRescheduled = "appointment.rescheduled"
)

// Dispatcher publishes appointment lifecycle events. Publishing is
// best-effort: a broker failure is logged and swallowed, the booking itself
// has already committed.
type Dispatcher struct {
	producer *kafka.Producer
	log      *logger.Logger
	topic    string
	source   string
}

// NewDispatcher accepts a nil producer, in which case events are logged
// only. That keeps local development and tests broker-free.
func NewDispatcher(producer *kafka.Producer, topic, source string, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		producer: producer,
		log:      log,
		topic:    topic,
		source:   source,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, eventType, key string, payload any) {
	if d.producer == nil {
		d.log.Info("Notification event (no broker configured)",
			"event_type", eventType,
			"key", key,
		)
		return
	}

	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(d.source).
		Build()
	msg.Topic = d.topic

	if err := d.producer.Publish(ctx, msg); err != nil {
		d.log.Error("Failed to publish notification event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}

func (d *Dispatcher) Close() error {
	if d.producer == nil {
		return nil
	}
	return d.producer.Close()
}
