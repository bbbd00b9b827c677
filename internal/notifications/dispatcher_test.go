package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"slotwise/pkg/logger"
)

func TestNotifyWithoutProducerLogsOnly(t *testing.T) {
	d := NewDispatcher(nil, "appointments.events", "appointments", logger.NewNop())

	// Must not panic and must not require a broker.
	d.Notify(context.Background(), EventAppointmentBooked, "64f1b2a3c4d5e6f7a8b9c0d1", map[string]string{
		"appointment_id": "64f1b2a3c4d5e6f7a8b9c0d1",
	})

	assert.NoError(t, d.Close())
}

func TestCloseWithoutProducer(t *testing.T) {
	d := NewDispatcher(nil, "appointments.events", "appointments", logger.NewNop())
	assert.NoError(t, d.Close())
}
