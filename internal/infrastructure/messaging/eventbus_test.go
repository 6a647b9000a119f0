package messaging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/pkg/logger"
)

func enrolled() shared.Event {
	return shared.NewEnrollmentEvent(shared.EventStudentEnrolled, shared.NewKey(), "CS101", 12345, "Alice", "")
}

func TestPublishOrder(t *testing.T) {
	bus := NewInMemoryEventBus(logger.New(logger.Options{Output: &bytes.Buffer{}}))
	var got []string

	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		got = append(got, "all")
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventStudentEnrolled, func(e shared.Event) error {
		got = append(got, "typed:"+e.Payload()["course_code"].(string))
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventSlotBooked, func(shared.Event) error {
		got = append(got, "slot")
		return nil
	}))

	require.NoError(t, bus.Publish(enrolled()))
	assert.Equal(t, []string{"typed:CS101", "all"}, got)
}

func TestHandlerFailuresAreIsolated(t *testing.T) {
	var out bytes.Buffer
	bus := NewInMemoryEventBus(logger.New(logger.Options{Output: &out}))
	reached := false

	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { return errors.New("printer jammed") }))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { panic("boom") }))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		reached = true
		return nil
	}))

	require.NoError(t, bus.Publish(enrolled()))
	assert.True(t, reached)
	assert.Contains(t, out.String(), "printer jammed")
	assert.Contains(t, out.String(), "handler panic: boom")

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalPublished)
	assert.Equal(t, int64(3), snap.TotalHandlerExecs)
	assert.Equal(t, int64(2), snap.HandlerFailures)
	assert.Equal(t, int64(1), snap.PublishedByType[shared.EventStudentEnrolled])
}

func TestClosedBus(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(enrolled()), ErrEventBusClosed)
	assert.ErrorIs(t, bus.SubscribeAll(func(shared.Event) error { return nil }), ErrEventBusClosed)
	assert.Error(t, NewInMemoryEventBus(nil).Subscribe(shared.EventSlotBooked, nil))
}
