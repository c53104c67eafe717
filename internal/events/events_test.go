package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishJSON(t *testing.T) {
	bus := NewEventBus()

	var received []*Event
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		received = append(received, event)
		return nil
	})
	bus.Subscribe(EventBookingApproved, func(event *Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	payload := BookingEventPayload{BookingID: 1, RoomID: 2, GuestID: 3, Status: "pending"}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	require.Len(t, received, 1)
	assert.Equal(t, EventBookingCreated, received[0].Type)
	assert.False(t, received[0].CreatedAt.IsZero())

	var got BookingEventPayload
	require.NoError(t, json.Unmarshal(received[0].Payload, &got))
	assert.Equal(t, payload, got)
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	handler := func(*Event) error { calls++; return nil }
	bus.Subscribe(EventOrderCreated, handler)
	bus.Subscribe(EventOrderCreated, handler)

	require.NoError(t, bus.PublishJSON(EventOrderCreated, OrderEventPayload{OrderID: 1}))
	assert.Equal(t, 2, calls)
}

func TestEventBusHandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewEventBus()

	delivered := false
	bus.Subscribe(EventMaintenanceOpened, func(*Event) error { return errors.New("boom") })
	bus.Subscribe(EventMaintenanceOpened, func(*Event) error { delivered = true; return nil })

	require.NoError(t, bus.PublishJSON(EventMaintenanceOpened, MaintenanceEventPayload{RequestID: 1}))
	assert.True(t, delivered)
}

func TestEventBusUnmarshalablePayload(t *testing.T) {
	bus := NewEventBus()
	assert.Error(t, bus.PublishJSON(EventOrderCreated, make(chan int)))
}

func TestNilBusPublishIsNoOp(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventOrderCreated, OrderEventPayload{}))
}
