package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventBookingCreated     = "booking_created"
	EventBookingApproved    = "booking_approved"
	EventBookingRejected    = "booking_rejected"
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventMaintenanceOpened  = "maintenance_opened"
	EventMaintenanceUpdated = "maintenance_updated"
)

// BookingEventPayload describes the minimal booking snapshot for event consumers.
type BookingEventPayload struct {
	BookingID  int64  `json:"booking_id"`
	RoomID     int64  `json:"room_id"`
	RoomNumber string `json:"room_number,omitempty"`
	GuestID    int64  `json:"guest_id"`
	Status     string `json:"status"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	ChangedBy  int64  `json:"changed_by,omitempty"`
}

// OrderEventPayload is published on food order creation and status changes.
type OrderEventPayload struct {
	OrderID     int64   `json:"order_id"`
	GuestID     int64   `json:"guest_id"`
	RoomID      int64   `json:"room_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

// MaintenanceEventPayload is published when a request is opened or advanced.
type MaintenanceEventPayload struct {
	RequestID int64  `json:"request_id"`
	RoomID    int64  `json:"room_id"`
	GuestID   int64  `json:"guest_id"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
	Processed bool
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
