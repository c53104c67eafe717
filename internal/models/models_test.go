package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	assert.True(t, CanTransitionBooking(BookingPending, BookingApproved))
	assert.True(t, CanTransitionBooking(BookingPending, BookingRejected))

	// Approved and rejected are terminal.
	assert.False(t, CanTransitionBooking(BookingApproved, BookingRejected))
	assert.False(t, CanTransitionBooking(BookingApproved, BookingPending))
	assert.False(t, CanTransitionBooking(BookingRejected, BookingApproved))
	assert.False(t, CanTransitionBooking(BookingPending, BookingPending))
	assert.False(t, CanTransitionBooking("bogus", BookingApproved))
}

func TestMaintenanceTransitions(t *testing.T) {
	assert.True(t, CanTransitionMaintenance(MaintenancePending, MaintenanceInProgress))
	assert.True(t, CanTransitionMaintenance(MaintenancePending, MaintenanceCancelled))
	assert.True(t, CanTransitionMaintenance(MaintenanceInProgress, MaintenanceCompleted))
	assert.True(t, CanTransitionMaintenance(MaintenanceInProgress, MaintenanceCancelled))

	assert.False(t, CanTransitionMaintenance(MaintenancePending, MaintenanceCompleted))
	assert.False(t, CanTransitionMaintenance(MaintenanceCompleted, MaintenancePending))
	assert.False(t, CanTransitionMaintenance(MaintenanceCancelled, MaintenanceInProgress))
}

func TestOrderTransitions(t *testing.T) {
	assert.True(t, CanTransitionOrder(OrderPending, OrderPreparing))
	assert.True(t, CanTransitionOrder(OrderPreparing, OrderDelivering))
	assert.True(t, CanTransitionOrder(OrderDelivering, OrderDelivered))
	assert.True(t, CanTransitionOrder(OrderPreparing, OrderCancelled))

	assert.False(t, CanTransitionOrder(OrderPending, OrderDelivered))
	assert.False(t, CanTransitionOrder(OrderDelivering, OrderCancelled))
	assert.False(t, CanTransitionOrder(OrderDelivered, OrderPending))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleGuest.Valid())
	assert.False(t, Role("manager").Valid())
	assert.False(t, Role("").Valid())
}

func TestBookingCovers(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return d
	}

	b := &Booking{CheckIn: day("2026-09-01"), CheckOut: day("2026-09-05")}

	// Both endpoints inclusive.
	assert.True(t, b.Covers(day("2026-09-01")))
	assert.True(t, b.Covers(day("2026-09-03")))
	assert.True(t, b.Covers(day("2026-09-05")))

	assert.False(t, b.Covers(day("2026-08-31")))
	assert.False(t, b.Covers(day("2026-09-06")))

	assert.Equal(t, 4, b.Nights())
}

func TestBookingActive(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse(DateLayout, s)
		return d
	}
	today := day("2026-09-03")

	active := &Booking{Status: BookingPending, CheckIn: day("2026-09-01"), CheckOut: day("2026-09-03")}
	assert.True(t, active.Active(today))

	lapsed := &Booking{Status: BookingApproved, CheckIn: day("2026-08-20"), CheckOut: day("2026-09-02")}
	assert.False(t, lapsed.Active(today))

	rejected := &Booking{Status: BookingRejected, CheckIn: day("2026-09-01"), CheckOut: day("2026-09-10")}
	assert.False(t, rejected.Active(today))
}

func TestOrderItemLineTotal(t *testing.T) {
	line := OrderItem{Quantity: 3, UnitPrice: 12.5}
	assert.InDelta(t, 37.5, line.LineTotal(), 0.001)
}
