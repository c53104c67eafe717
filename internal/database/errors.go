package database

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRoomUnavailable is returned when the requested dates collide with
	// an existing pending or approved booking for the room.
	ErrRoomUnavailable = errors.New("room is not available for the requested dates")

	// ErrActiveBookingExists is returned when a guest tries to book while
	// already holding a pending or approved booking that has not lapsed.
	ErrActiveBookingExists = errors.New("guest already has an active booking")

	// ErrRoomUnderMaintenance is returned when booking or approving against
	// a room whose stored status is maintenance.
	ErrRoomUnderMaintenance = errors.New("room is under maintenance")

	// ErrInvalidTransition is returned for any status change outside the
	// enumerated transition tables.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrConcurrentModification is returned when a version-guarded update
	// matched no rows.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrDuplicateEmail is returned when signing up with a taken email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrPastDate is returned for bookings starting in the past.
	ErrPastDate = errors.New("check-in date is in the past")

	// ErrDateOrder is returned when check-out does not follow check-in.
	ErrDateOrder = errors.New("check-out must be after check-in")

	// ErrDateTooFar is returned when check-in is beyond the booking horizon.
	ErrDateTooFar = errors.New("check-in date is too far in the future")

	// ErrCapacityExceeded is returned when the party does not fit the room.
	ErrCapacityExceeded = errors.New("party exceeds room capacity")

	// ErrEmptyOrder is returned when an order has no lines after dropping
	// zero-quantity entries.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrNoActiveStay is returned when a guest places a room-service order
	// without an approved booking covering the current date.
	ErrNoActiveStay = errors.New("no active stay for guest")

	// ErrMenuItemUnavailable is returned when an order references a menu
	// item flagged unavailable.
	ErrMenuItemUnavailable = errors.New("menu item is not available")
)
