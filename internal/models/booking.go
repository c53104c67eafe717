package models

import "time"

type Booking struct {
	ID             int64     `json:"id"`
	RoomID         int64     `json:"room_id"`
	GuestID        int64     `json:"guest_id"`
	CheckIn        time.Time `json:"check_in"`
	CheckOut       time.Time `json:"check_out"`
	NumberOfGuests int       `json:"number_of_guests"`
	Status         string    `json:"status"` // pending, approved, rejected
	TotalPrice     float64   `json:"total_price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int64     `json:"version"`
}

// Nights is the billable night count; check-out day is departure.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Covers reports whether the booking's date range includes the given day.
// Both endpoints are inclusive: the room counts as held through check-out day.
func (b *Booking) Covers(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return !d.Before(b.CheckIn) && !d.After(b.CheckOut)
}

// Active means the booking still holds or may hold the room: pending or
// approved with a check-out not yet in the past.
func (b *Booking) Active(today time.Time) bool {
	if b.Status != BookingPending && b.Status != BookingApproved {
		return false
	}
	return !b.CheckOut.Before(today.Truncate(24 * time.Hour))
}
