package models

import "time"

// Room describes a bookable room. Status is the effective status: the stored
// column only ever holds "available" or "maintenance", and reads substitute
// "occupied" while an approved booking covers the current date.
type Room struct {
	ID            int64     `json:"id"`
	Number        string    `json:"number"`
	Type          string    `json:"type"`
	PricePerNight float64   `json:"price_per_night"`
	Capacity      int       `json:"capacity"`
	Status        string    `json:"status"`
	Floor         int       `json:"floor"`
	Amenities     []string  `json:"amenities"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
