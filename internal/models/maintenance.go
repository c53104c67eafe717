package models

import "time"

type MaintenanceRequest struct {
	ID          int64     `json:"id"`
	RoomID      int64     `json:"room_id"`
	GuestID     int64     `json:"guest_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"` // low, medium, high
	Status      string    `json:"status"`   // pending, in_progress, completed, cancelled
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int64     `json:"version"`
}
