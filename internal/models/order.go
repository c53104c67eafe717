package models

import "time"

type FoodOrder struct {
	ID            int64       `json:"id"`
	GuestID       int64       `json:"guest_id"`
	RoomID        int64       `json:"room_id"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	Status        string      `json:"status"` // pending, preparing, delivering, delivered, cancelled
	PaymentStatus string      `json:"payment_status"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Version       int64       `json:"version"`
}

// OrderItem is one line of a food order. Position preserves the order the
// guest added items in.
type OrderItem struct {
	ItemID              int64   `json:"item_id"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
	UnitPrice           float64 `json:"unit_price"`
	Position            int     `json:"position"`
}

// LineTotal is quantity times the price captured at order time.
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
