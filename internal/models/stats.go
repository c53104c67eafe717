package models

// DashboardStats is the admin analytics snapshot.
type DashboardStats struct {
	RoomsByStatus       map[string]int `json:"rooms_by_status"`
	BookingsByStatus    map[string]int `json:"bookings_by_status"`
	OrdersByStatus      map[string]int `json:"orders_by_status"`
	MaintenanceByPrio   map[string]int `json:"maintenance_by_priority"`
	OpenMaintenance     int            `json:"open_maintenance"`
	TotalGuests         int            `json:"total_guests"`
	ApprovedRevenue     float64        `json:"approved_revenue"`
	DeliveredFoodAmount float64        `json:"delivered_food_amount"`
}
