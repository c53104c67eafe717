package models

// Role is the coarse permission tag attached to a profile. It is a closed
// set: anything else fails validation at the edges.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleGuest
}

// Booking statuses.
const (
	BookingPending  = "pending"
	BookingApproved = "approved"
	BookingRejected = "rejected"
)

// Stored room statuses. "occupied" is never stored: it is derived from the
// approved bookings that cover the current date.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Maintenance request statuses.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

// Maintenance priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Food order statuses.
const (
	OrderPending    = "pending"
	OrderPreparing  = "preparing"
	OrderDelivering = "delivering"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Payment fields on food orders.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	PaymentMethodCash       = "cash"
	PaymentMethodCard       = "card"
	PaymentMethodRoomCharge = "room_charge"
)

const (
	// SessionKeyPrefix namespaces session records in the session store.
	SessionKeyPrefix = "hotelier:session:"

	// DefaultSessionTTL is applied when config leaves session.ttl empty.
	DefaultSessionTTL = 24 * 60 * 60 // seconds

	// DateLayout is the storage format for check-in/check-out dates.
	DateLayout = "2006-01-02"
)

var bookingTransitions = map[string][]string{
	BookingPending:  {BookingApproved, BookingRejected},
	BookingApproved: {},
	BookingRejected: {},
}

var maintenanceTransitions = map[string][]string{
	MaintenancePending:    {MaintenanceInProgress, MaintenanceCancelled},
	MaintenanceInProgress: {MaintenanceCompleted, MaintenanceCancelled},
	MaintenanceCompleted:  {},
	MaintenanceCancelled:  {},
}

var orderTransitions = map[string][]string{
	OrderPending:    {OrderPreparing, OrderCancelled},
	OrderPreparing:  {OrderDelivering, OrderCancelled},
	OrderDelivering: {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionBooking reports whether a booking may move from -> to.
func CanTransitionBooking(from, to string) bool {
	return canTransition(bookingTransitions, from, to)
}

// CanTransitionMaintenance reports whether a maintenance request may move from -> to.
func CanTransitionMaintenance(from, to string) bool {
	return canTransition(maintenanceTransitions, from, to)
}

// CanTransitionOrder reports whether a food order may move from -> to.
func CanTransitionOrder(from, to string) bool {
	return canTransition(orderTransitions, from, to)
}

// ValidPriority reports whether p is one of the enumerated priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidPaymentMethod reports whether m is one of the enumerated methods.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodCard || m == PaymentMethodRoomCharge
}
