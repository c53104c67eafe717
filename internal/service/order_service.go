package service

import (
	"context"
	"errors"
	"fmt"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// OrderLine is one cart entry as submitted by the guest. Prices are never
// taken from the client; they are looked up from the menu at order time.
type OrderLine struct {
	ItemID              int64  `json:"item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

type OrderService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewOrderService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, eventBus: eventBus, logger: logger}
}

// PlaceOrder turns a cart into a food order. Lines with zero or negative
// quantity are dropped, the room is resolved from the guest's current
// approved stay and the total is summed from menu prices.
func (s *OrderService) PlaceOrder(ctx context.Context, guestID int64, lines []OrderLine, paymentMethod string) (*models.FoodOrder, error) {
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: payment method %q", ErrValidation, paymentMethod)
	}

	kept := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return nil, database.ErrEmptyOrder
	}

	stay, err := s.repo.GetCurrentApprovedBooking(ctx, guestID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, database.ErrNoActiveStay
	}
	if err != nil {
		return nil, err
	}

	order := &models.FoodOrder{
		GuestID:       guestID,
		RoomID:        stay.RoomID,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: paymentMethod,
	}
	for _, line := range kept {
		item, err := s.repo.GetMenuItem(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if !item.IsAvailable {
			return nil, fmt.Errorf("%w: %s", database.ErrMenuItemUnavailable, item.Name)
		}
		order.Items = append(order.Items, models.OrderItem{
			ItemID:              line.ItemID,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
			UnitPrice:           item.Price,
		})
		order.TotalAmount += float64(line.Quantity) * item.Price
	}

	if err := s.repo.CreateFoodOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventOrderCreated, order)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.FoodOrder, error) {
	return s.repo.GetFoodOrder(ctx, id)
}

func (s *OrderService) ListByGuest(ctx context.Context, guestID int64) ([]*models.FoodOrder, error) {
	return s.repo.ListFoodOrdersByGuest(ctx, guestID)
}

func (s *OrderService) List(ctx context.Context, status string) ([]*models.FoodOrder, error) {
	return s.repo.ListFoodOrders(ctx, status)
}

// Advance applies one status transition under the enumerated table.
func (s *OrderService) Advance(ctx context.Context, id, version int64, to string) (*models.FoodOrder, error) {
	order, err := s.repo.AdvanceFoodOrder(ctx, id, version, to)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventOrderStatusChanged, order)
	return order, nil
}

// CancelOwn lets a guest cancel their own order while it is still pending.
func (s *OrderService) CancelOwn(ctx context.Context, guestID, id, version int64) (*models.FoodOrder, error) {
	order, err := s.repo.GetFoodOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.GuestID != guestID {
		return nil, database.ErrNotFound
	}
	return s.Advance(ctx, id, version, models.OrderCancelled)
}

func (s *OrderService) SetPaymentStatus(ctx context.Context, id int64, paymentStatus string) error {
	return s.repo.SetOrderPaymentStatus(ctx, id, paymentStatus)
}

func (s *OrderService) publishEvent(eventType string, order *models.FoodOrder) {
	if s.eventBus == nil {
		return
	}

	payload := events.OrderEventPayload{
		OrderID:     order.ID,
		GuestID:     order.GuestID,
		RoomID:      order.RoomID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("order_id", order.ID).Msg("publish event error")
	}
}
