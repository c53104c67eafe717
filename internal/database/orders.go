package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

const orderColumns = `id, guest_id, room_id, total_amount, status, payment_status, payment_method,
	created_at, updated_at, version`

func scanOrder(row interface{ Scan(...any) error }) (*models.FoodOrder, error) {
	var o models.FoodOrder
	err := row.Scan(&o.ID, &o.GuestID, &o.RoomID, &o.TotalAmount, &o.Status,
		&o.PaymentStatus, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt, &o.Version)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateFoodOrder inserts the order and its lines in one transaction. Lines
// keep their position so the guest's ordering survives the round trip.
func (db *DB) CreateFoodOrder(ctx context.Context, order *models.FoodOrder) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	result, err := tx.ExecContext(ctx, `INSERT INTO food_orders
	        (guest_id, room_id, total_amount, status, payment_status, payment_method, created_at, updated_at, version)
	        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.GuestID, order.RoomID, order.TotalAmount, models.OrderPending,
		order.PaymentStatus, order.PaymentMethod, now, now, 1)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	for i, line := range order.Items {
		_, err := tx.ExecContext(ctx, `INSERT INTO food_order_items
		        (order_id, item_id, quantity, special_instructions, unit_price, position)
		        VALUES (?, ?, ?, ?, ?, ?)`,
			id, line.ItemID, line.Quantity, line.SpecialInstructions, line.UnitPrice, i)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
		order.Items[i].Position = i
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.ID = id
	order.Status = models.OrderPending
	order.CreatedAt = now
	order.UpdatedAt = now
	order.Version = 1
	return nil
}

func (db *DB) loadOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := db.QueryContext(ctx, `SELECT item_id, quantity, special_instructions, unit_price, position
	        FROM food_order_items WHERE order_id = ? ORDER BY position ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var line models.OrderItem
		var instructions sql.NullString
		if err := rows.Scan(&line.ItemID, &line.Quantity, &instructions, &line.UnitPrice, &line.Position); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		line.SpecialInstructions = instructions.String
		items = append(items, line)
	}
	return items, rows.Err()
}

func (db *DB) GetFoodOrder(ctx context.Context, id int64) (*models.FoodOrder, error) {
	row := db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM food_orders WHERE id = ?`, id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.Items, err = db.loadOrderItems(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

func (db *DB) listOrders(ctx context.Context, query string, args ...any) ([]*models.FoodOrder, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.FoodOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if order.Items, err = db.loadOrderItems(ctx, order.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (db *DB) ListFoodOrdersByGuest(ctx context.Context, guestID int64) ([]*models.FoodOrder, error) {
	return db.listOrders(ctx,
		`SELECT `+orderColumns+` FROM food_orders WHERE guest_id = ? ORDER BY created_at DESC`, guestID)
}

func (db *DB) ListFoodOrders(ctx context.Context, status string) ([]*models.FoodOrder, error) {
	if status == "" {
		return db.listOrders(ctx,
			`SELECT `+orderColumns+` FROM food_orders ORDER BY created_at DESC`)
	}
	return db.listOrders(ctx,
		`SELECT `+orderColumns+` FROM food_orders WHERE status = ? ORDER BY created_at DESC`, status)
}

// AdvanceFoodOrder applies one status transition under the enumerated table.
func (db *DB) AdvanceFoodOrder(ctx context.Context, id, version int64, to string) (*models.FoodOrder, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM food_orders WHERE id = ?`, id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order in tx: %w", err)
	}

	if !models.CanTransitionOrder(order.Status, to) {
		return nil, ErrInvalidTransition
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE food_orders SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`,
		to, time.Now(), id, version)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrConcurrentModification
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	order.Status = to
	order.Version = version + 1
	if order.Items, err = db.loadOrderItems(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

// SetOrderPaymentStatus records a payment state change.
func (db *DB) SetOrderPaymentStatus(ctx context.Context, id int64, paymentStatus string) error {
	if paymentStatus != models.PaymentPending && paymentStatus != models.PaymentPaid && paymentStatus != models.PaymentRefunded {
		return fmt.Errorf("%w: payment status %q", ErrInvalidTransition, paymentStatus)
	}
	result, err := db.ExecContext(ctx,
		`UPDATE food_orders SET payment_status = ?, updated_at = ? WHERE id = ?`,
		paymentStatus, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set payment status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) CountOrdersByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM food_orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (db *DB) SumDeliveredOrderAmount(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	err := db.QueryRowContext(ctx,
		`SELECT SUM(total_amount) FROM food_orders WHERE status = 'delivered'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum delivered orders: %w", err)
	}
	return total.Float64, nil
}
