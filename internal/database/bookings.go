package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// BookRoomParams mirrors the book_room procedure's parameter list.
type BookRoomParams struct {
	RoomID         int64
	GuestID        int64
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	TotalPrice     float64
}

const bookingColumns = `id, room_id, guest_id, check_in, check_out, number_of_guests,
	status, total_price, created_at, updated_at, version`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var checkIn, checkOut string
	err := row.Scan(&b.ID, &b.RoomID, &b.GuestID, &checkIn, &checkOut, &b.NumberOfGuests,
		&b.Status, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt, &b.Version)
	if err != nil {
		return nil, err
	}
	if b.CheckIn, err = time.Parse(models.DateLayout, checkIn); err != nil {
		return nil, fmt.Errorf("failed to parse check_in %q: %w", checkIn, err)
	}
	if b.CheckOut, err = time.Parse(models.DateLayout, checkOut); err != nil {
		return nil, fmt.Errorf("failed to parse check_out %q: %w", checkOut, err)
	}
	return &b, nil
}

// BookRoom is the atomic booking procedure. Availability is re-validated and
// the booking inserted inside a single transaction, so two overlapping
// requests for the same room can never both succeed, and a guest cannot
// slip in a second active booking by submitting twice.
func (db *DB) BookRoom(ctx context.Context, p BookRoomParams) (*models.Booking, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var roomStatus string
	err = tx.QueryRowContext(ctx, `SELECT status FROM rooms WHERE id = ?`, p.RoomID).Scan(&roomStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room in tx: %w", err)
	}
	if roomStatus == models.RoomMaintenance {
		return nil, ErrRoomUnderMaintenance
	}

	checkIn := p.CheckIn.Format(models.DateLayout)
	checkOut := p.CheckOut.Format(models.DateLayout)

	var colliding int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings
	        WHERE room_id = ? AND status IN ('pending', 'approved')
	          AND check_in <= ? AND check_out >= ?`,
		p.RoomID, checkOut, checkIn).Scan(&colliding)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability in tx: %w", err)
	}
	if colliding > 0 {
		return nil, ErrRoomUnavailable
	}

	var active int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings
	        WHERE guest_id = ? AND status IN ('pending', 'approved') AND check_out >= ?`,
		p.GuestID, today()).Scan(&active)
	if err != nil {
		return nil, fmt.Errorf("failed to check active bookings in tx: %w", err)
	}
	if active > 0 {
		return nil, ErrActiveBookingExists
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx, `INSERT INTO bookings
	        (room_id, guest_id, check_in, check_out, number_of_guests, status, total_price, created_at, updated_at, version)
	        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.RoomID, p.GuestID, checkIn, checkOut, p.NumberOfGuests,
		models.BookingPending, p.TotalPrice, now, now, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return &models.Booking{
		ID:             id,
		RoomID:         p.RoomID,
		GuestID:        p.GuestID,
		CheckIn:        p.CheckIn,
		CheckOut:       p.CheckOut,
		NumberOfGuests: p.NumberOfGuests,
		Status:         models.BookingPending,
		TotalPrice:     p.TotalPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}, nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	row := db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// ApproveBooking moves a pending booking to approved inside one transaction.
// The room row is untouched: occupancy is derived from the approved booking
// itself, so there is no second write that could fail halfway.
func (db *DB) ApproveBooking(ctx context.Context, id, version int64) (*models.Booking, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking in tx: %w", err)
	}

	if !models.CanTransitionBooking(b.Status, models.BookingApproved) {
		return nil, ErrInvalidTransition
	}

	var roomStatus string
	err = tx.QueryRowContext(ctx, `SELECT status FROM rooms WHERE id = ?`, b.RoomID).Scan(&roomStatus)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load room in tx: %w", err)
	}
	if roomStatus == models.RoomMaintenance {
		return nil, ErrRoomUnderMaintenance
	}

	// Another approved booking may have landed on the room since this one
	// was created; never approve into a collision.
	var colliding int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings
	        WHERE room_id = ? AND id != ? AND status = 'approved'
	          AND check_in <= ? AND check_out >= ?`,
		b.RoomID, b.ID,
		b.CheckOut.Format(models.DateLayout), b.CheckIn.Format(models.DateLayout)).Scan(&colliding)
	if err != nil {
		return nil, fmt.Errorf("failed to check collisions in tx: %w", err)
	}
	if colliding > 0 {
		return nil, ErrRoomUnavailable
	}

	if err := updateBookingStatusTx(ctx, tx, id, version, models.BookingApproved); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	b.Status = models.BookingApproved
	b.Version = version + 1
	return b, nil
}

// RejectBooking moves a pending booking to rejected.
func (db *DB) RejectBooking(ctx context.Context, id, version int64) (*models.Booking, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking in tx: %w", err)
	}

	if !models.CanTransitionBooking(b.Status, models.BookingRejected) {
		return nil, ErrInvalidTransition
	}

	if err := updateBookingStatusTx(ctx, tx, id, version, models.BookingRejected); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rejection: %w", err)
	}

	b.Status = models.BookingRejected
	b.Version = version + 1
	return b, nil
}

func updateBookingStatusTx(ctx context.Context, tx *sql.Tx, id, version int64, status string) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`,
		status, time.Now(), id, version)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func (db *DB) listBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (db *DB) ListBookingsByGuest(ctx context.Context, guestID int64) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE guest_id = ? ORDER BY created_at DESC`, guestID)
}

func (db *DB) ListBookingsByStatus(ctx context.Context, status string) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE status = ? ORDER BY created_at ASC`, status)
}

func (db *DB) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE check_in <= ? AND check_out >= ? ORDER BY check_in ASC`,
		end.Format(models.DateLayout), start.Format(models.DateLayout))
}

// GetActiveBookingForGuest returns the guest's single pending or approved
// booking whose stay has not lapsed, or ErrNotFound.
func (db *DB) GetActiveBookingForGuest(ctx context.Context, guestID int64) (*models.Booking, error) {
	row := db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings
	        WHERE guest_id = ? AND status IN ('pending', 'approved') AND check_out >= ?
	        ORDER BY check_in ASC LIMIT 1`, guestID, today())
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active booking: %w", err)
	}
	return b, nil
}

// GetCurrentApprovedBooking returns the approved booking covering today for
// the guest, or ErrNotFound. Food orders resolve their room through this.
func (db *DB) GetCurrentApprovedBooking(ctx context.Context, guestID int64) (*models.Booking, error) {
	row := db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings
	        WHERE guest_id = ? AND status = 'approved' AND check_in <= ?2 AND check_out >= ?2
	        ORDER BY check_in ASC LIMIT 1`, guestID, today())
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current booking: %w", err)
	}
	return b, nil
}

func (db *DB) CountBookingsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
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

func (db *DB) SumApprovedRevenue(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	err := db.QueryRowContext(ctx,
		`SELECT SUM(total_price) FROM bookings WHERE status = 'approved'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total.Float64, nil
}
