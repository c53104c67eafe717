package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// occupiedCase derives the effective room status. A stored "available" room
// reads as "occupied" while an approved booking covers the current date;
// "maintenance" always wins. Nothing ever writes "occupied" to the table,
// so booking approval and room state cannot drift apart.
const occupiedCase = `CASE WHEN r.status = 'available' AND EXISTS (
            SELECT 1 FROM bookings b
            WHERE b.room_id = r.id AND b.status = 'approved'
              AND b.check_in <= ?1 AND b.check_out >= ?1
        ) THEN 'occupied' ELSE r.status END`

const roomColumns = `r.id, r.number, r.type, r.price_per_night, r.capacity, ` +
	occupiedCase + ` AS status, r.floor, r.amenities, r.created_at, r.updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*models.Room, error) {
	var r models.Room
	var amenities string
	err := row.Scan(&r.ID, &r.Number, &r.Type, &r.PricePerNight, &r.Capacity,
		&r.Status, &r.Floor, &amenities, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(amenities), &r.Amenities); err != nil {
		return nil, fmt.Errorf("failed to decode amenities: %w", err)
	}
	return &r, nil
}

func encodeAmenities(amenities []string) (string, error) {
	if amenities == nil {
		amenities = []string{}
	}
	raw, err := json.Marshal(amenities)
	if err != nil {
		return "", fmt.Errorf("failed to encode amenities: %w", err)
	}
	return string(raw), nil
}

func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if room.Status != models.RoomAvailable && room.Status != models.RoomMaintenance {
		return ErrInvalidTransition
	}

	amenities, err := encodeAmenities(room.Amenities)
	if err != nil {
		return err
	}

	query := `INSERT INTO rooms (number, type, price_per_night, capacity, status, floor, amenities, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		room.Number, room.Type, room.PricePerNight, room.Capacity, room.Status,
		room.Floor, amenities, now, now)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	room.ID = id
	room.CreatedAt = now
	room.UpdatedAt = now
	return nil
}

func (db *DB) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms r WHERE r.id = ?2`
	row := db.QueryRowContext(ctx, query, today(), id)
	room, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (db *DB) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms r WHERE r.number = ?2`
	row := db.QueryRowContext(ctx, query, today(), number)
	room, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room by number: %w", err)
	}
	return room, nil
}

func (db *DB) ListRooms(ctx context.Context) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms r ORDER BY r.number`
	rows, err := db.QueryContext(ctx, query, today())
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// ListAvailableRooms returns rooms a guest party could book for the given
// range: stored status available, enough capacity, and no pending or
// approved booking colliding with the dates.
func (db *DB) ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms r
	          WHERE r.status = 'available' AND r.capacity >= ?2
	            AND NOT EXISTS (
	                SELECT 1 FROM bookings b
	                WHERE b.room_id = r.id AND b.status IN ('pending', 'approved')
	                  AND b.check_in <= ?3 AND b.check_out >= ?4
	            )
	          ORDER BY r.number`
	rows, err := db.QueryContext(ctx, query, today(), guests,
		checkOut.Format(models.DateLayout), checkIn.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// UpdateRoom rewrites the editable fields. Only available and maintenance
// may be stored; occupied exists solely as a derived read.
func (db *DB) UpdateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if room.Status != models.RoomAvailable && room.Status != models.RoomMaintenance {
		return nil, ErrInvalidTransition
	}

	amenities, err := encodeAmenities(room.Amenities)
	if err != nil {
		return nil, err
	}

	query := `UPDATE rooms SET number = ?, type = ?, price_per_night = ?, capacity = ?,
	          status = ?, floor = ?, amenities = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		room.Number, room.Type, room.PricePerNight, room.Capacity, room.Status,
		room.Floor, amenities, time.Now(), room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return db.GetRoom(ctx, room.ID)
}

// SetRoomStatus stores available or maintenance for the room.
func (db *DB) SetRoomStatus(ctx context.Context, id int64, status string) error {
	if status != models.RoomAvailable && status != models.RoomMaintenance {
		return ErrInvalidTransition
	}
	result, err := db.ExecContext(ctx,
		`UPDATE rooms SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set room status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteRoom(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRoomsByStatus buckets rooms by effective status.
func (db *DB) CountRoomsByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT ` + occupiedCase + ` AS status, COUNT(*) FROM rooms r GROUP BY status`
	rows, err := db.QueryContext(ctx, query, today())
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
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
