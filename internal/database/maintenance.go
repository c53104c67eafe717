package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

const maintenanceColumns = `id, room_id, guest_id, title, description, priority, status,
	created_at, updated_at, version`

func scanMaintenance(row interface{ Scan(...any) error }) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	var description sql.NullString
	err := row.Scan(&m.ID, &m.RoomID, &m.GuestID, &m.Title, &description, &m.Priority,
		&m.Status, &m.CreatedAt, &m.UpdatedAt, &m.Version)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	return &m, nil
}

func (db *DB) CreateMaintenanceRequest(ctx context.Context, m *models.MaintenanceRequest) error {
	if !models.ValidPriority(m.Priority) {
		return fmt.Errorf("%w: priority %q", ErrInvalidTransition, m.Priority)
	}
	m.Status = models.MaintenancePending

	query := `INSERT INTO maintenance_requests (room_id, guest_id, title, description, priority, status, created_at, updated_at, version)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		m.RoomID, m.GuestID, m.Title, m.Description, m.Priority, m.Status, now, now, 1)
	if err != nil {
		return fmt.Errorf("failed to create maintenance request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	m.Version = 1
	return nil
}

func (db *DB) GetMaintenanceRequest(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE id = ?`, id)
	m, err := scanMaintenance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance request: %w", err)
	}
	return m, nil
}

// AdvanceMaintenanceRequest applies one status transition under the
// enumerated table, version-guarded, inside a transaction.
func (db *DB) AdvanceMaintenanceRequest(ctx context.Context, id, version int64, to string) (*models.MaintenanceRequest, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE id = ?`, id)
	m, err := scanMaintenance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load maintenance request in tx: %w", err)
	}

	if !models.CanTransitionMaintenance(m.Status, to) {
		return nil, ErrInvalidTransition
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE maintenance_requests SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`,
		to, time.Now(), id, version)
	if err != nil {
		return nil, fmt.Errorf("failed to update maintenance status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrConcurrentModification
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit maintenance update: %w", err)
	}

	m.Status = to
	m.Version = version + 1
	return m, nil
}

func (db *DB) listMaintenance(ctx context.Context, query string, args ...any) ([]*models.MaintenanceRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.MaintenanceRequest
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance request: %w", err)
		}
		requests = append(requests, m)
	}
	return requests, rows.Err()
}

func (db *DB) ListMaintenanceByGuest(ctx context.Context, guestID int64) ([]*models.MaintenanceRequest, error) {
	return db.listMaintenance(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE guest_id = ? ORDER BY created_at DESC`, guestID)
}

func (db *DB) ListMaintenanceRequests(ctx context.Context, status string) ([]*models.MaintenanceRequest, error) {
	if status == "" {
		return db.listMaintenance(ctx,
			`SELECT `+maintenanceColumns+` FROM maintenance_requests ORDER BY created_at DESC`)
	}
	return db.listMaintenance(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE status = ? ORDER BY created_at DESC`, status)
}

// CountOpenMaintenanceByPriority buckets pending and in-progress requests.
func (db *DB) CountOpenMaintenanceByPriority(ctx context.Context) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT priority, COUNT(*) FROM maintenance_requests
	        WHERE status IN ('pending', 'in_progress') GROUP BY priority`)
	if err != nil {
		return nil, fmt.Errorf("failed to count maintenance requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var priority string
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		counts[priority] = count
	}
	return counts, rows.Err()
}
