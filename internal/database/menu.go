package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

const menuColumns = `id, name, description, category, price, is_available, created_at, updated_at`

func scanMenuItem(row interface{ Scan(...any) error }) (*models.MenuItem, error) {
	var item models.MenuItem
	var description, category sql.NullString
	err := row.Scan(&item.ID, &item.Name, &description, &category, &item.Price,
		&item.IsAvailable, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Description = description.String
	item.Category = category.String
	return &item, nil
}

func (db *DB) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	query := `INSERT INTO menu_items (name, description, category, price, is_available, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Category, item.Price, item.IsAvailable, now, now)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	row := db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = ?`, id)
	item, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (db *DB) ListMenuItems(ctx context.Context, onlyAvailable bool) ([]*models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items ORDER BY category, name`
	if onlyAvailable {
		query = `SELECT ` + menuColumns + ` FROM menu_items WHERE is_available = 1 ORDER BY category, name`
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (db *DB) UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	query := `UPDATE menu_items SET name = ?, description = ?, category = ?, price = ?,
	          is_available = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Category, item.Price, item.IsAvailable,
		time.Now(), item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return db.GetMenuItem(ctx, item.ID)
}

func (db *DB) DeleteMenuItem(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
