package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"

	"github.com/mattn/go-sqlite3"
)

func (db *DB) CreateProfile(ctx context.Context, p *models.Profile) error {
	query := `INSERT INTO profiles (email, password_hash, full_name, phone, role, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		p.Email, p.PasswordHash, p.FullName, p.Phone, string(p.Role), now, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

const profileColumns = `id, email, password_hash, full_name, phone, role, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	var phone sql.NullString
	var role string
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &phone, &role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Phone = phone.String
	p.Role = models.Role(role)
	return &p, nil
}

func (db *DB) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	row := db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (db *DB) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return p, nil
}

// UpdateProfile changes the guest-editable contact fields.
func (db *DB) UpdateProfile(ctx context.Context, id int64, fullName, phone string) (*models.Profile, error) {
	query := `UPDATE profiles SET full_name = ?, phone = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, fullName, phone, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return db.GetProfile(ctx, id)
}

func (db *DB) ListProfilesByRole(ctx context.Context, role models.Role) ([]*models.Profile, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE role = ? ORDER BY created_at DESC`, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (db *DB) CountProfilesByRole(ctx context.Context, role models.Role) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles WHERE role = ?`, string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// SetProfileRole promotes or demotes an account. Used only at bootstrap for
// configured admin emails.
func (db *DB) SetProfileRole(ctx context.Context, email string, role models.Role) error {
	result, err := db.ExecContext(ctx,
		`UPDATE profiles SET role = ?, updated_at = ? WHERE email = ?`, string(role), time.Now(), email)
	if err != nil {
		return fmt.Errorf("failed to set profile role: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
