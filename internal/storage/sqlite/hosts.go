package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

// CreateHost inserts a new host into the database.
func (r repo) CreateHost(ctx context.Context, host *models.Host) error {
	if host.ID == "" {
		host.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if host.CreatedAt == 0 {
		host.CreatedAt = now
	}
	if host.UpdatedAt == 0 {
		host.UpdatedAt = host.CreatedAt
	}

	query := `
		INSERT INTO hosts (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.q.ExecContext(ctx, query,
		host.ID,
		host.Email,
		host.DisplayName,
		host.PasswordHash,
		host.CreatedAt,
		host.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create host: %w", err)
	}

	return nil
}

// GetHostByEmail retrieves a host by their email address.
func (r repo) GetHostByEmail(ctx context.Context, email string) (*models.Host, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM hosts
		WHERE email = ?
	`
	host, err := scanHost(r.q.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("host %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get host by email: %w", err)
	}
	return host, nil
}

// GetHostByID retrieves a host by their ID.
func (r repo) GetHostByID(ctx context.Context, id string) (*models.Host, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM hosts
		WHERE id = ?
	`
	host, err := scanHost(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("host %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get host by ID: %w", err)
	}
	return host, nil
}

func scanHost(row *sql.Row) (*models.Host, error) {
	host := &models.Host{}
	err := row.Scan(
		&host.ID,
		&host.Email,
		&host.DisplayName,
		&host.PasswordHash,
		&host.CreatedAt,
		&host.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return host, nil
}
