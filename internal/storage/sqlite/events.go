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

const eventColumns = "id, host_id, name, slug, message, created_at, assignment_run_at"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// CreateEvent persists a new event to the database.
func (r repo) CreateEvent(ctx context.Context, event *models.Event) error {
	// Generate IDs if not set
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	_, err := r.q.ExecContext(ctx,
		"INSERT INTO events ("+eventColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		event.ID, nullString(event.HostID), event.Name, event.Slug, nullString(event.Message),
		event.CreatedAt, nullInt64(event.AssignmentRunAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID.
func (r repo) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := scanEvent(r.q.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", eventID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// GetEventBySlug retrieves an event by its public slug.
func (r repo) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	event, err := scanEvent(r.q.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE slug = ?", slug,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", slug, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event by slug: %w", err)
	}
	return event, nil
}

// ListEventsByHost retrieves all events owned by a host, newest first.
func (r repo) ListEventsByHost(ctx context.Context, hostID string) ([]*models.Event, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE host_id = ? ORDER BY created_at DESC, rowid DESC",
		hostID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes an event; participants go with it (ON DELETE CASCADE).
func (r repo) DeleteEvent(ctx context.Context, eventID string) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM events WHERE id = ?", eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return expectOneRow(res, "event", eventID)
}

// CloseEvent marks the assignment as run. The NULL guard makes the
// OPEN -> CLOSED transition happen at most once per event.
func (r repo) CloseEvent(ctx context.Context, eventID string, closedAt int64) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE events SET assignment_run_at = ? WHERE id = ? AND assignment_run_at IS NULL",
		closedAt, eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to close event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %s already closed or missing: %w", eventID, storage.ErrConflict)
	}
	return nil
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var hostID, message sql.NullString
	var runAt sql.NullInt64
	if err := row.Scan(&event.ID, &hostID, &event.Name, &event.Slug, &message, &event.CreatedAt, &runAt); err != nil {
		return nil, err
	}
	event.HostID = hostID.String
	event.Message = message.String
	event.AssignmentRunAt = runAt.Int64
	return event, nil
}
