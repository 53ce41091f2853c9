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

const participantColumns = "id, event_id, name, slug, token, concept, receiver_id, created_at"

// CreateParticipant persists a new participant to the database.
func (r repo) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.CreatedAt == 0 {
		participant.CreatedAt = time.Now().Unix()
	}

	_, err := r.q.ExecContext(ctx,
		"INSERT INTO participants ("+participantColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		participant.ID, participant.EventID, participant.Name, participant.Slug, participant.Token,
		nullString(participant.Concept), nullString(participant.ReceiverID), participant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID.
func (r repo) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	participant, err := scanParticipant(r.q.QueryRowContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE id = ?", participantID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// GetParticipantByToken retrieves a participant by its access token.
func (r repo) GetParticipantByToken(ctx context.Context, token string) (*models.Participant, error) {
	participant, err := scanParticipant(r.q.QueryRowContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE token = ?", token,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant token: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant by token: %w", err)
	}
	return participant, nil
}

// ListParticipants retrieves an event's roster in join order.
func (r repo) ListParticipants(ctx context.Context, eventID string) ([]*models.Participant, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE event_id = ? ORDER BY created_at, rowid",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// DeleteParticipant removes a participant by ID.
func (r repo) DeleteParticipant(ctx context.Context, participantID string) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", participantID)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return expectOneRow(res, "participant", participantID)
}

// SetConcept stores a participant's concept.
func (r repo) SetConcept(ctx context.Context, participantID, concept string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE participants SET concept = ? WHERE id = ?",
		nullString(concept), participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to set concept: %w", err)
	}
	return expectOneRow(res, "participant", participantID)
}

// SetReceiver links a giver to its receiver.
func (r repo) SetReceiver(ctx context.Context, participantID, receiverID string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE participants SET receiver_id = ? WHERE id = ?",
		nullString(receiverID), participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to set receiver: %w", err)
	}
	return expectOneRow(res, "participant", participantID)
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	participant := &models.Participant{}
	var concept, receiverID sql.NullString
	if err := row.Scan(
		&participant.ID,
		&participant.EventID,
		&participant.Name,
		&participant.Slug,
		&participant.Token,
		&concept,
		&receiverID,
		&participant.CreatedAt,
	); err != nil {
		return nil, err
	}
	participant.Concept = concept.String
	participant.ReceiverID = receiverID.String
	return participant, nil
}
