// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/santa/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional write matched no row,
	// e.g. closing an event that is already closed.
	ErrConflict = errors.New("conflict")
)

// Tx is the set of persistence operations available inside and outside a transaction.
type Tx interface {
	// CreateHost persists a new host. ID and timestamps are populated by the store when empty.
	CreateHost(ctx context.Context, host *models.Host) error

	// GetHostByEmail returns ErrNotFound if no host uses the email.
	GetHostByEmail(ctx context.Context, email string) (*models.Host, error)

	// GetHostByID returns ErrNotFound if the host does not exist.
	GetHostByID(ctx context.Context, id string) (*models.Host, error)

	// CreateEvent persists a new event. ID and CreatedAt are populated by the store when empty.
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEvent returns ErrNotFound if the event does not exist.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// GetEventBySlug looks an event up by its public slug.
	GetEventBySlug(ctx context.Context, slug string) (*models.Event, error)

	// ListEventsByHost returns the host's events, newest first.
	ListEventsByHost(ctx context.Context, hostID string) ([]*models.Event, error)

	// DeleteEvent removes the event and, by cascade, its participants.
	DeleteEvent(ctx context.Context, eventID string) error

	// CloseEvent sets assignment_run_at only if it is still unset.
	// Returns ErrConflict if the event was already closed.
	CloseEvent(ctx context.Context, eventID string, closedAt int64) error

	// CreateParticipant persists a new participant. ID and CreatedAt are populated by the store when empty.
	CreateParticipant(ctx context.Context, participant *models.Participant) error

	// GetParticipant returns ErrNotFound if the participant does not exist.
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)

	// GetParticipantByToken looks a participant up by its private token.
	GetParticipantByToken(ctx context.Context, token string) (*models.Participant, error)

	// ListParticipants returns the event's roster in join order.
	ListParticipants(ctx context.Context, eventID string) ([]*models.Participant, error)

	// DeleteParticipant removes a participant.
	DeleteParticipant(ctx context.Context, participantID string) error

	// SetConcept stores the participant's concept.
	SetConcept(ctx context.Context, participantID, concept string) error

	// SetReceiver links a participant to the participant it gives to.
	SetReceiver(ctx context.Context, participantID, receiverID string) error
}

// Store defines the interface for gift exchange storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	Tx

	// InTx runs fn inside a single transaction. The transaction commits when fn
	// returns nil and rolls back otherwise. Transactions are serialized.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}
