// Package exchange implements the gift exchange core: the roster manager that
// guards an event's open/closed gate, and the assignment engine that closes it.
//
// An event is OPEN until RunAssignment commits, then CLOSED for good. Every
// operation that reads the gate and then writes runs in one store
// transaction, so no roster change can land after the close is committed.
package exchange

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/santa/internal/assign"
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

// Service is the narrow call surface the transport layer uses.
type Service struct {
	store    storage.Store
	shuffler assign.Shuffler
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithShuffler replaces the random source used by RunAssignment.
func WithShuffler(s assign.Shuffler) Option {
	return func(svc *Service) { svc.shuffler = s }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) { svc.logger = l }
}

// New creates a Service backed by store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		shuffler: assign.Default,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Roster is a consistent snapshot of an event and its participants.
type Roster struct {
	Event        *models.Event
	Participants []*models.Participant
	Submitted    int
}

// Total is the number of participants.
func (r *Roster) Total() int {
	return len(r.Participants)
}

// CanRunAssignment reports whether RunAssignment would pass its preconditions.
func (r *Roster) CanRunAssignment() bool {
	return !r.Event.Closed() && r.Total() >= 2 && r.Submitted == r.Total()
}

// notFound maps storage.ErrNotFound to the given domain error.
func notFound(err, domain error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return domain
	}
	return err
}

// CreateEvent creates an open event owned by hostID. hostID may be empty.
func (s *Service) CreateEvent(ctx context.Context, hostID, name, message string) (*models.Event, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	slug, err := newEventSlug(name)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		HostID:  hostID,
		Name:    name,
		Slug:    slug,
		Message: strings.TrimSpace(message),
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("Event created", "event_id", event.ID, "host_id", hostID, "slug", slug)
	return event, nil
}

// GetEvent returns an event by ID.
func (s *Service) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, notFound(err, ErrEventNotFound)
	}
	return event, nil
}

// GetEventBySlug returns an event by its public slug.
func (s *Service) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	event, err := s.store.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, ErrEventNotFound)
	}
	return event, nil
}

// ListEvents returns the host's events, newest first.
func (s *Service) ListEvents(ctx context.Context, hostID string) ([]*models.Event, error) {
	return s.store.ListEventsByHost(ctx, hostID)
}

// DeleteEvent removes an event and its participants, open or closed.
func (s *Service) DeleteEvent(ctx context.Context, eventID string) error {
	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		return notFound(err, ErrEventNotFound)
	}
	s.logger.Info("Event deleted", "event_id", eventID)
	return nil
}

// GetRoster returns the event with its participants and submission count.
func (s *Service) GetRoster(ctx context.Context, eventID string) (*Roster, error) {
	var roster *Roster
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		r, err := loadRoster(ctx, tx, eventID)
		roster = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func loadRoster(ctx context.Context, tx storage.Tx, eventID string) (*Roster, error) {
	event, err := tx.GetEvent(ctx, eventID)
	if err != nil {
		return nil, notFound(err, ErrEventNotFound)
	}
	participants, err := tx.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	roster := &Roster{Event: event, Participants: participants}
	for _, p := range participants {
		if p.HasConcept() {
			roster.Submitted++
		}
	}
	return roster, nil
}
