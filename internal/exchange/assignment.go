package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/santa/internal/assign"
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

// Assignment is the outcome of a committed RunAssignment.
type Assignment struct {
	Event *models.Event
	Links []assign.Link
}

// Size is the number of participants linked by the assignment.
func (a *Assignment) Size() int {
	return len(a.Links)
}

// RunAssignment draws the gift-giving cycle for an event and closes it.
//
// authorized is the caller's capability check (host ownership or shared
// secret); it is evaluated before anything is read. Preconditions are checked
// in order and the first failure wins: already closed, empty roster, a single
// participant, missing concepts. Receiver links and the closing timestamp are
// committed together or not at all.
func (s *Service) RunAssignment(ctx context.Context, eventID string, authorized bool) (*Assignment, error) {
	if !authorized {
		return nil, ErrUnauthorized
	}

	var result *Assignment
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		roster, err := loadRoster(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := checkAssignable(roster); err != nil {
			return err
		}

		ids := make([]string, len(roster.Participants))
		for i, p := range roster.Participants {
			ids[i] = p.ID
		}
		links, err := assign.Cycle(ids, s.shuffler)
		if err != nil {
			return fmt.Errorf("failed to draw assignment: %w", err)
		}
		if err := assign.Verify(ids, links); err != nil {
			return fmt.Errorf("failed to draw assignment: %w", err)
		}

		// AssignmentRunAt == 0 means open, so a clock at or before the epoch cannot close.
		closedAt := s.now().Unix()
		if closedAt <= 0 {
			return fmt.Errorf("%w: %d", errInvalidClock, closedAt)
		}
		if err := tx.CloseEvent(ctx, eventID, closedAt); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return ErrEventAlreadyClosed
			}
			return err
		}
		for _, l := range links {
			if err := tx.SetReceiver(ctx, l.GiverID, l.ReceiverID); err != nil {
				return err
			}
		}

		roster.Event.AssignmentRunAt = closedAt
		result = &Assignment{Event: roster.Event, Links: links}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Assignment complete", "event_id", eventID, "participants", result.Size())
	return result, nil
}

func checkAssignable(r *Roster) error {
	switch {
	case r.Event.Closed():
		return ErrEventAlreadyClosed
	case r.Total() == 0:
		return ErrEmptyRoster
	case r.Total() == 1:
		return ErrInsufficientParticipants
	case r.Submitted < r.Total():
		return &IncompleteSubmissionsError{Submitted: r.Submitted, Total: r.Total()}
	}
	return nil
}

// GetReceiver returns the participant the token's owner gives a gift to,
// or nil while the assignment has not run.
func (s *Service) GetReceiver(ctx context.Context, token string) (*models.Participant, error) {
	var receiver *models.Participant
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		giver, err := tx.GetParticipantByToken(ctx, token)
		if err != nil {
			return notFound(err, ErrParticipantNotFound)
		}
		if giver.ReceiverID == "" {
			return nil
		}
		event, err := tx.GetEvent(ctx, giver.EventID)
		if err != nil {
			return notFound(err, ErrEventNotFound)
		}
		if !event.Closed() {
			return nil
		}
		r, err := tx.GetParticipant(ctx, giver.ReceiverID)
		if err != nil {
			return err
		}
		receiver = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receiver, nil
}
