package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

// AddParticipant adds a participant with a fresh token to an open event.
// A missing or closed event is reported before the name is looked at.
func (s *Service) AddParticipant(ctx context.Context, eventID, name string) (*models.Participant, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	var participant *models.Participant
	err = s.store.InTx(ctx, func(tx storage.Tx) error {
		roster, err := loadRoster(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if roster.Event.Closed() {
			return ErrEventClosed
		}
		clean, err := cleanName(name)
		if err != nil {
			return err
		}
		slug := slugify(clean)
		if slug == "" {
			return fmt.Errorf("%w: must contain a letter or digit", ErrInvalidName)
		}
		for _, p := range roster.Participants {
			if strings.EqualFold(p.Name, clean) {
				return ErrDuplicateName
			}
		}
		p := &models.Participant{
			EventID: eventID,
			Name:    clean,
			Slug:    slug,
			Token:   token,
		}
		if err := tx.CreateParticipant(ctx, p); err != nil {
			return err
		}
		participant = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Participant added", "event_id", eventID, "participant_id", participant.ID)
	return participant, nil
}

// JoinEvent lets a participant register themselves through the event's public slug.
func (s *Service) JoinEvent(ctx context.Context, eventSlug, name string) (*models.Participant, error) {
	event, err := s.GetEventBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}
	return s.AddParticipant(ctx, event.ID, name)
}

// RemoveParticipant deletes a participant from an open event.
// Receivers only exist once the event is closed, so an open event has no
// receiver links that could dangle.
func (s *Service) RemoveParticipant(ctx context.Context, eventID, participantID string) error {
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		event, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return notFound(err, ErrEventNotFound)
		}
		if event.Closed() {
			return ErrEventClosed
		}
		participant, err := tx.GetParticipant(ctx, participantID)
		if err != nil {
			return notFound(err, ErrNotInEvent)
		}
		if participant.EventID != eventID {
			return ErrNotInEvent
		}
		return tx.DeleteParticipant(ctx, participantID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Participant removed", "event_id", eventID, "participant_id", participantID)
	return nil
}

// GetParticipant resolves a participant from its private token.
func (s *Service) GetParticipant(ctx context.Context, token string) (*models.Participant, error) {
	participant, err := s.store.GetParticipantByToken(ctx, token)
	if err != nil {
		return nil, notFound(err, ErrParticipantNotFound)
	}
	return participant, nil
}

// SubmitConcept stores the participant's gift concept.
// A concept can be submitted once; later submissions fail with ErrAlreadySubmitted.
// Checks run in order: unknown token, closed event, invalid text, already submitted.
func (s *Service) SubmitConcept(ctx context.Context, token, text string) (*models.Participant, error) {
	var participant *models.Participant
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		p, err := tx.GetParticipantByToken(ctx, token)
		if err != nil {
			return notFound(err, ErrParticipantNotFound)
		}
		event, err := tx.GetEvent(ctx, p.EventID)
		if err != nil {
			return notFound(err, ErrEventNotFound)
		}
		if event.Closed() {
			return ErrEventClosed
		}
		concept, err := cleanConcept(text)
		if err != nil {
			return err
		}
		if p.HasConcept() {
			return ErrAlreadySubmitted
		}
		if err := tx.SetConcept(ctx, p.ID, concept); err != nil {
			return err
		}
		p.Concept = concept
		participant = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Concept submitted", "event_id", participant.EventID, "participant_id", participant.ID)
	return participant, nil
}
