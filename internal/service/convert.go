package service

import (
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/pkg/api"
)

func hostToAPI(h *models.Host) *api.Host {
	return &api.Host{
		ID:          h.ID,
		Email:       h.Email,
		DisplayName: h.DisplayName,
		CreatedAt:   h.CreatedAt,
	}
}

func eventToAPI(e *models.Event) *api.Event {
	return &api.Event{
		ID:              e.ID,
		Name:            e.Name,
		Slug:            e.Slug,
		Message:         e.Message,
		CreatedAt:       e.CreatedAt,
		AssignmentRunAt: e.AssignmentRunAt,
		Closed:          e.Closed(),
	}
}

func participantToAPI(p *models.Participant) *api.Participant {
	return &api.Participant{
		ID:         p.ID,
		EventID:    p.EventID,
		Name:       p.Name,
		Slug:       p.Slug,
		HasConcept: p.HasConcept(),
	}
}

// participantView is the participant's own page: their token, concept and event header.
func participantView(p *models.Participant, e *models.Event) *api.ParticipantView {
	return &api.ParticipantView{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Token:        p.Token,
		Concept:      p.Concept,
		EventName:    e.Name,
		EventSlug:    e.Slug,
		EventMessage: e.Message,
		Closed:       e.Closed(),
	}
}
