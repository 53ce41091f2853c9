package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/internal/exchange"
	"github.com/mmynk/santa/internal/metrics"
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/pkg/api"
	"github.com/mmynk/santa/pkg/api/apiconnect"
)

var _ apiconnect.ParticipantServiceHandler = (*ParticipantService)(nil)

// ParticipantService implements the participant-facing service.
// Participants are identified by their private token, not a session.
type ParticipantService struct {
	exchange *exchange.Service
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewParticipantService(ex *exchange.Service, m *metrics.Metrics, logger *slog.Logger) *ParticipantService {
	return &ParticipantService{exchange: ex, metrics: m, logger: logger}
}

func (s *ParticipantService) view(ctx context.Context, p *models.Participant) (*api.ParticipantView, error) {
	event, err := s.exchange.GetEvent(ctx, p.EventID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetEvent", err)
	}
	return participantView(p, event), nil
}

// JoinEvent registers the caller on an event through its public slug.
func (s *ParticipantService) JoinEvent(ctx context.Context, req *connect.Request[api.JoinEventRequest]) (*connect.Response[api.JoinEventResponse], error) {
	s.logger.Info("JoinEvent request received", "event_slug", req.Msg.EventSlug, "name", req.Msg.Name)

	participant, err := s.exchange.JoinEvent(ctx, req.Msg.EventSlug, req.Msg.Name)
	s.metrics.ObserveRosterMutation("join", toMetricError(err))
	if err != nil {
		return nil, toConnectError(s.logger, "JoinEvent", err)
	}

	view, err := s.view(ctx, participant)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Participant joined", "event_id", participant.EventID, "participant_id", participant.ID)
	return connect.NewResponse(&api.JoinEventResponse{Participant: view}), nil
}

func (s *ParticipantService) GetParticipant(ctx context.Context, req *connect.Request[api.GetParticipantRequest]) (*connect.Response[api.GetParticipantResponse], error) {
	participant, err := s.exchange.GetParticipant(ctx, req.Msg.Token)
	if err != nil {
		return nil, toConnectError(s.logger, "GetParticipant", err)
	}
	view, err := s.view(ctx, participant)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetParticipantResponse{Participant: view}), nil
}

// SubmitConcept stores the participant's gift concept. Only the first submission counts.
func (s *ParticipantService) SubmitConcept(ctx context.Context, req *connect.Request[api.SubmitConceptRequest]) (*connect.Response[api.SubmitConceptResponse], error) {
	participant, err := s.exchange.SubmitConcept(ctx, req.Msg.Token, req.Msg.Concept)
	s.metrics.ObserveRosterMutation("submit", toMetricError(err))
	if err != nil {
		return nil, toConnectError(s.logger, "SubmitConcept", err)
	}

	view, err := s.view(ctx, participant)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Concept submitted", "event_id", participant.EventID, "participant_id", participant.ID)
	return connect.NewResponse(&api.SubmitConceptResponse{Participant: view}), nil
}

// GetReceiver returns who the participant gives a gift to, once the assignment has run.
func (s *ParticipantService) GetReceiver(ctx context.Context, req *connect.Request[api.GetReceiverRequest]) (*connect.Response[api.GetReceiverResponse], error) {
	receiver, err := s.exchange.GetReceiver(ctx, req.Msg.Token)
	if err != nil {
		return nil, toConnectError(s.logger, "GetReceiver", err)
	}
	if receiver == nil {
		return connect.NewResponse(&api.GetReceiverResponse{}), nil
	}
	return connect.NewResponse(&api.GetReceiverResponse{
		Assigned: true,
		Receiver: &api.Receiver{Name: receiver.Name, Concept: receiver.Concept},
	}), nil
}
