package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/exchange"
	"github.com/mmynk/santa/internal/metrics"
	"github.com/mmynk/santa/internal/middleware"
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/pkg/api"
	"github.com/mmynk/santa/pkg/api/apiconnect"
)

// AdminSecretHeader carries the shared secret that may run an assignment
// without a host session.
const AdminSecretHeader = "Santa-Admin-Secret"

var _ apiconnect.EventServiceHandler = (*EventService)(nil)

// EventService implements the host-facing EventService.
type EventService struct {
	exchange    *exchange.Service
	adminSecret auth.CredentialVerifier
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewEventService creates an EventService. adminSecret may be nil, in which
// case only the owning host can run an assignment.
func NewEventService(ex *exchange.Service, adminSecret auth.CredentialVerifier, m *metrics.Metrics, logger *slog.Logger) *EventService {
	return &EventService{
		exchange:    ex,
		adminSecret: adminSecret,
		metrics:     m,
		logger:      logger,
	}
}

// ownedEvent loads the event and checks that the calling host owns it.
// Events of other hosts are reported as not found.
func (s *EventService) ownedEvent(ctx context.Context, eventID string) (*models.Event, error) {
	hostID := middleware.GetHostID(ctx)
	if hostID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	event, err := s.exchange.GetEvent(ctx, eventID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetEvent", err)
	}
	if event.HostID != hostID {
		return nil, connect.NewError(connect.CodeNotFound, exchange.ErrEventNotFound)
	}
	return event, nil
}

// CreateEvent creates a new event owned by the calling host.
func (s *EventService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	hostID := middleware.GetHostID(ctx)
	s.logger.Info("CreateEvent request received", "host_id", hostID, "name", req.Msg.Name)
	if hostID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	event, err := s.exchange.CreateEvent(ctx, hostID, req.Msg.Name, req.Msg.Message)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateEvent", err)
	}

	s.logger.Info("Event created", "event_id", event.ID, "slug", event.Slug)
	return connect.NewResponse(&api.CreateEventResponse{Event: eventToAPI(event)}), nil
}

// GetEvent returns the event with its roster and submission progress.
func (s *EventService) GetEvent(ctx context.Context, req *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	if _, err := s.ownedEvent(ctx, req.Msg.EventID); err != nil {
		return nil, err
	}

	roster, err := s.exchange.GetRoster(ctx, req.Msg.EventID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetRoster", err)
	}

	participants := make([]*api.Participant, 0, len(roster.Participants))
	for _, p := range roster.Participants {
		participants = append(participants, participantToAPI(p))
	}

	return connect.NewResponse(&api.GetEventResponse{
		Event:            eventToAPI(roster.Event),
		Participants:     participants,
		Submitted:        int32(roster.Submitted),
		Total:            int32(roster.Total()),
		CanRunAssignment: roster.CanRunAssignment(),
	}), nil
}

// ListEvents returns the calling host's events.
func (s *EventService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	hostID := middleware.GetHostID(ctx)
	if hostID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	events, err := s.exchange.ListEvents(ctx, hostID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListEvents", err)
	}

	out := make([]*api.Event, 0, len(events))
	for _, e := range events {
		out = append(out, eventToAPI(e))
	}
	return connect.NewResponse(&api.ListEventsResponse{Events: out}), nil
}

// DeleteEvent removes the event and its participants.
func (s *EventService) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	s.logger.Info("DeleteEvent request received", "event_id", req.Msg.EventID)
	if _, err := s.ownedEvent(ctx, req.Msg.EventID); err != nil {
		return nil, err
	}

	if err := s.exchange.DeleteEvent(ctx, req.Msg.EventID); err != nil {
		return nil, toConnectError(s.logger, "DeleteEvent", err)
	}
	return connect.NewResponse(&api.DeleteEventResponse{}), nil
}

// AddParticipant adds a participant while the event is open.
// The new participant's token is returned once so the host can share it.
func (s *EventService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	s.logger.Info("AddParticipant request received", "event_id", req.Msg.EventID, "name", req.Msg.Name)
	if _, err := s.ownedEvent(ctx, req.Msg.EventID); err != nil {
		return nil, err
	}

	participant, err := s.exchange.AddParticipant(ctx, req.Msg.EventID, req.Msg.Name)
	s.metrics.ObserveRosterMutation("add", toMetricError(err))
	if err != nil {
		return nil, toConnectError(s.logger, "AddParticipant", err)
	}

	s.logger.Info("Participant added", "event_id", req.Msg.EventID, "participant_id", participant.ID)
	return connect.NewResponse(&api.AddParticipantResponse{
		Participant: participantToAPI(participant),
		Token:       participant.Token,
	}), nil
}

// RemoveParticipant removes a participant while the event is open.
func (s *EventService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	s.logger.Info("RemoveParticipant request received", "event_id", req.Msg.EventID, "participant_id", req.Msg.ParticipantID)
	if _, err := s.ownedEvent(ctx, req.Msg.EventID); err != nil {
		return nil, err
	}

	err := s.exchange.RemoveParticipant(ctx, req.Msg.EventID, req.Msg.ParticipantID)
	s.metrics.ObserveRosterMutation("remove", toMetricError(err))
	if err != nil {
		return nil, toConnectError(s.logger, "RemoveParticipant", err)
	}
	return connect.NewResponse(&api.RemoveParticipantResponse{}), nil
}

// RunAssignment closes the event and links every participant to a receiver.
// The owning host or a holder of the admin secret may call it.
func (s *EventService) RunAssignment(ctx context.Context, req *connect.Request[api.RunAssignmentRequest]) (*connect.Response[api.RunAssignmentResponse], error) {
	s.logger.Info("RunAssignment request received", "event_id", req.Msg.EventID)

	authorized, err := s.authorize(ctx, req.Msg.EventID, req.Header().Get(AdminSecretHeader))
	if err != nil {
		return nil, toConnectError(s.logger, "RunAssignment", err)
	}

	result, err := s.exchange.RunAssignment(ctx, req.Msg.EventID, authorized)
	if err != nil {
		s.metrics.ObserveAssignment(toMetricError(err), 0)
		s.logger.Warn("RunAssignment rejected", "event_id", req.Msg.EventID, "error", err)
		return nil, toConnectError(s.logger, "RunAssignment", err)
	}
	s.metrics.ObserveAssignment(nil, result.Size())

	s.logger.Info("Assignment run", "event_id", result.Event.ID, "participants", result.Size())
	return connect.NewResponse(&api.RunAssignmentResponse{Event: eventToAPI(result.Event)}), nil
}

func (s *EventService) authorize(ctx context.Context, eventID, secret string) (bool, error) {
	if hostID := middleware.GetHostID(ctx); hostID != "" {
		event, err := s.exchange.GetEvent(ctx, eventID)
		switch {
		case err == nil && event.HostID == hostID:
			return true, nil
		case err != nil && !errors.Is(err, exchange.ErrEventNotFound):
			return false, err
		}
	}
	if s.adminSecret == nil || secret == "" {
		return false, nil
	}
	return s.adminSecret.VerifyCredentials(ctx, eventID, secret)
}

// toMetricError maps domain errors to the Connect code the caller will see,
// so assignment results are labeled consistently with RPC metrics.
func toMetricError(err error) error {
	if err == nil {
		return nil
	}
	return toConnectError(slog.New(slog.DiscardHandler), "", err)
}
