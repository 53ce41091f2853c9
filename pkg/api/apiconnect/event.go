package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/pkg/api"
)

// EventServiceName is the fully-qualified name of the EventService service.
const EventServiceName = "santa.v1.EventService"

const (
	EventServiceCreateEventProcedure       = "/santa.v1.EventService/CreateEvent"
	EventServiceGetEventProcedure          = "/santa.v1.EventService/GetEvent"
	EventServiceListEventsProcedure        = "/santa.v1.EventService/ListEvents"
	EventServiceDeleteEventProcedure       = "/santa.v1.EventService/DeleteEvent"
	EventServiceAddParticipantProcedure    = "/santa.v1.EventService/AddParticipant"
	EventServiceRemoveParticipantProcedure = "/santa.v1.EventService/RemoveParticipant"
	EventServiceRunAssignmentProcedure     = "/santa.v1.EventService/RunAssignment"
)

// EventServiceHandler is an implementation of the santa.v1.EventService service.
// EventService lets a signed-in host manage events and run assignments.
type EventServiceHandler interface {
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
	GetEvent(context.Context, *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error)
	ListEvents(context.Context, *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error)
	DeleteEvent(context.Context, *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error)
	RunAssignment(context.Context, *connect.Request[api.RunAssignmentRequest]) (*connect.Response[api.RunAssignmentResponse], error)
}

// NewEventServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewEventServiceHandler(svc EventServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createEventHandler := connect.NewUnaryHandler(EventServiceCreateEventProcedure, svc.CreateEvent, opts...)
	getEventHandler := connect.NewUnaryHandler(EventServiceGetEventProcedure, svc.GetEvent, opts...)
	listEventsHandler := connect.NewUnaryHandler(EventServiceListEventsProcedure, svc.ListEvents, opts...)
	deleteEventHandler := connect.NewUnaryHandler(EventServiceDeleteEventProcedure, svc.DeleteEvent, opts...)
	addParticipantHandler := connect.NewUnaryHandler(EventServiceAddParticipantProcedure, svc.AddParticipant, opts...)
	removeParticipantHandler := connect.NewUnaryHandler(EventServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...)
	runAssignmentHandler := connect.NewUnaryHandler(EventServiceRunAssignmentProcedure, svc.RunAssignment, opts...)
	return "/santa.v1.EventService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EventServiceCreateEventProcedure:
			createEventHandler.ServeHTTP(w, r)
		case EventServiceGetEventProcedure:
			getEventHandler.ServeHTTP(w, r)
		case EventServiceListEventsProcedure:
			listEventsHandler.ServeHTTP(w, r)
		case EventServiceDeleteEventProcedure:
			deleteEventHandler.ServeHTTP(w, r)
		case EventServiceAddParticipantProcedure:
			addParticipantHandler.ServeHTTP(w, r)
		case EventServiceRemoveParticipantProcedure:
			removeParticipantHandler.ServeHTTP(w, r)
		case EventServiceRunAssignmentProcedure:
			runAssignmentHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// EventServiceClient is a client for the santa.v1.EventService service.
type EventServiceClient interface {
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
	GetEvent(context.Context, *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error)
	ListEvents(context.Context, *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error)
	DeleteEvent(context.Context, *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error)
	RunAssignment(context.Context, *connect.Request[api.RunAssignmentRequest]) (*connect.Response[api.RunAssignmentResponse], error)
}

// NewEventServiceClient constructs a client for the santa.v1.EventService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewEventServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) EventServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &eventServiceClient{
		createEvent:       connect.NewClient[api.CreateEventRequest, api.CreateEventResponse](httpClient, baseURL+EventServiceCreateEventProcedure, opts...),
		getEvent:          connect.NewClient[api.GetEventRequest, api.GetEventResponse](httpClient, baseURL+EventServiceGetEventProcedure, opts...),
		listEvents:        connect.NewClient[api.ListEventsRequest, api.ListEventsResponse](httpClient, baseURL+EventServiceListEventsProcedure, opts...),
		deleteEvent:       connect.NewClient[api.DeleteEventRequest, api.DeleteEventResponse](httpClient, baseURL+EventServiceDeleteEventProcedure, opts...),
		addParticipant:    connect.NewClient[api.AddParticipantRequest, api.AddParticipantResponse](httpClient, baseURL+EventServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[api.RemoveParticipantRequest, api.RemoveParticipantResponse](httpClient, baseURL+EventServiceRemoveParticipantProcedure, opts...),
		runAssignment:     connect.NewClient[api.RunAssignmentRequest, api.RunAssignmentResponse](httpClient, baseURL+EventServiceRunAssignmentProcedure, opts...),
	}
}

type eventServiceClient struct {
	createEvent       *connect.Client[api.CreateEventRequest, api.CreateEventResponse]
	getEvent          *connect.Client[api.GetEventRequest, api.GetEventResponse]
	listEvents        *connect.Client[api.ListEventsRequest, api.ListEventsResponse]
	deleteEvent       *connect.Client[api.DeleteEventRequest, api.DeleteEventResponse]
	addParticipant    *connect.Client[api.AddParticipantRequest, api.AddParticipantResponse]
	removeParticipant *connect.Client[api.RemoveParticipantRequest, api.RemoveParticipantResponse]
	runAssignment     *connect.Client[api.RunAssignmentRequest, api.RunAssignmentResponse]
}

func (c *eventServiceClient) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	return c.createEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) GetEvent(ctx context.Context, req *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	return c.getEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	return c.listEvents.CallUnary(ctx, req)
}

func (c *eventServiceClient) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	return c.deleteEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *eventServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *eventServiceClient) RunAssignment(ctx context.Context, req *connect.Request[api.RunAssignmentRequest]) (*connect.Response[api.RunAssignmentResponse], error) {
	return c.runAssignment.CallUnary(ctx, req)
}
