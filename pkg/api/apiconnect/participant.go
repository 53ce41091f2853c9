package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/pkg/api"
)

// ParticipantServiceName is the fully-qualified name of the ParticipantService service.
const ParticipantServiceName = "santa.v1.ParticipantService"

const (
	ParticipantServiceJoinEventProcedure      = "/santa.v1.ParticipantService/JoinEvent"
	ParticipantServiceGetParticipantProcedure = "/santa.v1.ParticipantService/GetParticipant"
	ParticipantServiceSubmitConceptProcedure  = "/santa.v1.ParticipantService/SubmitConcept"
	ParticipantServiceGetReceiverProcedure    = "/santa.v1.ParticipantService/GetReceiver"
)

// ParticipantServiceHandler is an implementation of the santa.v1.ParticipantService service.
// ParticipantService is used by participants through their private token.
type ParticipantServiceHandler interface {
	JoinEvent(context.Context, *connect.Request[api.JoinEventRequest]) (*connect.Response[api.JoinEventResponse], error)
	GetParticipant(context.Context, *connect.Request[api.GetParticipantRequest]) (*connect.Response[api.GetParticipantResponse], error)
	SubmitConcept(context.Context, *connect.Request[api.SubmitConceptRequest]) (*connect.Response[api.SubmitConceptResponse], error)
	GetReceiver(context.Context, *connect.Request[api.GetReceiverRequest]) (*connect.Response[api.GetReceiverResponse], error)
}

// NewParticipantServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	joinEventHandler := connect.NewUnaryHandler(ParticipantServiceJoinEventProcedure, svc.JoinEvent, opts...)
	getParticipantHandler := connect.NewUnaryHandler(ParticipantServiceGetParticipantProcedure, svc.GetParticipant, opts...)
	submitConceptHandler := connect.NewUnaryHandler(ParticipantServiceSubmitConceptProcedure, svc.SubmitConcept, opts...)
	getReceiverHandler := connect.NewUnaryHandler(ParticipantServiceGetReceiverProcedure, svc.GetReceiver, opts...)
	return "/santa.v1.ParticipantService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ParticipantServiceJoinEventProcedure:
			joinEventHandler.ServeHTTP(w, r)
		case ParticipantServiceGetParticipantProcedure:
			getParticipantHandler.ServeHTTP(w, r)
		case ParticipantServiceSubmitConceptProcedure:
			submitConceptHandler.ServeHTTP(w, r)
		case ParticipantServiceGetReceiverProcedure:
			getReceiverHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ParticipantServiceClient is a client for the santa.v1.ParticipantService service.
type ParticipantServiceClient interface {
	JoinEvent(context.Context, *connect.Request[api.JoinEventRequest]) (*connect.Response[api.JoinEventResponse], error)
	GetParticipant(context.Context, *connect.Request[api.GetParticipantRequest]) (*connect.Response[api.GetParticipantResponse], error)
	SubmitConcept(context.Context, *connect.Request[api.SubmitConceptRequest]) (*connect.Response[api.SubmitConceptResponse], error)
	GetReceiver(context.Context, *connect.Request[api.GetReceiverRequest]) (*connect.Response[api.GetReceiverResponse], error)
}

// NewParticipantServiceClient constructs a client for the santa.v1.ParticipantService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ParticipantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &participantServiceClient{
		joinEvent:      connect.NewClient[api.JoinEventRequest, api.JoinEventResponse](httpClient, baseURL+ParticipantServiceJoinEventProcedure, opts...),
		getParticipant: connect.NewClient[api.GetParticipantRequest, api.GetParticipantResponse](httpClient, baseURL+ParticipantServiceGetParticipantProcedure, opts...),
		submitConcept:  connect.NewClient[api.SubmitConceptRequest, api.SubmitConceptResponse](httpClient, baseURL+ParticipantServiceSubmitConceptProcedure, opts...),
		getReceiver:    connect.NewClient[api.GetReceiverRequest, api.GetReceiverResponse](httpClient, baseURL+ParticipantServiceGetReceiverProcedure, opts...),
	}
}

type participantServiceClient struct {
	joinEvent      *connect.Client[api.JoinEventRequest, api.JoinEventResponse]
	getParticipant *connect.Client[api.GetParticipantRequest, api.GetParticipantResponse]
	submitConcept  *connect.Client[api.SubmitConceptRequest, api.SubmitConceptResponse]
	getReceiver    *connect.Client[api.GetReceiverRequest, api.GetReceiverResponse]
}

func (c *participantServiceClient) JoinEvent(ctx context.Context, req *connect.Request[api.JoinEventRequest]) (*connect.Response[api.JoinEventResponse], error) {
	return c.joinEvent.CallUnary(ctx, req)
}

func (c *participantServiceClient) GetParticipant(ctx context.Context, req *connect.Request[api.GetParticipantRequest]) (*connect.Response[api.GetParticipantResponse], error) {
	return c.getParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) SubmitConcept(ctx context.Context, req *connect.Request[api.SubmitConceptRequest]) (*connect.Response[api.SubmitConceptResponse], error) {
	return c.submitConcept.CallUnary(ctx, req)
}

func (c *participantServiceClient) GetReceiver(ctx context.Context, req *connect.Request[api.GetReceiverRequest]) (*connect.Response[api.GetReceiverResponse], error) {
	return c.getReceiver.CallUnary(ctx, req)
}
