package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/exchange"
	"github.com/mmynk/santa/internal/metrics"
	"github.com/mmynk/santa/internal/middleware"
	"github.com/mmynk/santa/internal/storage/sqlite"
	"github.com/mmynk/santa/pkg/api"
	"github.com/mmynk/santa/pkg/api/apiconnect"
)

const testAdminSecret = "admin-secret-admin-secret-admin-secret"

type testClients struct {
	auth        apiconnect.AuthServiceClient
	events      apiconnect.EventServiceClient
	participant apiconnect.ParticipantServiceClient
	metrics     *metrics.Metrics
}

// setupTestServer serves all three services over httptest, backed by a temp database.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "santa.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	jwtManager := auth.NewJWTManager("test-secret-test-secret-test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	ex := exchange.New(store, exchange.WithLogger(logger))

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
			apiconnect.AuthServiceLogoutProcedure,
			apiconnect.EventServiceRunAssignmentProcedure,
		),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewEventServiceHandler(
		NewEventService(ex, auth.SharedSecret(testAdminSecret), m, logger), interceptors))
	mux.Handle(apiconnect.NewParticipantServiceHandler(
		NewParticipantService(ex, m, logger),
		connect.WithInterceptors(middleware.MetricsInterceptor(m), middleware.LoggingInterceptor(logger))))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testClients{
		auth:        apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		events:      apiconnect.NewEventServiceClient(http.DefaultClient, server.URL),
		participant: apiconnect.NewParticipantServiceClient(http.DefaultClient, server.URL),
		metrics:     m,
	}
}

// withToken builds a request carrying a bearer token.
func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func register(t *testing.T, c *testClients, email string) string {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: "Host " + email,
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return resp.Msg.Token
}

func createEvent(t *testing.T, c *testClients, token, name string) *api.Event {
	t.Helper()
	resp, err := c.events.CreateEvent(context.Background(), withToken(&api.CreateEventRequest{
		Name:    name,
		Message: "Budget is $25",
	}, token))
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return resp.Msg.Event
}

func addParticipant(t *testing.T, c *testClients, token, eventID, name string) *api.AddParticipantResponse {
	t.Helper()
	resp, err := c.events.AddParticipant(context.Background(), withToken(&api.AddParticipantRequest{
		EventID: eventID,
		Name:    name,
	}, token))
	if err != nil {
		t.Fatalf("AddParticipant(%q) failed: %v", name, err)
	}
	return resp.Msg
}

func submit(t *testing.T, c *testClients, participantToken, concept string) {
	t.Helper()
	_, err := c.participant.SubmitConcept(context.Background(), connect.NewRequest(&api.SubmitConceptRequest{
		Token:   participantToken,
		Concept: concept,
	}))
	if err != nil {
		t.Fatalf("SubmitConcept failed: %v", err)
	}
}

func assertCode(t *testing.T, err error, want connect.Code) *connect.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Fatalf("expected code %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
	return connectErr
}
