package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/middleware"
	"github.com/mmynk/santa/internal/storage"
	"github.com/mmynk/santa/pkg/api"
	"github.com/mmynk/santa/pkg/api/apiconnect"
)

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	hosts         auth.HostStorage
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, hosts auth.HostStorage, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		hosts:         hosts,
		logger:        logger,
	}
}

// Register creates a new host account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.DisplayName == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	host, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(s.logger, "Register", err)
	}

	token, err := s.jwtManager.Generate(host)
	if err != nil {
		return nil, toConnectError(s.logger, "Generate token", err)
	}

	s.logger.Info("Host registered", "host_id", host.ID)
	return connect.NewResponse(&api.RegisterResponse{
		Host:  hostToAPI(host),
		Token: token,
	}), nil
}

// Login authenticates a host and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	host, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
		}
		return nil, toConnectError(s.logger, "Login", err)
	}

	token, err := s.jwtManager.Generate(host)
	if err != nil {
		return nil, toConnectError(s.logger, "Generate token", err)
	}

	s.logger.Info("Host logged in", "host_id", host.ID)
	return connect.NewResponse(&api.LoginResponse{
		Host:  hostToAPI(host),
		Token: token,
	}), nil
}

// Logout is a no-op: tokens are stateless and discarded client-side.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	s.logger.Info("Logout request", "host_id", middleware.GetHostID(ctx), "email", middleware.GetEmail(ctx))
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentHost returns the authenticated host.
func (s *AuthService) GetCurrentHost(ctx context.Context, req *connect.Request[api.GetCurrentHostRequest]) (*connect.Response[api.GetCurrentHostResponse], error) {
	hostID := middleware.GetHostID(ctx)
	if hostID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	host, err := s.hosts.GetHostByID(ctx, hostID)
	if errors.Is(err, storage.ErrNotFound) {
		// Token outlived its account.
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}
	if err != nil {
		return nil, toConnectError(s.logger, "GetCurrentHost", err)
	}

	return connect.NewResponse(&api.GetCurrentHostResponse{Host: hostToAPI(host)}), nil
}
