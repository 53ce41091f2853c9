package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "santa.v1.AuthService"

const (
	AuthServiceRegisterProcedure       = "/santa.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/santa.v1.AuthService/Login"
	AuthServiceLogoutProcedure         = "/santa.v1.AuthService/Logout"
	AuthServiceGetCurrentHostProcedure = "/santa.v1.AuthService/GetCurrentHost"
)

// AuthServiceHandler is an implementation of the santa.v1.AuthService service.
// AuthService registers hosts and issues session tokens.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
	GetCurrentHost(context.Context, *connect.Request[api.GetCurrentHostRequest]) (*connect.Response[api.GetCurrentHostResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	registerHandler := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	loginHandler := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	logoutHandler := connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...)
	getCurrentHostHandler := connect.NewUnaryHandler(AuthServiceGetCurrentHostProcedure, svc.GetCurrentHost, opts...)
	return "/santa.v1.AuthService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			registerHandler.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case AuthServiceLogoutProcedure:
			logoutHandler.ServeHTTP(w, r)
		case AuthServiceGetCurrentHostProcedure:
			getCurrentHostHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AuthServiceClient is a client for the santa.v1.AuthService service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
	GetCurrentHost(context.Context, *connect.Request[api.GetCurrentHostRequest]) (*connect.Response[api.GetCurrentHostResponse], error)
}

// NewAuthServiceClient constructs a client for the santa.v1.AuthService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register:       connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		logout:         connect.NewClient[api.LogoutRequest, api.LogoutResponse](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
		getCurrentHost: connect.NewClient[api.GetCurrentHostRequest, api.GetCurrentHostResponse](httpClient, baseURL+AuthServiceGetCurrentHostProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	logout         *connect.Client[api.LogoutRequest, api.LogoutResponse]
	getCurrentHost *connect.Client[api.GetCurrentHostRequest, api.GetCurrentHostResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentHost(ctx context.Context, req *connect.Request[api.GetCurrentHostRequest]) (*connect.Response[api.GetCurrentHostResponse], error) {
	return c.getCurrentHost.CallUnary(ctx, req)
}
