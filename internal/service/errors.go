package service

import (
	"errors"
	"log/slog"
	"strconv"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/exchange"
)

// Error metadata keys attached to IncompleteSubmissions failures.
const (
	SubmittedHeader = "Santa-Submitted"
	TotalHeader     = "Santa-Total"
)

// toConnectError converts a domain error into a Connect error with the matching code.
// Unknown errors are logged and reported as internal.
func toConnectError(logger *slog.Logger, op string, err error) error {
	var incomplete *exchange.IncompleteSubmissionsError
	switch {
	case errors.As(err, &incomplete):
		connectErr := connect.NewError(connect.CodeFailedPrecondition, err)
		connectErr.Meta().Set(SubmittedHeader, strconv.Itoa(incomplete.Submitted))
		connectErr.Meta().Set(TotalHeader, strconv.Itoa(incomplete.Total))
		return connectErr
	case errors.Is(err, exchange.ErrInvalidName),
		errors.Is(err, exchange.ErrInvalidConcept),
		errors.Is(err, exchange.ErrNotInEvent),
		errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, exchange.ErrDuplicateName),
		errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, exchange.ErrEventNotFound),
		errors.Is(err, exchange.ErrParticipantNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, exchange.ErrEventClosed),
		errors.Is(err, exchange.ErrAlreadySubmitted),
		errors.Is(err, exchange.ErrEmptyRoster),
		errors.Is(err, exchange.ErrInsufficientParticipants):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, exchange.ErrUnauthorized):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	}

	logger.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}
