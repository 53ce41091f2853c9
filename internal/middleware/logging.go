package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs one line per RPC with procedure, host, code and duration.
// Client errors log at warn, internal and non-Connect errors at error.
// Install it after the auth interceptor so the host ID is known.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("host_id", GetHostID(ctx)), // empty if pre-auth
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}

			level, msg := slog.LevelInfo, "RPC ok"
			if err != nil {
				msg = "RPC error"
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					level = slog.LevelWarn
					attrs = append(attrs,
						slog.String("code", connectErr.Code().String()),
						slog.String("error", connectErr.Message()),
					)
				} else {
					level = slog.LevelError
					attrs = append(attrs, slog.Any("error", err))
				}
			}
			logger.LogAttrs(ctx, level, msg, attrs...)

			return resp, err
		}
	}
}
