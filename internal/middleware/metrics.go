package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/internal/metrics"
)

// MetricsInterceptor records the count and latency of every RPC by procedure and code.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			m.ObserveRPC(req.Spec().Procedure, metrics.Code(err), time.Since(start))
			return resp, err
		}
	}
}
