package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/lxxjn0/jwp-refactoring/pkg/api"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, staff ID, duration, and any error codes/messages.
// Rejected operations carry their failure kind.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			staffID := GetStaffID(ctx) // empty if auth is off or the call is public
			duration := time.Since(start).Milliseconds()
			if err == nil {
				slog.Info("RPC ok",
					"procedure", procedure,
					"staff_id", staffID,
					"duration_ms", duration,
				)
				return resp, nil
			}

			var connectErr *connect.Error
			if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
				slog.Warn("RPC rejected",
					"procedure", procedure,
					"code", connectErr.Code(),
					"kind", connectErr.Meta().Get(api.ErrorKindHeader),
					"error", connectErr.Message(),
					"staff_id", staffID,
					"duration_ms", duration,
				)
			} else {
				slog.Error("RPC error",
					"procedure", procedure,
					"error", err,
					"staff_id", staffID,
					"duration_ms", duration,
				)
			}
			return resp, err
		}
	}
}
