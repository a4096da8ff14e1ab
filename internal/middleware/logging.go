package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, user ID, duration, and any error codes/messages.
// Register it inside the auth interceptor so the user ID is known.
func LoggingInterceptor() connect.Interceptor {
	return loggingInterceptor{}
}

type loggingInterceptor struct{}

func (loggingInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		resp, err := next(ctx, req)
		logRPC(ctx, req.Spec().Procedure, start, err)
		return resp, err
	}
}

func (loggingInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (loggingInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		slog.Debug("Stream opened", "procedure", conn.Spec().Procedure, "user_id", GetUserID(ctx))
		err := next(ctx, conn)
		logRPC(ctx, conn.Spec().Procedure, start, err)
		return err
	}
}

func logRPC(ctx context.Context, procedure string, start time.Time, err error) {
	userID := GetUserID(ctx) // empty if pre-auth
	duration := time.Since(start).Milliseconds()

	if err == nil {
		slog.Info("RPC ok",
			"procedure", procedure,
			"user_id", userID,
			"duration_ms", duration,
		)
		return
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		slog.Warn("RPC error",
			"procedure", procedure,
			"code", connectErr.Code(),
			"error", connectErr.Message(),
			"user_id", userID,
			"duration_ms", duration,
		)
		return
	}
	slog.Error("RPC error",
		"procedure", procedure,
		"error", err,
		"user_id", userID,
		"duration_ms", duration,
	)
}
