package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/dentaldesk/internal/auth"
	"github.com/mmynk/dentaldesk/internal/catalog"
	"github.com/mmynk/dentaldesk/internal/config"
	"github.com/mmynk/dentaldesk/internal/metrics"
	"github.com/mmynk/dentaldesk/internal/middleware"
	"github.com/mmynk/dentaldesk/internal/otelx"
	"github.com/mmynk/dentaldesk/internal/service"
	"github.com/mmynk/dentaldesk/internal/storage"
	redisstore "github.com/mmynk/dentaldesk/internal/storage/redis"
	"github.com/mmynk/dentaldesk/internal/storage/sqlite"
	"github.com/mmynk/dentaldesk/pkg/api/apiconnect"
	"github.com/mmynk/dentaldesk/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	logging.Configure(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, cfg.Telemetry)
	if err != nil {
		// Tracing is optional; keep serving without it.
		slog.Error("OpenTelemetry setup failed", "error", err)
		otelShutdown = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("OpenTelemetry shutdown failed", "error", err)
		}
	}()

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to load clinic timezone: %w", err)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.DBPath)

	if cfg.Storage.SeedOnStart {
		if err := store.Seed(ctx, catalog.Default()); err != nil {
			return fmt.Errorf("failed to seed storage: %w", err)
		}
		slog.Info("Reference data seeded")
	}

	var carts storage.CartStore = store
	if cfg.Storage.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Storage.RedisAddr, err)
		}
		carts = redisstore.NewCartStore(rdb, cfg.Storage.CartTTL, "")
		slog.Info("Cart sessions stored in redis", "redis_addr", cfg.Storage.RedisAddr, "ttl", cfg.Storage.CartTTL)
	}

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store, cfg.Auth.BcryptCost)

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager, apiconnect.PublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewScheduleServiceHandler(service.NewScheduleService(store, service.ScheduleOptions{
		Grid:            cfg.TimeGrid(),
		Style:           cfg.Style(),
		Location:        loc,
		RefreshInterval: cfg.Schedule.RefreshInterval,
	}, m), interceptors))
	mux.Handle(apiconnect.NewInvoiceServiceHandler(service.NewInvoiceService(store, carts, cfg.CoverageRate(), m), interceptors))
	mux.Handle(apiconnect.NewPatientServiceHandler(service.NewPatientService(store), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, store, slog.Default()), interceptors))

	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := loggingMiddleware(corsMiddleware(cfg.Server.AllowedOrigins, mux))
	handler = otelhttp.NewHandler(handler, "dentaldesk")

	srv := newServer(ctx, cfg.Server.Port, handler)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

// newServer wraps handler with h2c for HTTP/2 without TLS (required for Connect
// streaming). Requests inherit ctx, so open WatchNowMarker streams end when it is cancelled.
func newServer(ctx context.Context, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for the dashboard running on another origin.
// An allow list containing "*" admits every origin.
func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := slices.Contains(allowedOrigins, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{
			"Content-Type", "Authorization", "Connect-Protocol-Version", "Connect-Timeout-Ms",
		}, ", "))
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
