package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/dentaldesk/internal/auth"
	"github.com/mmynk/dentaldesk/internal/catalog"
	"github.com/mmynk/dentaldesk/internal/invoice"
	"github.com/mmynk/dentaldesk/internal/metrics"
	"github.com/mmynk/dentaldesk/internal/middleware"
	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/storage/sqlite"
	"github.com/mmynk/dentaldesk/internal/timegrid"
	"github.com/mmynk/dentaldesk/pkg/api/apiconnect"
)

// fixedNow is a Monday at 10:15, inside operating hours.
var fixedNow = time.Date(2024, 5, 6, 10, 15, 0, 0, time.UTC)

type testClients struct {
	schedule apiconnect.ScheduleServiceClient
	invoice  apiconnect.InvoiceServiceClient
	patient  apiconnect.PatientServiceClient
	auth     apiconnect.AuthServiceClient

	// anonymous clients send no token
	anonSchedule apiconnect.ScheduleServiceClient
	anonAuth     apiconnect.AuthServiceClient

	metrics *metrics.Metrics
	url     string
}

// setupTestServer starts every service behind the real auth interceptor, backed by a
// seeded temp SQLite database, and returns clients signed in as a staff member.
func setupTestServer(t *testing.T) (*testClients, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Seed(context.Background(), catalog.Default()); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store, bcrypt.MinCost)

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager, apiconnect.PublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewScheduleServiceHandler(NewScheduleService(store, ScheduleOptions{
		Grid:            timegrid.DefaultGrid(),
		Location:        time.UTC,
		RefreshInterval: 10 * time.Millisecond,
		Now:             func() time.Time { return fixedNow },
	}, m), interceptors))
	mux.Handle(apiconnect.NewInvoiceServiceHandler(NewInvoiceService(store, store, invoice.DefaultCoverageRate, m), interceptors))
	mux.Handle(apiconnect.NewPatientServiceHandler(NewPatientService(store), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), interceptors))

	server := httptest.NewServer(mux)

	staff := models.NewStaffUser("desk@clinic.test", "Front Desk", "unused")
	if err := store.CreateUser(context.Background(), staff); err != nil {
		t.Fatalf("failed to create staff user: %v", err)
	}
	token, err := jwtManager.Generate(staff)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	signedIn := connect.WithInterceptors(middleware.BearerToken(token))

	clients := &testClients{
		schedule:     apiconnect.NewScheduleServiceClient(http.DefaultClient, server.URL, signedIn),
		invoice:      apiconnect.NewInvoiceServiceClient(http.DefaultClient, server.URL, signedIn),
		patient:      apiconnect.NewPatientServiceClient(http.DefaultClient, server.URL, signedIn),
		auth:         apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL, signedIn),
		anonSchedule: apiconnect.NewScheduleServiceClient(http.DefaultClient, server.URL),
		anonAuth:     apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		metrics:      m,
		url:          server.URL,
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return clients, cleanup
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}
