package service

import (
	"context"
	"net/http"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/dentaldesk/internal/middleware"
	"github.com/mmynk/dentaldesk/pkg/api"
	"github.com/mmynk/dentaldesk/pkg/api/apiconnect"
)

func TestAuth_RegisterLoginCurrentUser(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	reg, err := clients.anonAuth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "hygienist@clinic.test",
		DisplayName: "Jessica Lee",
		Password:    "floss-daily",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" || reg.Msg.User.Id == "" {
		t.Fatalf("expected token and user, got %+v", reg.Msg)
	}

	login, err := clients.anonAuth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "Hygienist@Clinic.test",
		Password: "floss-daily",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.User.Id != reg.Msg.User.Id {
		t.Errorf("login returned a different user: %s vs %s", login.Msg.User.Id, reg.Msg.User.Id)
	}

	// The signed-in client is the seeded front desk account.
	me, err := clients.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.Email != "desk@clinic.test" || me.Msg.User.DisplayName != "Front Desk" {
		t.Errorf("unexpected current user: %+v", me.Msg.User)
	}

	// A client using the token from Login sees the new account.
	hyg := apiconnect.NewAuthServiceClient(http.DefaultClient, clients.url, connect.WithInterceptors(middleware.BearerToken(login.Msg.Token)))
	me, err = hyg.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.DisplayName != "Jessica Lee" {
		t.Errorf("unexpected current user: %+v", me.Msg.User)
	}
}

func TestAuth_Errors(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{"duplicate email", func() error {
			_, err := clients.anonAuth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
				Email: "desk@clinic.test", DisplayName: "Again", Password: "long-enough",
			}))
			return err
		}, connect.CodeAlreadyExists},
		{"weak password", func() error {
			_, err := clients.anonAuth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
				Email: "new@clinic.test", DisplayName: "New", Password: "short",
			}))
			return err
		}, connect.CodeInvalidArgument},
		{"missing display name", func() error {
			_, err := clients.anonAuth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
				Email: "new@clinic.test", Password: "long-enough",
			}))
			return err
		}, connect.CodeInvalidArgument},
		{"wrong password", func() error {
			_, err := clients.anonAuth.Login(ctx, connect.NewRequest(&api.LoginRequest{
				Email: "desk@clinic.test", Password: "not-the-password",
			}))
			return err
		}, connect.CodeUnauthenticated},
		{"unknown user", func() error {
			_, err := clients.anonAuth.Login(ctx, connect.NewRequest(&api.LoginRequest{
				Email: "ghost@clinic.test", Password: "whatever1",
			}))
			return err
		}, connect.CodeUnauthenticated},
		{"current user without token", func() error {
			_, err := clients.anonAuth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
			return err
		}, connect.CodeUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.call(), tt.want)
		})
	}
}
