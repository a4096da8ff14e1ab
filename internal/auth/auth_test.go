package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/storage"
)

type memUsers struct {
	byEmail map[string]*models.StaffUser
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*models.StaffUser{}}
}

func (m *memUsers) CreateUser(_ context.Context, u *models.StaffUser) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.StaffUser, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.StaffUser, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := models.NewStaffUser("desk@clinic.test", "Desk", "")

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := models.NewStaffUser("desk@clinic.test", "Desk", "")
	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	expired := NewJWTManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name    string
		manager *JWTManager
		token   string
	}{
		{"wrong secret", NewJWTManager("other-secret", time.Hour), token},
		{"garbage", m, "not-a-token"},
		{"expired", m, old},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.manager.Validate(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemUsers(), bcrypt.MinCost)

	user, err := a.Register(ctx, "  Desk@Clinic.test ", "", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "desk@clinic.test" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}
	if user.DisplayName != "desk@clinic.test" {
		t.Errorf("Expected display name to default to email, got %q", user.DisplayName)
	}

	t.Run("duplicate email", func(t *testing.T) {
		if _, err := a.Register(ctx, "desk@clinic.test", "Desk", "another-pass"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		if _, err := a.Register(ctx, "new@clinic.test", "New", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		if _, err := a.Register(ctx, " ", "New", "long-enough"); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("Expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "DESK@clinic.test", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("Expected %s, got %s", user.ID, got.ID)
		}
	})

	t.Run("wrong password and unknown user", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "desk@clinic.test", "wrong-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := a.Authenticate(ctx, "ghost@clinic.test", "whatever1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}
