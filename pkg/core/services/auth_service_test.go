package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wonwonleywon/roster-api/pkg/config"
	"github.com/wonwonleywon/roster-api/pkg/core/domain"
)

type fakeAdminRepo struct {
	admins map[string]*domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (f *fakeAdminRepo) CreateAdmin(_ context.Context, a *domain.Admin) error {
	f.admins[a.Username] = a
	return nil
}

func (f *fakeAdminRepo) GetAdminByUsername(_ context.Context, username string) (*domain.Admin, error) {
	a, ok := f.admins[username]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (f *fakeAdminRepo) ListAdmins(_ context.Context) ([]domain.Admin, error) {
	var out []domain.Admin
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, s *domain.Session) error {
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeSessionRepo) GetSession(_ context.Context, token string) (*domain.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteExpiredSessions(_ context.Context) error {
	for token, s := range f.sessions {
		if s.Expired(time.Now()) {
			delete(f.sessions, token)
		}
	}
	return nil
}

func tokenModeService() (*AuthService, *fakeAdminRepo) {
	admins := newFakeAdminRepo()
	cfg := &config.Config{AuthMode: config.AuthModeToken, JWTSecret: "testservlet"}
	return NewAuthService(admins, newFakeSessionRepo(), cfg), admins
}

func sessionModeService() (*AuthService, *fakeSessionRepo) {
	sessions := newFakeSessionRepo()
	cfg := &config.Config{AuthMode: config.AuthModeSession, JWTSecret: "testservlet", SessionTTL: time.Hour}
	return NewAuthService(newFakeAdminRepo(), sessions, cfg), sessions
}

func TestLogin(t *testing.T) {
	svc, _ := tokenModeService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin", "hunter2"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "admin", password: "hunter2"},
		{name: "wrong password", username: "admin", password: "hunter3", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "hunter2", wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proof, err := svc.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				// Wrong password and unknown username must be indistinguishable.
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			username, err := svc.Verify(ctx, proof)
			if err != nil {
				t.Fatalf("Verify failed on fresh proof: %v", err)
			}
			if username != "admin" {
				t.Errorf("Verify returned %q, want %q", username, "admin")
			}
		})
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := tokenModeService()

	for _, creds := range [][2]string{{"", "pw"}, {"admin", ""}, {"", ""}} {
		_, err := svc.Login(context.Background(), creds[0], creds[1])
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Login(%q, %q): expected ValidationError, got %v", creds[0], creds[1], err)
		}
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	svc, _ := tokenModeService()
	ctx := context.Background()

	expired := signTestToken(t, "testservlet", "admin", -time.Hour)
	wrongKey := signTestToken(t, "other-secret", "admin", time.Hour)

	tests := []struct {
		name  string
		proof string
	}{
		{name: "empty", proof: ""},
		{name: "garbage", proof: "not-a-jwt"},
		{name: "expired", proof: expired},
		{name: "wrong signing key", proof: wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(ctx, tt.proof); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, admins := tokenModeService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "admin", "other"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if admins.admins["admin"].PasswordHash == "pw" {
		t.Error("password stored in the clear")
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc, sessions := sessionModeService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin", "hunter2"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	proof, err := svc.Login(ctx, "admin", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if username, err := svc.Verify(ctx, proof); err != nil || username != "admin" {
		t.Fatalf("Verify = (%q, %v), want (admin, nil)", username, err)
	}

	if err := svc.Logout(ctx, proof); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.Verify(ctx, proof); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("session should be gone after logout, got %v", err)
	}

	// Logout is idempotent.
	if err := svc.Logout(ctx, proof); err != nil {
		t.Errorf("second Logout failed: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Errorf("expected no sessions left, found %d", len(sessions.sessions))
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	svc, sessions := sessionModeService()
	ctx := context.Background()

	sessions.sessions["stale"] = &domain.Session{
		Token:     "stale",
		Username:  "admin",
		CreatedAt: time.Now().Add(-3 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	if _, err := svc.Verify(ctx, "stale"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, ok := sessions.sessions["stale"]; ok {
		t.Error("expired session should be deleted on verification")
	}
}

func signTestToken(t *testing.T, secret, subject string, ttl time.Duration) string {
	t.Helper()
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}
