package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wonwonleywon/roster-api/pkg/config"
	"github.com/wonwonleywon/roster-api/pkg/core/domain"
	"github.com/wonwonleywon/roster-api/pkg/ports"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is the lifetime of a signed JWT in token mode.
const tokenTTL = 2 * time.Hour

// AuthService is the authentication gate in front of the admin routes.
// Mode "token" issues stateless HS256 JWTs; mode "session" stores an
// opaque token server-side and hands the browser only the cookie value.
type AuthService struct {
	admins     ports.AdminRepository
	sessions   ports.SessionRepository
	mode       string
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewAuthService(admins ports.AdminRepository, sessions ports.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		admins:     admins,
		sessions:   sessions,
		mode:       cfg.AuthMode,
		jwtSecret:  []byte(cfg.JWTSecret),
		sessionTTL: cfg.SessionTTL,
	}
}

func (s *AuthService) Mode() string { return s.mode }

// Login checks the username/password pair against the stored bcrypt hash
// and issues a proof of identity. An unknown username and a wrong password
// fail identically so the response never reveals which one it was.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", &domain.ValidationError{Field: "credentials", Reason: "username and password required"}
	}

	admin, err := s.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.Issue(ctx, admin.Username)
}

// Issue mints a proof for an identity that has already been verified
// (password login or the OAuth callback).
func (s *AuthService) Issue(ctx context.Context, username string) (string, error) {
	if s.mode == config.AuthModeSession {
		return s.issueSession(ctx, username)
	}
	return s.signToken(username)
}

// Verify checks a proof and returns the username behind it.
func (s *AuthService) Verify(ctx context.Context, proof string) (string, error) {
	if proof == "" {
		return "", domain.ErrUnauthorized
	}
	if s.mode == config.AuthModeSession {
		session, err := s.sessions.GetSession(ctx, proof)
		if err != nil {
			return "", err
		}
		if session == nil {
			return "", domain.ErrUnauthorized
		}
		if session.Expired(time.Now()) {
			// Lazy cleanup: expired rows are also swept periodically.
			_ = s.sessions.DeleteSession(ctx, proof)
			return "", domain.ErrUnauthorized
		}
		return session.Username, nil
	}
	return s.parseToken(proof)
}

// Logout destroys the server-side session. Token-mode proofs are stateless,
// so there is nothing to destroy and the call is a no-op. Idempotent either
// way: logging out an unknown token still succeeds.
func (s *AuthService) Logout(ctx context.Context, proof string) error {
	if s.mode != config.AuthModeSession || proof == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, proof)
}

// Register creates a new admin credential with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, &domain.ValidationError{Field: "credentials", Reason: "username and password required"}
	}

	existing, err := s.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.admins.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AuthService) issueSession(ctx context.Context, username string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(b)

	session := &domain.Session{
		Token:     token,
		Username:  username,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) signToken(username string) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) parseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

var _ ports.AuthService = (*AuthService)(nil)
