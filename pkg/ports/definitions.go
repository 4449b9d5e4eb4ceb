package ports

import (
	"context"

	"github.com/wonwonleywon/roster-api/pkg/core/domain"
)

// ArtistRepository defines storage operations for roster entries.
// GetByID returns (nil, nil) when no row matches; Delete and UpdateOrder
// return domain.ErrNotFound for an unknown id.
type ArtistRepository interface {
	Create(ctx context.Context, artist *domain.Artist) error
	GetByID(ctx context.Context, id string) (*domain.Artist, error)
	Update(ctx context.Context, artist *domain.Artist) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Artist, error)
	UpdateOrder(ctx context.Context, id string, order float64) error
	Dump(ctx context.Context) ([]domain.Artist, error) // For migration
}

// AdminRepository defines storage operations for admin credentials.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *domain.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
}

// SessionRepository defines storage for server-side login sessions
// (session auth mode only).
type SessionRepository interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) error
}

// ArtistService defines the business logic over the ordered roster.
type ArtistService interface {
	ListArtists(ctx context.Context) ([]domain.Artist, error)
	AddArtist(ctx context.Context, name, instagramURL string, order float64) (*domain.Artist, error)
	UpdateArtist(ctx context.Context, id, name, instagramURL string) (*domain.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	Reorder(ctx context.Context, pairs []domain.ReorderPair) error
}

// AuthService is the authentication gate. Login verifies credentials and
// issues a proof of identity (a signed JWT in token mode, an opaque session
// token in session mode); Verify checks a proof and returns the admin
// username behind it. Issue mints a proof for an already-verified identity
// (used by the OAuth callback).
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, proof string) (string, error)
	Logout(ctx context.Context, proof string) error
	Register(ctx context.Context, username, password string) (*domain.Admin, error)
	Issue(ctx context.Context, username string) (string, error)
	Mode() string
}
