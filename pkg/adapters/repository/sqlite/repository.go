package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wonwonleywon/roster-api/pkg/core/domain"
	"github.com/wonwonleywon/roster-api/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS artists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		instagram_url TEXT,
		sort_order REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_artists_sort_order ON artists(sort_order);

	CREATE TABLE IF NOT EXISTS admins (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
	`
	_, err := db.Exec(query)
	return err
}

// --- Artist Repository Implementation ---

func (r *SQLiteRepository) Create(ctx context.Context, artist *domain.Artist) error {
	query := `INSERT INTO artists (id, name, instagram_url, sort_order, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		artist.ID, artist.Name, artist.InstagramURL, artist.Order, artist.CreatedAt, artist.UpdatedAt)
	return err
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	query := `SELECT id, name, instagram_url, sort_order, created_at, updated_at
			  FROM artists WHERE id = ?`

	var a domain.Artist
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.InstagramURL, &a.Order, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, artist *domain.Artist) error {
	query := `UPDATE artists SET name = ?, instagram_url = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, artist.Name, artist.InstagramURL, artist.UpdatedAt, artist.ID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

// List returns the roster ascending by sort_order. Equal orders are broken
// by creation time, then id, so the sequence is stable for any insertion
// history.
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Artist, error) {
	query := `SELECT id, name, instagram_url, sort_order, created_at, updated_at
			  FROM artists
			  ORDER BY sort_order ASC, created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []domain.Artist
	for rows.Next() {
		var a domain.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.InstagramURL, &a.Order, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func (r *SQLiteRepository) UpdateOrder(ctx context.Context, id string, order float64) error {
	query := `UPDATE artists SET sort_order = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, order, time.Now(), id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.Artist, error) {
	return r.List(ctx)
}

// --- Admin Repository Implementation ---

func (r *SQLiteRepository) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	query := `INSERT INTO admins (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, admin.ID, admin.Username, admin.PasswordHash, admin.CreatedAt)
	return err
}

func (r *SQLiteRepository) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `SELECT id, username, password_hash, created_at FROM admins WHERE username = ?`

	var a domain.Admin
	err := r.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteRepository) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, password_hash, created_at FROM admins ORDER BY username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// --- Session Repository Implementation ---

func (r *SQLiteRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	query := `INSERT INTO sessions (token, username, created_at, expires_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, session.Token, session.Username, session.CreatedAt, session.ExpiresAt)
	return err
}

func (r *SQLiteRepository) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	query := `SELECT token, username, created_at, expires_at FROM sessions WHERE token = ?`

	var s domain.Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(&s.Token, &s.Username, &s.CreatedAt, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func (r *SQLiteRepository) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now())
	return err
}

func notFoundIfZero(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ensure interface compliance
var (
	_ ports.ArtistRepository  = (*SQLiteRepository)(nil)
	_ ports.AdminRepository   = (*SQLiteRepository)(nil)
	_ ports.SessionRepository = (*SQLiteRepository)(nil)
)
