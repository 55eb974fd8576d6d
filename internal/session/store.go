// Package session persists the small amount of durable client state a
// storefront session owns: the cart id, the customer access token and
// the wishlist. It is the Go stand-in for browser local storage.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Storage keys.
const (
	KeyCartID      = "cart_id"
	KeyAccessToken = "customer_token"
	KeyWishlist    = "wishlist"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`

// Store is a SQLite-backed key/value session store. Writes happen
// synchronously right after the matching in-memory mutation.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("session db path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init session schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing handle; the caller owns the schema. Used
// by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session key %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_state (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("write session key %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete session key %s: %w", key, err)
	}
	return nil
}

// CartID returns the persisted cart id, or "" when none exists.
func (s *Store) CartID(ctx context.Context) (string, error) {
	return s.get(ctx, KeyCartID)
}

// SetCartID persists the cart id.
func (s *Store) SetCartID(ctx context.Context, cartID string) error {
	return s.set(ctx, KeyCartID, cartID)
}

// AccessToken returns the persisted customer token, or "" when signed
// out.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyAccessToken)
}

// SetAccessToken persists the customer token.
func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.set(ctx, KeyAccessToken, token)
}

// ClearAccessToken removes the persisted customer token.
func (s *Store) ClearAccessToken(ctx context.Context) error {
	return s.delete(ctx, KeyAccessToken)
}

// Wishlist returns the persisted wishlist. Corrupt JSON is discarded
// and reported as an empty list, never as a failure.
func (s *Store) Wishlist(ctx context.Context) ([]string, error) {
	raw, err := s.get(ctx, KeyWishlist)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

// SetWishlist persists the wishlist as a JSON array of product ids.
func (s *Store) SetWishlist(ctx context.Context, productIDs []string) error {
	if productIDs == nil {
		productIDs = []string{}
	}
	raw, err := json.Marshal(productIDs)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	return s.set(ctx, KeyWishlist, string(raw))
}
