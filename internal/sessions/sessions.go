// Package sessions stores refresh-token sessions in a Badger key-value store.
// Entries carry a TTL matching the refresh token lifetime, so expired sessions
// are reclaimed by Badger without a cleanup job.
package sessions

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gameshubapp/gameshub-server/internal/domain"
)

// Key prefixes. The token and user keys are secondary indexes pointing at the
// primary session record.
const (
	sessionPrefix        = "session:"
	sessionByTokenPrefix = "idx:sessions:token:"
	sessionByUserPrefix  = "idx:sessions:user:"
)

// Sentinel errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Store wraps a Badger database holding refresh sessions.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens the session store at the given path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("session store opened", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create stores a new session together with its token and user indexes.
func (s *Store) Create(_ context.Context, session *domain.Session) error {
	key := []byte(sessionPrefix + session.ID)
	tokenKey := []byte(sessionByTokenPrefix + session.RefreshTokenHash)
	userIndexKey := []byte(sessionByUserPrefix + session.UserID + ":" + session.ID)

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		if err := txn.SetEntry(badger.NewEntry(key, data).WithTTL(ttl)); err != nil {
			return err
		}
		if err := txn.SetEntry(badger.NewEntry(tokenKey, []byte(session.ID)).WithTTL(ttl)); err != nil {
			return err
		}
		return txn.SetEntry(badger.NewEntry(userIndexKey, []byte{}).WithTTL(ttl))
	})
}

// Get retrieves a session by ID.
func (s *Store) Get(_ context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	if err := s.get([]byte(sessionPrefix+id), &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Belt and suspenders: the TTL usually reclaims expired entries first.
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// GetByRefreshToken retrieves a session by its refresh token hash.
// This is the lookup used during the token refresh flow.
func (s *Store) GetByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	tokenKey := []byte(sessionByTokenPrefix + tokenHash)

	var sessionID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			sessionID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("lookup session by token: %w", err)
	}

	return s.Get(ctx, sessionID)
}

// Update rewrites an existing session, moving the token index when the
// refresh token was rotated.
func (s *Store) Update(ctx context.Context, session *domain.Session) error {
	oldSession, err := s.Get(ctx, session.ID)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	key := []byte(sessionPrefix + session.ID)

	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		if err := txn.SetEntry(badger.NewEntry(key, data).WithTTL(ttl)); err != nil {
			return err
		}

		if oldSession.RefreshTokenHash != session.RefreshTokenHash {
			oldTokenKey := []byte(sessionByTokenPrefix + oldSession.RefreshTokenHash)
			if err := txn.Delete(oldTokenKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			newTokenKey := []byte(sessionByTokenPrefix + session.RefreshTokenHash)
			if err := txn.SetEntry(badger.NewEntry(newTokenKey, []byte(session.ID)).WithTTL(ttl)); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a session and its indexes (logout).
// Deleting a session that is already gone is not an error.
func (s *Store) Delete(_ context.Context, sessionID string) error {
	key := []byte(sessionPrefix + sessionID)

	// Get session data (even if expired) to clean up indexes.
	var session domain.Session
	if err := s.get(key, &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Already gone
		}
		return fmt.Errorf("get session for deletion: %w", err)
	}

	tokenKey := []byte(sessionByTokenPrefix + session.RefreshTokenHash)
	userIndexKey := []byte(sessionByUserPrefix + session.UserID + ":" + sessionID)

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key); err != nil {
			return err
		}
		if err := txn.Delete(tokenKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Delete(userIndexKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// ListForUser returns all live sessions belonging to a user.
func (s *Store) ListForUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	prefix := []byte(sessionByUserPrefix + userID + ":")
	var sessions []*domain.Session

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false // We only need keys

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			// Key format: idx:sessions:user:<userID>:<sessionID>
			key := string(it.Item().Key())
			sessionID := key[strings.LastIndex(key, ":")+1:]

			session, err := s.Get(ctx, sessionID)
			if err != nil {
				if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrSessionNotFound) {
					continue // Skip expired/missing sessions
				}
				return err
			}

			sessions = append(sessions, session)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}

	return sessions, nil
}

// DeleteAllForUser removes every session belonging to a user.
// Used when a password changes to force re-authentication everywhere.
func (s *Store) DeleteAllForUser(ctx context.Context, userID string) error {
	sessions, err := s.ListForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list sessions for deletion: %w", err)
	}

	for _, session := range sessions {
		if err := s.Delete(ctx, session.ID); err != nil {
			return fmt.Errorf("delete session %s: %w", session.ID, err)
		}
	}

	return nil
}

// get reads and unmarshals a single key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}
