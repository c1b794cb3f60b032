package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gameshubapp/gameshub-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeTestSession(id, userID, tokenHash string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		CreatedAt:        now,
		ExpiresAt:        now.Add(time.Hour),
	}
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := makeTestSession("sess-1", "user-1", "hash-abc")
	if err := s.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID: got %q, want %q", got.UserID, "user-1")
	}
	if got.RefreshTokenHash != "hash-abc" {
		t.Errorf("RefreshTokenHash: got %q, want %q", got.RefreshTokenHash, "hash-abc")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Get(context.Background(), "sess-missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCreate_AlreadyExpired(t *testing.T) {
	s := newTestStore(t)

	session := makeTestSession("sess-1", "user-1", "hash-abc")
	session.ExpiresAt = time.Now().Add(-time.Minute)
	if err := s.Create(context.Background(), session); err == nil {
		t.Error("expected error creating an already expired session")
	}
}

func TestGetByRefreshToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := makeTestSession("sess-1", "user-1", "hash-abc")
	if err := s.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.GetByRefreshToken(ctx, "hash-abc")
	if err != nil {
		t.Fatalf("GetByRefreshToken: %v", err)
	}
	if got.ID != "sess-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "sess-1")
	}

	if _, err := s.GetByRefreshToken(ctx, "hash-unknown"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdate_TokenRotation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := makeTestSession("sess-1", "user-1", "hash-old")
	if err := s.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	session.RefreshTokenHash = "hash-new"
	session.ExpiresAt = time.Now().Add(2 * time.Hour)
	if err := s.Update(ctx, session); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// New token resolves to the session.
	got, err := s.GetByRefreshToken(ctx, "hash-new")
	if err != nil {
		t.Fatalf("GetByRefreshToken(new): %v", err)
	}
	if got.ID != "sess-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "sess-1")
	}

	// Old token no longer resolves.
	if _, err := s.GetByRefreshToken(ctx, "hash-old"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for rotated token, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := makeTestSession("sess-1", "user-1", "hash-abc")
	if err := s.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.Get(ctx, "sess-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
	if _, err := s.GetByRefreshToken(ctx, "hash-abc"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected token index cleaned up, got %v", err)
	}

	// Deleting again is fine.
	if err := s.Delete(ctx, "sess-1"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestListForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"sess-a", "sess-b"} {
		if err := s.Create(ctx, makeTestSession(id, "user-1", "hash-"+string(rune('a'+i)))); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	if err := s.Create(ctx, makeTestSession("sess-x", "user-2", "hash-x")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	sessions, err := s.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}
	for _, session := range sessions {
		if session.UserID != "user-1" {
			t.Errorf("unexpected session for %q", session.UserID)
		}
	}
}

func TestDeleteAllForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, makeTestSession("sess-a", "user-1", "hash-a")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, makeTestSession("sess-b", "user-1", "hash-b")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, makeTestSession("sess-x", "user-2", "hash-x")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.DeleteAllForUser(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteAllForUser: %v", err)
	}

	sessions, err := s.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected no sessions for user-1, got %d", len(sessions))
	}

	// Other users are untouched.
	if _, err := s.Get(ctx, "sess-x"); err != nil {
		t.Errorf("sess-x should survive: %v", err)
	}
}
