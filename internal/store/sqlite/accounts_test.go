package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gameshubapp/gameshub-server/internal/domain"
	"github.com/gameshubapp/gameshub-server/internal/store"
)

// makeTestAccount creates a domain.Account with sensible defaults for testing.
func makeTestAccount(id, username, email string) (*domain.Account, *domain.Profile) {
	now := time.Now()
	account := &domain.Account{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$fakehashfortest",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &domain.Profile{
		ID:        "prof-" + id,
		AccountID: id,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return account, profile
}

func TestCreateAndGetAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account, profile := makeTestAccount("user-1", "Alice", "Alice@Example.com")
	if err := s.CreateAccount(ctx, account, profile); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	got, err := s.GetAccount(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.Username != "Alice" {
		t.Errorf("Username: got %q, want %q", got.Username, "Alice")
	}
	if got.Email != "Alice@Example.com" {
		t.Errorf("Email: got %q, want %q", got.Email, "Alice@Example.com")
	}
	if got.PasswordHash != account.PasswordHash {
		t.Errorf("PasswordHash: got %q, want %q", got.PasswordHash, account.PasswordHash)
	}
	if got.LastLoginAt != nil {
		t.Errorf("LastLoginAt: got %v, want nil", got.LastLoginAt)
	}

	// The profile must exist in the same moment the account does.
	p, err := s.GetProfileByAccount(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfileByAccount: %v", err)
	}
	if p.AccountID != "user-1" {
		t.Errorf("Profile.AccountID: got %q, want %q", p.AccountID, "user-1")
	}
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a1, p1 := makeTestAccount("user-1", "alice", "alice@example.com")
	if err := s.CreateAccount(ctx, a1, p1); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	// Same email, different case.
	a2, p2 := makeTestAccount("user-2", "bob", "ALICE@example.com")
	err := s.CreateAccount(ctx, a2, p2)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Failed create must not leave an orphaned profile behind.
	if _, err := s.GetProfileByAccount(ctx, "user-2"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected no profile for failed account, got %v", err)
	}
}

func TestCreateAccount_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a1, p1 := makeTestAccount("user-1", "alice", "alice@example.com")
	if err := s.CreateAccount(ctx, a1, p1); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	a2, p2 := makeTestAccount("user-2", "Alice", "other@example.com")
	if err := s.CreateAccount(ctx, a2, p2); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetAccountByEmail_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account, profile := makeTestAccount("user-1", "alice", "Alice@Example.com")
	if err := s.CreateAccount(ctx, account, profile); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	got, err := s.GetAccountByEmail(ctx, "alice@EXAMPLE.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "user-1")
	}
}

func TestGetAccountByUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account, profile := makeTestAccount("user-1", "Alice", "alice@example.com")
	if err := s.CreateAccount(ctx, account, profile); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	got, err := s.GetAccountByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetAccountByUsername: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "user-1")
	}

	if _, err := s.GetAccountByUsername(ctx, "nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account, profile := makeTestAccount("user-1", "alice", "alice@example.com")
	if err := s.CreateAccount(ctx, account, profile); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	account.FirstName = "Alicia"
	account.Email = "alicia@example.com"
	account.UpdatedAt = time.Now()
	if err := s.UpdateAccount(ctx, account); err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}

	got, err := s.GetAccount(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.FirstName != "Alicia" {
		t.Errorf("FirstName: got %q, want %q", got.FirstName, "Alicia")
	}
	if got.Email != "alicia@example.com" {
		t.Errorf("Email: got %q, want %q", got.Email, "alicia@example.com")
	}
}

func TestUpdateAccount_EmailCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a1, p1 := makeTestAccount("user-1", "alice", "alice@example.com")
	a2, p2 := makeTestAccount("user-2", "bob", "bob@example.com")
	if err := s.CreateAccount(ctx, a1, p1); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := s.CreateAccount(ctx, a2, p2); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	a2.Email = "Alice@example.com"
	if err := s.UpdateAccount(ctx, a2); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestTouchLastLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account, profile := makeTestAccount("user-1", "alice", "alice@example.com")
	if err := s.CreateAccount(ctx, account, profile); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	at := time.Now()
	if err := s.TouchLastLogin(ctx, "user-1", at); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}

	got, err := s.GetAccount(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.LastLoginAt == nil {
		t.Fatal("LastLoginAt: got nil after TouchLastLogin")
	}
	if !got.LastLoginAt.Equal(at) {
		t.Errorf("LastLoginAt: got %v, want %v", got.LastLoginAt, at)
	}

	if err := s.TouchLastLogin(ctx, "user-missing", at); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account, profile := makeTestAccount("user-1", "alice", "alice@example.com")
	if err := s.CreateAccount(ctx, account, profile); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	profile.Bio = "Soulslike enjoyer"
	profile.AvatarURL = "https://cdn.example.com/avatars/alice.png"
	profile.UpdatedAt = time.Now()
	if err := s.UpdateProfile(ctx, profile); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := s.GetProfileByAccount(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfileByAccount: %v", err)
	}
	if got.Bio != "Soulslike enjoyer" {
		t.Errorf("Bio: got %q, want %q", got.Bio, "Soulslike enjoyer")
	}
	if got.AvatarURL != profile.AvatarURL {
		t.Errorf("AvatarURL: got %q, want %q", got.AvatarURL, profile.AvatarURL)
	}
}
