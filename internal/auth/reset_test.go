package auth

import (
	"testing"
	"time"

	"github.com/gameshubapp/gameshub-server/internal/domain"
)

func resetTestAccount() *domain.Account {
	login := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return &domain.Account{
		ID:           "user-reset1",
		Username:     "sam",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		LastLoginAt:  &login,
	}
}

func TestResetToken_RoundTrip(t *testing.T) {
	svc := NewResetTokenService([]byte("test-signing-key"), 72*time.Hour)
	account := resetTestAccount()

	token := svc.MakeToken(account)
	if !svc.CheckToken(account, token) {
		t.Error("freshly minted token should verify")
	}
}

func TestResetToken_Tampered(t *testing.T) {
	svc := NewResetTokenService([]byte("test-signing-key"), 72*time.Hour)
	account := resetTestAccount()

	token := svc.MakeToken(account)
	if svc.CheckToken(account, token+"x") {
		t.Error("tampered token should not verify")
	}
	if svc.CheckToken(account, "garbage") {
		t.Error("malformed token should not verify")
	}
	if svc.CheckToken(account, "") {
		t.Error("empty token should not verify")
	}
}

func TestResetToken_Expired(t *testing.T) {
	svc := NewResetTokenService([]byte("test-signing-key"), 72*time.Hour)
	account := resetTestAccount()

	token := svc.makeTokenAt(account, time.Now().Add(-73*time.Hour))
	if svc.CheckToken(account, token) {
		t.Error("token older than the validity window should not verify")
	}

	// Still inside the window.
	token = svc.makeTokenAt(account, time.Now().Add(-71*time.Hour))
	if !svc.CheckToken(account, token) {
		t.Error("token inside the validity window should verify")
	}
}

func TestResetToken_InvalidatedByPasswordChange(t *testing.T) {
	svc := NewResetTokenService([]byte("test-signing-key"), 72*time.Hour)
	account := resetTestAccount()

	token := svc.MakeToken(account)

	account.PasswordHash = "$argon2id$v=19$m=65536,t=3,p=4$bmV3c2FsdA$bmV3aGFzaA"
	if svc.CheckToken(account, token) {
		t.Error("token should stop verifying after the password changes")
	}
}

func TestResetToken_InvalidatedByLogin(t *testing.T) {
	svc := NewResetTokenService([]byte("test-signing-key"), 72*time.Hour)
	account := resetTestAccount()

	token := svc.MakeToken(account)

	later := account.LastLoginAt.Add(time.Hour)
	account.LastLoginAt = &later
	if svc.CheckToken(account, token) {
		t.Error("token should stop verifying after a new login")
	}
}

func TestResetToken_WrongAccount(t *testing.T) {
	svc := NewResetTokenService([]byte("test-signing-key"), 72*time.Hour)
	account := resetTestAccount()
	other := resetTestAccount()
	other.ID = "user-other"

	token := svc.MakeToken(account)
	if svc.CheckToken(other, token) {
		t.Error("token minted for one account should not verify for another")
	}
}
