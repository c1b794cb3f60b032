package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gameshubapp/gameshub-server/internal/domain"
)

// ResetTokenService generates and verifies stateless password-reset tokens.
//
// Tokens are self-invalidating: the HMAC covers the account's password hash
// and last-login time, so completing a reset (or any password change) makes
// every previously issued token fail verification without server-side state.
type ResetTokenService struct {
	key      []byte
	validity time.Duration
}

// NewResetTokenService creates a reset token service.
// The key should be the server's auth key; validity bounds token age.
func NewResetTokenService(key []byte, validity time.Duration) *ResetTokenService {
	return &ResetTokenService{key: key, validity: validity}
}

// MakeToken creates a password-reset token for the account.
// Format: <base36 unix seconds>-<hmac-sha256 hex>.
func (s *ResetTokenService) MakeToken(account *domain.Account) string {
	return s.makeTokenAt(account, time.Now())
}

func (s *ResetTokenService) makeTokenAt(account *domain.Account, now time.Time) string {
	ts := now.Unix()
	return strconv.FormatInt(ts, 36) + "-" + s.signature(account, ts)
}

// CheckToken verifies a password-reset token against the account's current state.
// Returns false for malformed, expired, or forged tokens, and for tokens issued
// before the account's password or last-login time last changed.
func (s *ResetTokenService) CheckToken(account *domain.Account, token string) bool {
	if account == nil || token == "" {
		return false
	}

	tsPart, sigPart, ok := strings.Cut(token, "-")
	if !ok {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil || ts < 0 {
		return false
	}

	expected := s.signature(account, ts)
	if subtle.ConstantTimeCompare([]byte(sigPart), []byte(expected)) != 1 {
		return false
	}

	// Timestamp is authenticated by the HMAC above, so this age check is trustworthy.
	age := time.Since(time.Unix(ts, 0))
	return age >= 0 && age <= s.validity
}

// signature computes the HMAC binding the token to the account's mutable state.
func (s *ResetTokenService) signature(account *domain.Account, ts int64) string {
	var lastLogin string
	if account.LastLoginAt != nil {
		lastLogin = account.LastLoginAt.UTC().Format(time.RFC3339Nano)
	}

	payload := fmt.Sprintf("%s|%s|%s|%d", account.ID, account.PasswordHash, lastLogin, ts)

	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
