package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gameshubapp/gameshub-server/internal/auth"
	"github.com/gameshubapp/gameshub-server/internal/domain"
	domainerrors "github.com/gameshubapp/gameshub-server/internal/errors"
	"github.com/gameshubapp/gameshub-server/internal/mail"
	"github.com/gameshubapp/gameshub-server/internal/store"
)

// resetRequestMessage is returned for every password-reset request, match or
// not, so the endpoint can't be used to probe which emails have accounts.
const resetRequestMessage = "If an account with this email exists, a password reset link was sent. Remember to check your spam/junk folder."

// AccountService handles profile reads/updates and the password-reset flow.
type AccountService struct {
	store       AccountStore
	sessions    SessionStore
	resetTokens *auth.ResetTokenService
	sender      mail.Sender
	frontendURL string
	logger      *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(
	store AccountStore,
	sessionStore SessionStore,
	resetTokens *auth.ResetTokenService,
	sender mail.Sender,
	frontendURL string,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		store:       store,
		sessions:    sessionStore,
		resetTokens: resetTokens,
		sender:      sender,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// ProfileView merges account fields with the one-to-one profile.
type ProfileView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	LastLogin *time.Time `json:"last_login_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UpdateProfileRequest carries partial profile updates. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=128"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=128"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=2048"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,max=1024"`
}

// ResetRequest asks for a password-reset email.
type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetConfirmRequest completes a password reset.
type ResetConfirmRequest struct {
	UID             string `json:"uid" validate:"required"`
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,max=1024"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// GetProfile returns the merged account + profile view.
func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*ProfileView, error) {
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("account not found")
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	profile, err := s.store.GetProfileByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return mergeProfileView(account, profile), nil
}

// UpdateProfile applies partial updates to an account and its profile.
// Changing the email checks for duplicates but excludes the account's own
// current address.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, req UpdateProfileRequest) (*ProfileView, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("account not found")
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	profile, err := s.store.GetProfileByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	accountChanged := false
	if req.Email != nil && *req.Email != account.Email {
		account.Email = *req.Email
		accountChanged = true
	}
	if req.FirstName != nil {
		account.FirstName = *req.FirstName
		accountChanged = true
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
		accountChanged = true
	}

	now := time.Now()
	if accountChanged {
		account.UpdatedAt = now
		if err := s.store.UpdateAccount(ctx, account); err != nil {
			// The unique index excludes the account's own row, so a
			// collision here is always with someone else's email.
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil, domainerrors.AlreadyExists("an account with this email already exists")
			}
			return nil, fmt.Errorf("update account: %w", err)
		}
	}

	profileChanged := false
	if req.Bio != nil {
		profile.Bio = *req.Bio
		profileChanged = true
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
		profileChanged = true
	}
	if profileChanged {
		profile.UpdatedAt = now
		if err := s.store.UpdateProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	return mergeProfileView(account, profile), nil
}

// RequestPasswordReset dispatches a reset email if the address matches an
// account. The returned message is identical either way.
func (s *AccountService) RequestPasswordReset(ctx context.Context, req ResetRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", formatValidationError(err)
	}

	account, err := s.store.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same response as the success path.
			return resetRequestMessage, nil
		}
		return "", fmt.Errorf("lookup account: %w", err)
	}

	token := s.resetTokens.MakeToken(account)
	msg := mail.PasswordResetMessage(account.Email, account.Username, s.frontendURL, account.ID, token)
	if err := s.sender.Send(ctx, msg); err != nil {
		// A failed send must not reveal that the account exists.
		s.logger.Error("failed to send password reset email", "user_id", account.ID, "error", err)
	}

	return resetRequestMessage, nil
}

// ConfirmPasswordReset validates a reset token and sets the new password.
// All sessions are revoked afterwards; the consumed token self-invalidates
// because the password hash it was derived from has changed.
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, req ResetConfirmRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return domainerrors.Validation(err.Error())
	}

	account, err := s.store.GetAccount(ctx, req.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.Validation("invalid user")
		}
		return fmt.Errorf("get account: %w", err)
	}

	if !s.resetTokens.CheckToken(account, req.Token) {
		return domainerrors.Validation("invalid or expired reset token")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account.PasswordHash = passwordHash
	account.UpdatedAt = time.Now()
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	// Force re-authentication everywhere.
	if err := s.sessions.DeleteAllForUser(ctx, account.ID); err != nil {
		s.logger.Warn("failed to revoke sessions after password reset", "user_id", account.ID, "error", err)
	}

	s.logger.Info("password reset completed", "user_id", account.ID)
	return nil
}

func mergeProfileView(account *domain.Account, profile *domain.Profile) *ProfileView {
	return &ProfileView{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
		LastLogin: account.LastLoginAt,
		CreatedAt: account.CreatedAt,
	}
}
