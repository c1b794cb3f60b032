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
	"github.com/gameshubapp/gameshub-server/internal/id"
	"github.com/gameshubapp/gameshub-server/internal/sessions"
	"github.com/gameshubapp/gameshub-server/internal/store"
)

// AuthService handles registration, login, token refresh, and logout.
type AuthService struct {
	store        AccountStore
	sessions     SessionStore
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store AccountStore, sessionStore SessionStore, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		sessions:     sessionStore,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,max=1024"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"max=128"`
	LastName        string `json:"last_name" validate:"max=128"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest contains the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse contains authentication tokens and user data.
type AuthResponse struct {
	User         *domain.Account `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
}

// Register creates a new account with its profile.
// Passwords must match their confirmation and pass the strength policy.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.Account, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	accountID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate account ID: %w", err)
	}
	profileID, err := id.Generate("prof")
	if err != nil {
		return nil, fmt.Errorf("generate profile ID: %w", err)
	}

	now := time.Now()
	account := &domain.Account{
		ID:           accountID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The profile rides along in the same transaction; an account never
	// exists without one.
	profile := &domain.Profile{
		ID:        profileID,
		AccountID: accountID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateAccount(ctx, account, profile); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("an account with this username or email already exists")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("account registered", "user_id", accountID, "username", account.Username)

	return account, nil
}

// Login authenticates an account and creates a refresh session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	account, err := s.store.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Don't leak whether the username exists
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	valid, err := auth.VerifyPassword(account.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	now := time.Now()
	if err := s.store.TouchLastLogin(ctx, account.ID, now); err != nil {
		// Log but don't fail login
		s.logger.Warn("failed to update last login time", "user_id", account.ID, "error", err)
	}
	account.LastLoginAt = &now

	resp, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", account.ID)
	return resp, nil
}

// RefreshTokens rotates a refresh token and issues a new access token.
// The old refresh token is invalidated.
func (s *AuthService) RefreshTokens(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	session, err := s.sessions.GetByRefreshToken(ctx, auth.HashRefreshToken(req.RefreshToken))
	if err != nil {
		if errors.Is(err, sessions.ErrSessionExpired) {
			return nil, domainerrors.TokenExpired("refresh token expired")
		}
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return nil, domainerrors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	account, err := s.store.GetAccount(ctx, session.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	accessToken, err := s.tokenService.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// Rotate: the session keeps its ID but the token and expiry move forward.
	session.RefreshTokenHash = auth.HashRefreshToken(refreshToken)
	session.ExpiresAt = time.Now().Add(s.tokenService.RefreshTokenDuration())
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("rotate session: %w", err)
	}

	return &AuthResponse{
		User:         account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenService.AccessTokenDuration().Seconds()),
	}, nil
}

// Logout revokes the session behind a refresh token.
// Logging out with an unknown token succeeds silently.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessions.GetByRefreshToken(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) || errors.Is(err, sessions.ErrSessionExpired) {
			return nil
		}
		return fmt.Errorf("lookup session: %w", err)
	}
	return s.sessions.Delete(ctx, session.ID)
}

// VerifyAccessToken validates a bearer token and returns the account it
// belongs to. Used by the authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.Account, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	account, err := s.store.GetAccount(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, errors.New("account not found")
		}
		return nil, nil, fmt.Errorf("get account: %w", err)
	}

	return account, claims, nil
}

// issueTokens creates a new session plus token pair for an account.
func (s *AuthService) issueTokens(ctx context.Context, account *domain.Account) (*AuthResponse, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("sess")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           account.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.tokenService.RefreshTokenDuration()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &AuthResponse{
		User:         account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenService.AccessTokenDuration().Seconds()),
	}, nil
}
