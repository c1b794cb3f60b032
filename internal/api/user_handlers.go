package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gameshubapp/gameshub-server/internal/domain"
	"github.com/gameshubapp/gameshub-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/users/register/",
		Summary:       "Register new user",
		Description:   "Creates a new account with its profile",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/users/token/",
		Summary:     "User login",
		Description: "Authenticates a user and returns access and refresh tokens",
		Tags:        []string{"Users"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/users/token/refresh/",
		Summary:     "Refresh tokens",
		Description: "Rotates a refresh token and issues a new token pair",
		Tags:        []string{"Users"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/users/logout/",
		Summary:     "Logout",
		Description: "Revokes the session behind a refresh token",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/users/me/",
		Summary:     "Get my profile",
		Description: "Returns the authenticated user's account and profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCurrentUser",
		Method:      http.MethodPatch,
		Path:        "/users/me/",
		Summary:     "Update my profile",
		Description: "Applies partial updates to the authenticated user's account and profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "requestPasswordReset",
		Method:      http.MethodPost,
		Path:        "/users/password-reset/",
		Summary:     "Request password reset",
		Description: "Sends a password-reset email when the address matches an account. The response is identical either way.",
		Tags:        []string{"Users"},
	}, s.handleRequestPasswordReset)

	huma.Register(s.api, huma.Operation{
		OperationID: "confirmPasswordReset",
		Method:      http.MethodPost,
		Path:        "/users/password-reset-confirm/",
		Summary:     "Confirm password reset",
		Description: "Validates a reset token and sets the new password. All sessions are revoked afterwards.",
		Tags:        []string{"Users"},
	}, s.handleConfirmPasswordReset)
}

// === DTOs ===

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=64" doc:"Unique username"`
	Email           string `json:"email" validate:"required,email" doc:"User email address"`
	Password        string `json:"password" validate:"required,max=1024" doc:"User password"`
	PasswordConfirm string `json:"password_confirm" validate:"required" doc:"Password confirmation"`
	FirstName       string `json:"first_name,omitempty" validate:"max=128" doc:"User first name"`
	LastName        string `json:"last_name,omitempty" validate:"max=128" doc:"User last name"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body          RegisterRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// UserResponse contains account information in API responses.
type UserResponse struct {
	ID          string     `json:"id" doc:"User ID"`
	Username    string     `json:"username" doc:"Username"`
	Email       string     `json:"email" doc:"User email"`
	FirstName   string     `json:"first_name,omitempty" doc:"First name"`
	LastName    string     `json:"last_name,omitempty" doc:"Last name"`
	CreatedAt   time.Time  `json:"created_at" doc:"Creation timestamp"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" doc:"Last login timestamp"`
}

// UserOutput wraps a user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required" doc:"Username"`
	Password string `json:"password" validate:"required,max=1024" doc:"User password"`
}

// LoginInput wraps the login request with forwarding headers for Huma.
type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" doc:"Refresh token"`
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	Body RefreshRequest
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          RefreshRequest
}

// AuthResponse contains authentication tokens and user info.
type AuthResponse struct {
	AccessToken  string       `json:"access_token" doc:"PASETO access token"`
	RefreshToken string       `json:"refresh_token" doc:"Refresh token"`
	TokenType    string       `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresIn    int64        `json:"expires_in" doc:"Access token expiry in seconds"`
	User         UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// ProfileResponse contains the merged account and profile view.
type ProfileResponse struct {
	ID          string     `json:"id" doc:"User ID"`
	Username    string     `json:"username" doc:"Username"`
	Email       string     `json:"email" doc:"User email"`
	FirstName   string     `json:"first_name,omitempty" doc:"First name"`
	LastName    string     `json:"last_name,omitempty" doc:"Last name"`
	Bio         string     `json:"bio,omitempty" doc:"Profile bio"`
	AvatarURL   string     `json:"avatar_url,omitempty" doc:"Avatar image URL"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" doc:"Last login timestamp"`
	CreatedAt   time.Time  `json:"created_at" doc:"Creation timestamp"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// GetCurrentUserInput carries the auth header.
type GetCurrentUserInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// UpdateProfileRequest is the request body for profile updates. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email" doc:"New email address"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=128" doc:"New first name"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=128" doc:"New last name"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=2048" doc:"New profile bio"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,max=1024" doc:"New avatar URL"`
}

// UpdateProfileInput wraps the profile update for Huma.
type UpdateProfileInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          UpdateProfileRequest
}

// PasswordResetRequest asks for a reset email.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email" doc:"Account email address"`
}

// PasswordResetInput wraps the reset request with forwarding headers for Huma.
type PasswordResetInput struct {
	Body          PasswordResetRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// PasswordResetConfirmRequest completes a password reset.
type PasswordResetConfirmRequest struct {
	UID             string `json:"uid" validate:"required" doc:"User ID from the reset link"`
	Token           string `json:"token" validate:"required" doc:"Reset token from the reset link"`
	Password        string `json:"password" validate:"required,max=1024" doc:"New password"`
	PasswordConfirm string `json:"password_confirm" validate:"required" doc:"New password confirmation"`
}

// PasswordResetConfirmInput wraps the reset confirmation for Huma.
type PasswordResetConfirmInput struct {
	Body PasswordResetConfirmRequest
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*UserOutput, error) {
	if err := s.checkAuthRateLimit(extractIP(input.XForwardedFor, input.XRealIP), "/users/register/"); err != nil {
		return nil, err
	}

	account, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username:        input.Body.Username,
		Email:           input.Body.Email,
		Password:        input.Body.Password,
		PasswordConfirm: input.Body.PasswordConfirm,
		FirstName:       input.Body.FirstName,
		LastName:        input.Body.LastName,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUser(account)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	if err := s.checkAuthRateLimit(extractIP(input.XForwardedFor, input.XRealIP), "/users/token/"); err != nil {
		return nil, err
	}

	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.RefreshTokens(ctx, service.RefreshRequest{
		RefreshToken: input.Body.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Auth.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "logged out"}}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *GetCurrentUserInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Account.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfile(view)}, nil
}

func (s *Server) handleUpdateCurrentUser(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Account.UpdateProfile(ctx, userID, service.UpdateProfileRequest{
		Email:     input.Body.Email,
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		Bio:       input.Body.Bio,
		AvatarURL: input.Body.AvatarURL,
	})
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfile(view)}, nil
}

func (s *Server) handleRequestPasswordReset(ctx context.Context, input *PasswordResetInput) (*MessageOutput, error) {
	if err := s.checkAuthRateLimit(extractIP(input.XForwardedFor, input.XRealIP), "/users/password-reset/"); err != nil {
		return nil, err
	}

	msg, err := s.services.Account.RequestPasswordReset(ctx, service.ResetRequest{
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: msg}}, nil
}

func (s *Server) handleConfirmPasswordReset(ctx context.Context, input *PasswordResetConfirmInput) (*MessageOutput, error) {
	err := s.services.Account.ConfirmPasswordReset(ctx, service.ResetConfirmRequest{
		UID:             input.Body.UID,
		Token:           input.Body.Token,
		Password:        input.Body.Password,
		PasswordConfirm: input.Body.PasswordConfirm,
	})
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "password has been reset"}}, nil
}

// === Mapping ===

func mapUser(account *domain.Account) UserResponse {
	return UserResponse{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		CreatedAt:   account.CreatedAt,
		LastLoginAt: account.LastLoginAt,
	}
}

func mapAuthResponse(resp *service.AuthResponse) AuthResponse {
	return AuthResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    resp.ExpiresIn,
		User:         mapUser(resp.User),
	}
}

func mapProfile(view *service.ProfileView) ProfileResponse {
	return ProfileResponse{
		ID:          view.ID,
		Username:    view.Username,
		Email:       view.Email,
		FirstName:   view.FirstName,
		LastName:    view.LastName,
		Bio:         view.Bio,
		AvatarURL:   view.AvatarURL,
		LastLoginAt: view.LastLogin,
		CreatedAt:   view.CreatedAt,
	}
}
