// Package service implements the application's business logic.
package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	"github.com/gameshubapp/gameshub-server/internal/domain"
	domainerrors "github.com/gameshubapp/gameshub-server/internal/errors"
	"github.com/go-playground/validator/v10"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove any options (like omitempty, -)
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// AccountStore is the persistence surface the account and auth services need.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *domain.Account, profile *domain.Profile) error
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	GetProfileByAccount(ctx context.Context, accountID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profile *domain.Profile) error
}

// LibraryStore is the persistence surface the library service needs.
type LibraryStore interface {
	CreateLibraryItem(ctx context.Context, item *domain.LibraryItem) error
	GetLibraryItem(ctx context.Context, ownerID, itemID string) (*domain.LibraryItem, error)
	ListLibraryItems(ctx context.Context, ownerID string) ([]*domain.LibraryItem, error)
	UpdateLibraryItem(ctx context.Context, item *domain.LibraryItem) error
	DeleteLibraryItem(ctx context.Context, ownerID, itemID string) error
}

// SessionStore is the refresh-session surface the auth service needs.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, sessionID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// Catalog is the upstream game-catalog surface.
type Catalog interface {
	Search(ctx context.Context, params rawg.SearchParams) (*rawg.SearchResult, error)
	GetGame(ctx context.Context, gameID int64) (*rawg.Game, error)
	GetScreenshots(ctx context.Context, gameID int64) ([]rawg.Screenshot, error)
	GetTrailers(ctx context.Context, gameID int64) ([]rawg.Trailer, error)
	GetVideos(ctx context.Context, gameID int64) ([]rawg.Video, error)
}

// Services bundles all application services for dependency injection.
type Services struct {
	Auth    *AuthService
	Account *AccountService
	Library *LibraryService
	Games   *GamesService
}

// formatValidationError converts validator errors to user-friendly domain errors.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// Return first validation error as a domain error
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				return domainerrors.Validationf("%s is required", field)
			case "email":
				return domainerrors.Validationf("%s must be a valid email address", field)
			case "min":
				return domainerrors.Validationf("%s must be at least %s characters", field, e.Param())
			case "max":
				return domainerrors.Validationf("%s exceeds maximum length of %s characters", field, e.Param())
			case "eqfield":
				return domainerrors.Validationf("%s does not match", field)
			default:
				return domainerrors.Validationf("%s is invalid", field)
			}
		}
	}
	return err
}
