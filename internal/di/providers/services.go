package providers

import (
	"github.com/samber/do/v2"

	"github.com/gameshubapp/gameshub-server/internal/auth"
	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	"github.com/gameshubapp/gameshub-server/internal/config"
	"github.com/gameshubapp/gameshub-server/internal/logger"
	"github.com/gameshubapp/gameshub-server/internal/mail"
	"github.com/gameshubapp/gameshub-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sessionHandle := do.MustInvoke[*SessionStoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, sessionHandle.Store, tokenService, log.Logger), nil
}

// ProvideAccountService provides the account/profile service.
func ProvideAccountService(i do.Injector) (*service.AccountService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sessionHandle := do.MustInvoke[*SessionStoreHandle](i)
	resetTokens := do.MustInvoke[*auth.ResetTokenService](i)
	sender := do.MustInvoke[mail.Sender](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAccountService(storeHandle.Store, sessionHandle.Store, resetTokens, sender, cfg.Mail.FrontendURL, log.Logger), nil
}

// ProvideLibraryService provides the game-library service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalog := do.MustInvoke[*rawg.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(storeHandle.Store, catalog, log.Logger), nil
}

// ProvideGamesService provides the catalog proxy service.
func ProvideGamesService(i do.Injector) (*service.GamesService, error) {
	catalog := do.MustInvoke[*rawg.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGamesService(catalog, log.Logger), nil
}

// ProvideServices bundles all business services for the API server.
func ProvideServices(i do.Injector) (*service.Services, error) {
	return &service.Services{
		Auth:    do.MustInvoke[*service.AuthService](i),
		Account: do.MustInvoke[*service.AccountService](i),
		Library: do.MustInvoke[*service.LibraryService](i),
		Games:   do.MustInvoke[*service.GamesService](i),
	}, nil
}
