package providers

import (
	"github.com/samber/do/v2"

	"github.com/gameshubapp/gameshub-server/internal/config"
	"github.com/gameshubapp/gameshub-server/internal/logger"
	"github.com/gameshubapp/gameshub-server/internal/sessions"
	"github.com/gameshubapp/gameshub-server/internal/store/sqlite"
)

// StoreHandle wraps the SQLite store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := sqlite.Open(cfg.DatabasePath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.DatabasePath())

	return &StoreHandle{Store: db}, nil
}

// SessionStoreHandle wraps the badger session store with shutdown capability.
type SessionStoreHandle struct {
	*sessions.Store
}

// Shutdown implements do.Shutdownable.
func (h *SessionStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideSessionStore provides the refresh-session store.
func ProvideSessionStore(i do.Injector) (*SessionStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := sessions.New(cfg.SessionsPath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Session store initialized", "path", cfg.SessionsPath())

	return &SessionStoreHandle{Store: store}, nil
}
