package providers

import (
	"github.com/samber/do/v2"

	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	"github.com/gameshubapp/gameshub-server/internal/config"
	"github.com/gameshubapp/gameshub-server/internal/logger"
)

// ProvideCatalogClient provides the upstream game-catalog client.
func ProvideCatalogClient(i do.Injector) (*rawg.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.APIKey == "" {
		log.Warn("No catalog API key configured; upstream requests will be rejected")
	}

	return rawg.New(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, log.Logger), nil
}
