package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	domainerrors "github.com/gameshubapp/gameshub-server/internal/errors"
)

// GamesService proxies catalog search, detail, and media lookups.
type GamesService struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewGamesService creates a new games service.
func NewGamesService(catalog Catalog, logger *slog.Logger) *GamesService {
	return &GamesService{
		catalog: catalog,
		logger:  logger,
	}
}

// Media is the aggregated media response for a game.
type Media struct {
	Screenshots []rawg.Screenshot `json:"screenshots"`
	Trailers    []rawg.Trailer    `json:"trailers"`
	Videos      []rawg.Video      `json:"videos"`
}

// Search queries the catalog. Upstream failures fail fast; there is no retry.
func (s *GamesService) Search(ctx context.Context, params rawg.SearchParams) (*rawg.SearchResult, error) {
	result, err := s.catalog.Search(ctx, params)
	if err != nil {
		return nil, s.mapCatalogError(err, "catalog search failed")
	}
	if result.Results == nil {
		result.Results = []rawg.Game{}
	}
	return result, nil
}

// Detail fetches one game's full record from the catalog.
func (s *GamesService) Detail(ctx context.Context, gameID int64) (*rawg.Game, error) {
	game, err := s.catalog.GetGame(ctx, gameID)
	if err != nil {
		return nil, s.mapCatalogError(err, "catalog lookup failed")
	}
	return game, nil
}

// GetMedia aggregates the three media collections for a game. Each sub-fetch
// is independently fault-isolated: a failed section becomes an empty slice
// and the others still populate. The aggregate never fails as a whole.
func (s *GamesService) GetMedia(ctx context.Context, gameID int64) *Media {
	media := &Media{
		Screenshots: []rawg.Screenshot{},
		Trailers:    []rawg.Trailer{},
		Videos:      []rawg.Video{},
	}

	if shots, err := s.catalog.GetScreenshots(ctx, gameID); err != nil {
		s.logger.Warn("screenshots fetch failed", "game_id", gameID, "error", err)
	} else if shots != nil {
		media.Screenshots = shots
	}

	if trailers, err := s.catalog.GetTrailers(ctx, gameID); err != nil {
		s.logger.Warn("trailers fetch failed", "game_id", gameID, "error", err)
	} else if trailers != nil {
		media.Trailers = trailers
	}

	if videos, err := s.catalog.GetVideos(ctx, gameID); err != nil {
		s.logger.Warn("videos fetch failed", "game_id", gameID, "error", err)
	} else if videos != nil {
		media.Videos = videos
	}

	return media
}

func (s *GamesService) mapCatalogError(err error, msg string) error {
	if errors.Is(err, rawg.ErrNotFound) {
		return domainerrors.NotFound("game not found")
	}
	if errors.Is(err, rawg.ErrUpstream) {
		return domainerrors.Upstream(msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
