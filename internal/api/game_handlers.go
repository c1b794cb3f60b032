package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	"github.com/gameshubapp/gameshub-server/internal/service"
)

func (s *Server) registerGameRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchGames",
		Method:      http.MethodGet,
		Path:        "/games/search",
		Summary:     "Search the game catalog",
		Description: "Proxies a catalog search. The category shortcut selects a result ordering: popular, new, or average.",
		Tags:        []string{"Games"},
	}, s.handleSearchGames)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGame",
		Method:      http.MethodGet,
		Path:        "/games/{id}",
		Summary:     "Get game details",
		Description: "Returns the full catalog record for one game",
		Tags:        []string{"Games"},
	}, s.handleGetGame)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGameMedia",
		Method:      http.MethodGet,
		Path:        "/games/{id}/media",
		Summary:     "Get game media",
		Description: "Returns screenshots, trailers, and videos for a game. Each section is best effort; a failed section comes back empty.",
		Tags:        []string{"Games"},
	}, s.handleGetGameMedia)
}

// === Inputs/Outputs ===

// SearchGamesInput carries the catalog search parameters.
type SearchGamesInput struct {
	Query    string `query:"query" doc:"Free-text search query"`
	Page     int    `query:"page" minimum:"0" doc:"Result page, starting at 1"`
	Category string `query:"category" doc:"Ordering shortcut: popular, new, or average"`
}

// SearchGamesOutput wraps the search result for Huma.
type SearchGamesOutput struct {
	Body rawg.SearchResult
}

// GetGameInput identifies one catalog game.
type GetGameInput struct {
	ID int64 `path:"id" doc:"Catalog game ID"`
}

// GetGameOutput wraps the game detail for Huma.
type GetGameOutput struct {
	Body rawg.Game
}

// GetGameMediaOutput wraps the aggregated media for Huma.
type GetGameMediaOutput struct {
	Body service.Media
}

// === Handlers ===

func (s *Server) handleSearchGames(ctx context.Context, input *SearchGamesInput) (*SearchGamesOutput, error) {
	result, err := s.services.Games.Search(ctx, rawg.SearchParams{
		Query:    input.Query,
		Page:     input.Page,
		Category: input.Category,
	})
	if err != nil {
		return nil, err
	}

	return &SearchGamesOutput{Body: *result}, nil
}

func (s *Server) handleGetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	game, err := s.services.Games.Detail(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{Body: *game}, nil
}

func (s *Server) handleGetGameMedia(ctx context.Context, input *GetGameInput) (*GetGameMediaOutput, error) {
	media := s.services.Games.GetMedia(ctx, input.ID)
	return &GetGameMediaOutput{Body: *media}, nil
}
