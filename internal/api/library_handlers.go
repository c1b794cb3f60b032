package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gameshubapp/gameshub-server/internal/domain"
	"github.com/gameshubapp/gameshub-server/internal/service"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLibrary",
		Method:      http.MethodGet,
		Path:        "/library/",
		Summary:     "List library items",
		Description: "Returns the authenticated user's library, newest first",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLibrary)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createLibraryItem",
		Method:        http.MethodPost,
		Path:          "/library/",
		Summary:       "Add a game to the library",
		Description:   "Creates a library item from client-provided snapshot fields",
		Tags:          []string{"Library"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateLibraryItem)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addLibraryItemFromCatalog",
		Method:        http.MethodPost,
		Path:          "/library/add-from-rawg/",
		Summary:       "Add a game from the catalog",
		Description:   "Fetches the game's catalog record and creates a library item from it. A catalog failure persists nothing.",
		Tags:          []string{"Library"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddFromCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLibraryItem",
		Method:      http.MethodGet,
		Path:        "/library/{id}",
		Summary:     "Get a library item",
		Description: "Returns one of the authenticated user's library items",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLibraryItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateLibraryItem",
		Method:      http.MethodPatch,
		Path:        "/library/{id}",
		Summary:     "Update a library item",
		Description: "Applies a partial update; omitted fields are left unchanged",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateLibraryItem)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteLibraryItem",
		Method:        http.MethodDelete,
		Path:          "/library/{id}",
		Summary:       "Delete a library item",
		Description:   "Removes one of the authenticated user's library items",
		Tags:          []string{"Library"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteLibraryItem)
}

// === DTOs ===

// CreateLibraryItemRequest is the request body for a direct library create.
type CreateLibraryItemRequest struct {
	GameID          int64    `json:"game_id" validate:"required,gt=0" doc:"Catalog game ID"`
	Status          string   `json:"status" validate:"required" doc:"Shelf status: favorite, wishlist, or played"`
	Title           string   `json:"title,omitempty" validate:"max=512" doc:"Game title snapshot"`
	BackgroundImage string   `json:"background_image,omitempty" validate:"max=1024" doc:"Cover image URL snapshot"`
	Rating          *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5" doc:"Catalog rating snapshot (0-5)"`
}

// CreateLibraryItemInput wraps the create request for Huma.
type CreateLibraryItemInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          CreateLibraryItemRequest
}

// AddFromCatalogRequest is the request body for a catalog-hydrated create.
type AddFromCatalogRequest struct {
	GameID int64  `json:"game_id" validate:"required,gt=0" doc:"Catalog game ID"`
	Status string `json:"status" validate:"required" doc:"Shelf status: favorite, wishlist, or played"`
}

// AddFromCatalogInput wraps the add-from-catalog request for Huma.
type AddFromCatalogInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          AddFromCatalogRequest
}

// UpdateLibraryItemRequest is the request body for a partial item update.
type UpdateLibraryItemRequest struct {
	Status          *string  `json:"status,omitempty" doc:"New shelf status"`
	Title           *string  `json:"title,omitempty" validate:"omitempty,max=512" doc:"New title snapshot"`
	BackgroundImage *string  `json:"background_image,omitempty" validate:"omitempty,max=1024" doc:"New cover image URL"`
	Rating          *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5" doc:"New rating snapshot (0-5)"`
}

// UpdateLibraryItemInput wraps the update request for Huma.
type UpdateLibraryItemInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Library item ID"`
	Body          UpdateLibraryItemRequest
}

// LibraryItemInput identifies one library item.
type LibraryItemInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Library item ID"`
}

// LibraryListInput carries the auth header for list requests.
type LibraryListInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// LibraryItemResponse contains one library item in API responses.
type LibraryItemResponse struct {
	ID              string    `json:"id" doc:"Library item ID"`
	GameID          int64     `json:"game_id" doc:"Catalog game ID"`
	Status          string    `json:"status" doc:"Shelf status"`
	Title           string    `json:"title,omitempty" doc:"Game title snapshot"`
	BackgroundImage string    `json:"background_image,omitempty" doc:"Cover image URL snapshot"`
	Rating          *float64  `json:"rating,omitempty" doc:"Catalog rating snapshot"`
	CreatedAt       time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt       time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// LibraryItemOutput wraps one library item for Huma.
type LibraryItemOutput struct {
	Body LibraryItemResponse
}

// LibraryListOutput wraps the item list for Huma.
type LibraryListOutput struct {
	Body []LibraryItemResponse
}

// === Handlers ===

func (s *Server) handleListLibrary(ctx context.Context, _ *LibraryListInput) (*LibraryListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Library.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]LibraryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, mapLibraryItem(item))
	}
	return &LibraryListOutput{Body: out}, nil
}

func (s *Server) handleCreateLibraryItem(ctx context.Context, input *CreateLibraryItemInput) (*LibraryItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Library.Create(ctx, userID, service.CreateItemRequest{
		GameID:          input.Body.GameID,
		Status:          input.Body.Status,
		Title:           input.Body.Title,
		BackgroundImage: input.Body.BackgroundImage,
		Rating:          input.Body.Rating,
	})
	if err != nil {
		return nil, err
	}

	return &LibraryItemOutput{Body: mapLibraryItem(item)}, nil
}

func (s *Server) handleAddFromCatalog(ctx context.Context, input *AddFromCatalogInput) (*LibraryItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Library.AddFromCatalog(ctx, userID, service.AddFromCatalogRequest{
		GameID: input.Body.GameID,
		Status: input.Body.Status,
	})
	if err != nil {
		return nil, err
	}

	return &LibraryItemOutput{Body: mapLibraryItem(item)}, nil
}

func (s *Server) handleGetLibraryItem(ctx context.Context, input *LibraryItemInput) (*LibraryItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Library.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &LibraryItemOutput{Body: mapLibraryItem(item)}, nil
}

func (s *Server) handleUpdateLibraryItem(ctx context.Context, input *UpdateLibraryItemInput) (*LibraryItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Library.Update(ctx, userID, input.ID, service.UpdateItemRequest{
		Status:          input.Body.Status,
		Title:           input.Body.Title,
		BackgroundImage: input.Body.BackgroundImage,
		Rating:          input.Body.Rating,
	})
	if err != nil {
		return nil, err
	}

	return &LibraryItemOutput{Body: mapLibraryItem(item)}, nil
}

func (s *Server) handleDeleteLibraryItem(ctx context.Context, input *LibraryItemInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Library.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

func mapLibraryItem(item *domain.LibraryItem) LibraryItemResponse {
	return LibraryItemResponse{
		ID:              item.ID,
		GameID:          item.GameID,
		Status:          string(item.Status),
		Title:           item.Title,
		BackgroundImage: item.BackgroundImage,
		Rating:          item.Rating,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
