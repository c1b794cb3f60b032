package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	"github.com/gameshubapp/gameshub-server/internal/domain"
	domainerrors "github.com/gameshubapp/gameshub-server/internal/errors"
	"github.com/gameshubapp/gameshub-server/internal/id"
	"github.com/gameshubapp/gameshub-server/internal/store"
)

// LibraryService manages a user's saved game collection.
type LibraryService struct {
	store   LibraryStore
	catalog Catalog
	logger  *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(store LibraryStore, catalog Catalog, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// CreateItemRequest carries a direct library create. Title, image and rating
// are optional client-provided snapshots.
type CreateItemRequest struct {
	GameID          int64    `json:"game_id" validate:"required,gt=0"`
	Status          string   `json:"status" validate:"required"`
	Title           string   `json:"title,omitempty" validate:"max=512"`
	BackgroundImage string   `json:"background_image,omitempty" validate:"max=1024"`
	Rating          *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// AddFromCatalogRequest carries a hydrate-and-create: the snapshot fields are
// filled from the catalog's detail record before persisting.
type AddFromCatalogRequest struct {
	GameID int64  `json:"game_id" validate:"required,gt=0"`
	Status string `json:"status" validate:"required"`
}

// UpdateItemRequest carries partial item updates. Nil fields are left unchanged.
type UpdateItemRequest struct {
	Status          *string  `json:"status,omitempty"`
	Title           *string  `json:"title,omitempty" validate:"omitempty,max=512"`
	BackgroundImage *string  `json:"background_image,omitempty" validate:"omitempty,max=1024"`
	Rating          *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// List returns the owner's items, newest first.
func (s *LibraryService) List(ctx context.Context, ownerID string) ([]*domain.LibraryItem, error) {
	items, err := s.store.ListLibraryItems(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list library items: %w", err)
	}
	if items == nil {
		items = []*domain.LibraryItem{}
	}
	return items, nil
}

// Create adds a game to the owner's library.
func (s *LibraryService) Create(ctx context.Context, ownerID string, req CreateItemRequest) (*domain.LibraryItem, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	status := domain.Status(req.Status)
	if !domain.ValidStatus(status) {
		return nil, domainerrors.Validation("status must be one of: favorite, wishlist, played")
	}

	item, err := s.newItem(ownerID, req.GameID, status)
	if err != nil {
		return nil, err
	}
	item.Title = req.Title
	item.BackgroundImage = req.BackgroundImage
	item.Rating = req.Rating

	if err := s.persist(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddFromCatalog fetches the game's detail record and creates a library item
// from it. A catalog failure fails the whole operation; no partially
// populated item is ever persisted.
func (s *LibraryService) AddFromCatalog(ctx context.Context, ownerID string, req AddFromCatalogRequest) (*domain.LibraryItem, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	status := domain.Status(req.Status)
	if !domain.ValidStatus(status) {
		return nil, domainerrors.Validation("status must be one of: favorite, wishlist, played")
	}

	game, err := s.catalog.GetGame(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, rawg.ErrNotFound) {
			return nil, domainerrors.NotFound("game not found in catalog")
		}
		return nil, domainerrors.Upstream("catalog lookup failed")
	}

	item, err := s.newItem(ownerID, req.GameID, status)
	if err != nil {
		return nil, err
	}
	item.Title = game.Name
	item.BackgroundImage = game.BackgroundImage
	rating := game.Rating
	item.Rating = &rating

	if err := s.persist(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("library item hydrated from catalog", "user_id", ownerID, "game_id", req.GameID)
	return item, nil
}

// Get retrieves one of the owner's items. Items belonging to other users are
// reported as not found, never as forbidden.
func (s *LibraryService) Get(ctx context.Context, ownerID, itemID string) (*domain.LibraryItem, error) {
	item, err := s.store.GetLibraryItem(ctx, ownerID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("library item not found")
		}
		return nil, fmt.Errorf("get library item: %w", err)
	}
	return item, nil
}

// Update applies partial updates to one of the owner's items.
func (s *LibraryService) Update(ctx context.Context, ownerID, itemID string, req UpdateItemRequest) (*domain.LibraryItem, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	item, err := s.Get(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !domain.ValidStatus(status) {
			return nil, domainerrors.Validation("status must be one of: favorite, wishlist, played")
		}
		item.Status = status
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.BackgroundImage != nil {
		item.BackgroundImage = *req.BackgroundImage
	}
	if req.Rating != nil {
		item.Rating = req.Rating
	}

	item.UpdatedAt = time.Now()
	if err := s.store.UpdateLibraryItem(ctx, item); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("this game is already in your library under that status")
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("library item not found")
		}
		return nil, fmt.Errorf("update library item: %w", err)
	}
	return item, nil
}

// Delete removes one of the owner's items. Deleting twice reports not found
// the second time.
func (s *LibraryService) Delete(ctx context.Context, ownerID, itemID string) error {
	if err := s.store.DeleteLibraryItem(ctx, ownerID, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("library item not found")
		}
		return fmt.Errorf("delete library item: %w", err)
	}
	return nil
}

func (s *LibraryService) newItem(ownerID string, gameID int64, status domain.Status) (*domain.LibraryItem, error) {
	itemID, err := id.Generate("item")
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}
	now := time.Now()
	return &domain.LibraryItem{
		ID:        itemID,
		OwnerID:   ownerID,
		GameID:    gameID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *LibraryService) persist(ctx context.Context, item *domain.LibraryItem) error {
	if err := s.store.CreateLibraryItem(ctx, item); err != nil {
		// Two concurrent creates of the same (game, status) pair race on the
		// unique constraint; the loser surfaces here.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domainerrors.AlreadyExists("this game is already in your library under that status")
		}
		return fmt.Errorf("create library item: %w", err)
	}
	return nil
}
