package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gameshubapp/gameshub-server/internal/domain"
	"github.com/gameshubapp/gameshub-server/internal/store"
)

const libraryItemColumns = `id, owner_id, game_id, status, title,
	background_image, rating, created_at, updated_at`

func scanLibraryItem(scanner interface{ Scan(dest ...any) error }) (*domain.LibraryItem, error) {
	var item domain.LibraryItem

	var (
		status    string
		rating    sql.NullFloat64
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&item.ID,
		&item.OwnerID,
		&item.GameID,
		&status,
		&item.Title,
		&item.BackgroundImage,
		&rating,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Status = domain.Status(status)
	if rating.Valid {
		item.Rating = &rating.Float64
	}
	item.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// CreateLibraryItem inserts a new library item.
// Returns store.ErrAlreadyExists when the owner already has the same game
// under the same status.
func (s *Store) CreateLibraryItem(ctx context.Context, item *domain.LibraryItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO library_items (
			id, owner_id, game_id, status, title, background_image, rating,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.OwnerID,
		item.GameID,
		string(item.Status),
		item.Title,
		item.BackgroundImage,
		nullFloat64(item.Rating),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetLibraryItem retrieves a library item scoped to its owner.
// A matching ID owned by a different user yields store.ErrNotFound; item IDs
// are never confirmed to exist for anyone but their owner.
func (s *Store) GetLibraryItem(ctx context.Context, ownerID, itemID string) (*domain.LibraryItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+libraryItemColumns+` FROM library_items WHERE id = ? AND owner_id = ?`,
		itemID, ownerID)

	item, err := scanLibraryItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListLibraryItems returns all of an owner's items, newest first.
func (s *Store) ListLibraryItems(ctx context.Context, ownerID string) ([]*domain.LibraryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+libraryItemColumns+` FROM library_items
		WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.LibraryItem
	for rows.Next() {
		item, err := scanLibraryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateLibraryItem performs a full row update on an existing item, scoped to
// its owner. Returns store.ErrNotFound if the item does not exist or belongs
// to someone else, and store.ErrAlreadyExists if the update would collide
// with another (game, status) pair the owner already has.
func (s *Store) UpdateLibraryItem(ctx context.Context, item *domain.LibraryItem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE library_items SET
			game_id = ?,
			status = ?,
			title = ?,
			background_image = ?,
			rating = ?,
			updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		item.GameID,
		string(item.Status),
		item.Title,
		item.BackgroundImage,
		nullFloat64(item.Rating),
		formatTime(item.UpdatedAt),
		item.ID,
		item.OwnerID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteLibraryItem removes an item, scoped to its owner.
// Returns store.ErrNotFound if the item does not exist or belongs to someone else.
func (s *Store) DeleteLibraryItem(ctx context.Context, ownerID, itemID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM library_items WHERE id = ? AND owner_id = ?`, itemID, ownerID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
