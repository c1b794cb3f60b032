package sqlite

import (
	"context"
	"database/sql"

	"github.com/gameshubapp/gameshub-server/internal/domain"
	"github.com/gameshubapp/gameshub-server/internal/store"
)

const profileColumns = `id, account_id, bio, avatar_url, created_at, updated_at`

func scanProfile(scanner interface{ Scan(dest ...any) error }) (*domain.Profile, error) {
	var p domain.Profile

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&p.ID,
		&p.AccountID,
		&p.Bio,
		&p.AvatarURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// GetProfileByAccount retrieves the profile belonging to an account.
// Returns store.ErrNotFound if no profile exists for the account.
func (s *Store) GetProfileByAccount(ctx context.Context, accountID string) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE account_id = ?`, accountID)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfile performs a full row update on an existing profile.
// Returns store.ErrNotFound if the profile does not exist.
func (s *Store) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET bio = ?, avatar_url = ?, updated_at = ?
		WHERE account_id = ?`,
		profile.Bio,
		profile.AvatarURL,
		formatTime(profile.UpdatedAt),
		profile.AccountID,
	)
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
