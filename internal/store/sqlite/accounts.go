package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gameshubapp/gameshub-server/internal/domain"
	"github.com/gameshubapp/gameshub-server/internal/store"
)

// accountColumns is the ordered list of columns selected in account queries.
// Must match the scan order in scanAccount.
const accountColumns = `id, username, email, password_hash,
	first_name, last_name, last_login_at, created_at, updated_at`

// scanAccount scans a sql.Row (or sql.Rows via its Scan method) into a domain.Account.
func scanAccount(scanner interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var a domain.Account

	var (
		lastLoginAt sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.FirstName,
		&a.LastName,
		&lastLoginAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.LastLoginAt, err = parseNullableTime(lastLoginAt)
	if err != nil {
		return nil, err
	}
	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// CreateAccount inserts a new account together with its profile in one
// transaction. An account never exists without a profile.
// Returns store.ErrAlreadyExists if the username or email is taken.
func (s *Store) CreateAccount(ctx context.Context, account *domain.Account, profile *domain.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (
			id, username, username_lower, email, email_lower, password_hash,
			first_name, last_name, last_login_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.Username,
		strings.ToLower(strings.TrimSpace(account.Username)),
		account.Email,
		strings.ToLower(strings.TrimSpace(account.Email)),
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		nullTimeString(account.LastLoginAt),
		formatTime(account.CreatedAt),
		formatTime(account.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (id, account_id, bio, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		profile.ID,
		account.ID,
		profile.Bio,
		profile.AvatarURL,
		formatTime(profile.CreatedAt),
		formatTime(profile.UpdatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetAccount retrieves an account by ID.
// Returns store.ErrNotFound if the account does not exist.
func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAccountByEmail retrieves an account by case-insensitive email match.
// Returns store.ErrNotFound if the account does not exist.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	lower := strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email_lower = ?`, lower)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAccountByUsername retrieves an account by case-insensitive username match.
// Returns store.ErrNotFound if the account does not exist.
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	lower := strings.ToLower(strings.TrimSpace(username))
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username_lower = ?`, lower)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAccount performs a full row update on an existing account.
// Returns store.ErrNotFound if the account does not exist, and
// store.ErrAlreadyExists if the new username or email collides with another account.
func (s *Store) UpdateAccount(ctx context.Context, account *domain.Account) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET
			username = ?,
			username_lower = ?,
			email = ?,
			email_lower = ?,
			password_hash = ?,
			first_name = ?,
			last_name = ?,
			last_login_at = ?,
			updated_at = ?
		WHERE id = ?`,
		account.Username,
		strings.ToLower(strings.TrimSpace(account.Username)),
		account.Email,
		strings.ToLower(strings.TrimSpace(account.Email)),
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		nullTimeString(account.LastLoginAt),
		formatTime(account.UpdatedAt),
		account.ID,
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

// TouchLastLogin records a successful login without rewriting the whole row.
// Returns store.ErrNotFound if the account does not exist.
func (s *Store) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET last_login_at = ?, updated_at = ? WHERE id = ?`,
		formatTime(at), formatTime(at), id)
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
