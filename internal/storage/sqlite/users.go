package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kritanta/cartmates/internal/models"
)

const userColumns = `id, username, email, password_hash, auth_provider,
	COALESCE(google_id, ''), COALESCE(personal_group_id, ''),
	reset_token_hash, reset_token_expires, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.AuthProvider,
		&user.GoogleID,
		&user.PersonalGroupID,
		&user.ResetTokenHash,
		&user.ResetTokenExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, auth_provider,
			google_id, personal_group_id, reset_token_hash, reset_token_expires,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.AuthProvider,
		nullable(user.GoogleID),
		nullable(user.PersonalGroupID),
		user.ResetTokenHash,
		user.ResetTokenExpires,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByResetTokenHash retrieves the user holding an unexpired reset token.
func (s *SQLiteStore) GetUserByResetTokenHash(ctx context.Context, hash string, now int64) (*models.User, error) {
	if hash == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token_hash = ? AND reset_token_expires > ?`,
		hash, now)
	return scanUser(row)
}

// UpdateUser persists changes to an existing user.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = ?, email = ?, password_hash = ?, auth_provider = ?,
			google_id = ?, personal_group_id = ?, reset_token_hash = ?,
			reset_token_expires = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.AuthProvider,
		nullable(user.GoogleID),
		nullable(user.PersonalGroupID),
		user.ResetTokenHash,
		user.ResetTokenExpires,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user not found: %s", user.ID)
	}

	return nil
}

// DeleteUser removes a user row.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// nullable maps an empty string to SQL NULL so UNIQUE columns with multiple
// absent values do not collide.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
