package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/pkg/database"
	"github.com/lib/pq"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `client_id, user_name, email, avatar, avatar_decoration,
	access_token, expires, refresh_token, scope, token_type, invite_code, join_date`

// GetByClientID retrieves a user by their Discord client ID
func (r *userRepository) GetByClientID(ctx context.Context, clientID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE client_id = $1`, userColumns)
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, clientID), "client id "+clientID)
}

// GetByInviteCode retrieves the user owning the given invite code
func (r *userRepository) GetByInviteCode(ctx context.Context, inviteCode string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE invite_code = $1`, userColumns)
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, inviteCode), "invite code "+inviteCode)
}

// Upsert inserts the user or replaces the login-derived fields of the
// existing row. Invite code and join date are written only on first insert.
// Concurrent upserts for the same client ID are last-write-wins; the later
// transaction silently overwrites the earlier one's display fields.
func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (client_id, user_name, email, avatar, avatar_decoration,
			access_token, expires, refresh_token, scope, token_type, invite_code, join_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (client_id) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			email = EXCLUDED.email,
			avatar = EXCLUDED.avatar,
			avatar_decoration = EXCLUDED.avatar_decoration,
			access_token = EXCLUDED.access_token,
			expires = EXCLUDED.expires,
			refresh_token = EXCLUDED.refresh_token,
			scope = EXCLUDED.scope,
			token_type = EXCLUDED.token_type
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ClientID,
		user.Username,
		user.Email,
		user.Avatar,
		user.AvatarDecoration,
		user.AccessPacket.AccessToken,
		user.AccessPacket.ExpiresAt,
		user.AccessPacket.RefreshToken,
		user.AccessPacket.Scope,
		user.AccessPacket.TokenType,
		user.InviteCode,
		user.JoinDate,
	)

	if err != nil {
		// unique_violation on invite_code: freshly generated code collided
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("upserting user %s: %w", user.ClientID, ErrDuplicateInviteCode)
		}
		return fmt.Errorf("failed to upsert user %s: %w", user.ClientID, err)
	}

	return nil
}

// Delete removes a user; dependent ledger rows cascade at the schema level
func (r *userRepository) Delete(ctx context.Context, clientID string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM users WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", clientID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user with client id %s not found: %w", clientID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row, describe string) (*domain.User, error) {
	user := &domain.User{}
	var email, decoration sql.NullString

	err := row.Scan(
		&user.ClientID,
		&user.Username,
		&email,
		&user.Avatar,
		&decoration,
		&user.AccessPacket.AccessToken,
		&user.AccessPacket.ExpiresAt,
		&user.AccessPacket.RefreshToken,
		&user.AccessPacket.Scope,
		&user.AccessPacket.TokenType,
		&user.InviteCode,
		&user.JoinDate,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with %s not found: %w", describe, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", describe, err)
	}

	if email.Valid {
		user.Email = &email.String
	}
	if decoration.Valid {
		user.AvatarDecoration = &decoration.String
	}

	return user, nil
}
