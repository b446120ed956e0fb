package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/pkg/database"
)

// inviteRepository implements InviteRepository interface
type inviteRepository struct {
	db *database.Postgres
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db *database.Postgres) InviteRepository {
	return &inviteRepository{db: db}
}

// ListByInviter returns all referrals made by a user in insertion order
func (r *inviteRepository) ListByInviter(ctx context.Context, inviterID string) ([]*domain.Invite, error) {
	query := `
		SELECT uid, inviter_id, invited_id, invited_date
		FROM invites
		WHERE inviter_id = $1
		ORDER BY uid
	`

	rows, err := r.db.DB.QueryContext(ctx, query, inviterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites for %s: %w", inviterID, err)
	}
	defer rows.Close()

	var invites []*domain.Invite
	for rows.Next() {
		invite := &domain.Invite{}
		if err := rows.Scan(&invite.UID, &invite.InviterID, &invite.InvitedID, &invite.InvitedDate); err != nil {
			return nil, fmt.Errorf("failed to scan invite row: %w", err)
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invite rows: %w", err)
	}

	return invites, nil
}

// CountByInviter returns how many users a user has referred
func (r *inviteRepository) CountByInviter(ctx context.Context, inviterID string) (int64, error) {
	var count int64
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invites WHERE inviter_id = $1`, inviterID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invites for %s: %w", inviterID, err)
	}
	return count, nil
}

// GetInvitedBy returns the invite record that brought the given user in
func (r *inviteRepository) GetInvitedBy(ctx context.Context, invitedID string) (*domain.Invite, error) {
	query := `
		SELECT uid, inviter_id, invited_id, invited_date
		FROM invites
		WHERE invited_id = $1
		ORDER BY uid
		LIMIT 1
	`

	invite := &domain.Invite{}
	err := r.db.DB.QueryRowContext(ctx, query, invitedID).Scan(
		&invite.UID, &invite.InviterID, &invite.InvitedID, &invite.InvitedDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no invite found for %s: %w", invitedID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invite for %s: %w", invitedID, err)
	}

	return invite, nil
}

// Add records a referral
func (r *inviteRepository) Add(ctx context.Context, inviterID, invitedID string) (*domain.Invite, error) {
	query := `
		INSERT INTO invites (inviter_id, invited_id)
		VALUES ($1, $2)
		RETURNING uid, invited_date
	`

	invite := &domain.Invite{InviterID: inviterID, InvitedID: invitedID}
	err := r.db.DB.QueryRowContext(ctx, query, inviterID, invitedID).Scan(&invite.UID, &invite.InvitedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to add invite %s -> %s: %w", inviterID, invitedID, err)
	}

	return invite, nil
}
