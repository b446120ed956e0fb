package repository

import (
	"context"
	"fmt"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/pkg/database"
)

// redeemRepository implements RedeemRepository interface
type redeemRepository struct {
	db *database.Postgres
}

// NewRedeemRepository creates a new redeem repository
func NewRedeemRepository(db *database.Postgres) RedeemRepository {
	return &redeemRepository{db: db}
}

// ListByClientID returns all payout requests of a user in insertion order
func (r *redeemRepository) ListByClientID(ctx context.Context, clientID string) ([]*domain.Redeem, error) {
	query := `
		SELECT uid, client_id, redeemed_date, paid_amount, status, message
		FROM redeem
		WHERE client_id = $1
		ORDER BY uid
	`

	rows, err := r.db.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list redeems for %s: %w", clientID, err)
	}
	defer rows.Close()

	var redeems []*domain.Redeem
	for rows.Next() {
		redeem := &domain.Redeem{}
		if err := rows.Scan(&redeem.UID, &redeem.ClientID, &redeem.RedeemedDate,
			&redeem.PaidAmount, &redeem.Status, &redeem.Message); err != nil {
			return nil, fmt.Errorf("failed to scan redeem row: %w", err)
		}
		redeems = append(redeems, redeem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read redeem rows: %w", err)
	}

	return redeems, nil
}

// Add inserts a new payout request
func (r *redeemRepository) Add(ctx context.Context, redeem *domain.Redeem) error {
	query := `
		INSERT INTO redeem (client_id, paid_amount, status, message)
		VALUES ($1, $2, $3, $4)
		RETURNING uid, redeemed_date
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		redeem.ClientID,
		redeem.PaidAmount,
		redeem.Status,
		redeem.Message,
	).Scan(&redeem.UID, &redeem.RedeemedDate)

	if err != nil {
		return fmt.Errorf("failed to add redeem for %s: %w", redeem.ClientID, err)
	}

	return nil
}

// UpdateStatus moves a payout request to a new state
func (r *redeemRepository) UpdateStatus(ctx context.Context, uid int64, status domain.RedeemStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid redeem status %q", status)
	}

	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE redeem SET status = $2 WHERE uid = $1`, uid, status)
	if err != nil {
		return fmt.Errorf("failed to update redeem %d: %w", uid, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("redeem %d not found: %w", uid, ErrNotFound)
	}

	return nil
}
