package repository

import (
	"context"
	"fmt"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/pkg/database"
)

// creditRepository implements CreditRepository interface
type creditRepository struct {
	db *database.Postgres
}

// NewCreditRepository creates a new credit repository
func NewCreditRepository(db *database.Postgres) CreditRepository {
	return &creditRepository{db: db}
}

// ListByClientID returns all credit modifications for a user in insertion order
func (r *creditRepository) ListByClientID(ctx context.Context, clientID string) ([]*domain.CreditModification, error) {
	query := `
		SELECT uid, client_id, amount, modify_date, reason
		FROM credits
		WHERE client_id = $1
		ORDER BY uid
	`

	rows, err := r.db.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits for %s: %w", clientID, err)
	}
	defer rows.Close()

	var modifications []*domain.CreditModification
	for rows.Next() {
		m := &domain.CreditModification{}
		if err := rows.Scan(&m.UID, &m.ClientID, &m.Amount, &m.ModifyDate, &m.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan credit row: %w", err)
		}
		modifications = append(modifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read credit rows: %w", err)
	}

	return modifications, nil
}

// Add appends one ledger entry. The row is immutable once written.
func (r *creditRepository) Add(ctx context.Context, modification *domain.CreditModification) error {
	query := `
		INSERT INTO credits (client_id, amount, reason)
		VALUES ($1, $2, $3)
		RETURNING uid, modify_date
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		modification.ClientID,
		modification.Amount,
		modification.Reason,
	).Scan(&modification.UID, &modification.ModifyDate)

	if err != nil {
		return fmt.Errorf("failed to add credit modification for %s: %w", modification.ClientID, err)
	}

	return nil
}
