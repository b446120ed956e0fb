package repository

import (
	"context"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	GetByClientID(ctx context.Context, clientID string) (*domain.User, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (*domain.User, error)
	// Upsert inserts the user or, when the client ID already exists,
	// replaces the display fields and access packet while leaving
	// invite_code and join_date untouched.
	Upsert(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, clientID string) error
}

// CreditRepository defines methods for the append-only credit ledger
type CreditRepository interface {
	ListByClientID(ctx context.Context, clientID string) ([]*domain.CreditModification, error)
	Add(ctx context.Context, modification *domain.CreditModification) error
}

// InviteRepository defines methods for referral records
type InviteRepository interface {
	ListByInviter(ctx context.Context, inviterID string) ([]*domain.Invite, error)
	CountByInviter(ctx context.Context, inviterID string) (int64, error)
	GetInvitedBy(ctx context.Context, invitedID string) (*domain.Invite, error)
	Add(ctx context.Context, inviterID, invitedID string) (*domain.Invite, error)
}

// RedeemRepository defines methods for payout requests
type RedeemRepository interface {
	ListByClientID(ctx context.Context, clientID string) ([]*domain.Redeem, error)
	Add(ctx context.Context, redeem *domain.Redeem) error
	UpdateStatus(ctx context.Context, uid int64, status domain.RedeemStatus) error
}
