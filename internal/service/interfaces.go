package service

import (
	"context"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/discord"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
)

// IdentityProvider abstracts the two outbound calls of the OAuth2 flow.
// Implemented by discord.Client.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code string) (*domain.AccessPacket, error)
	FetchUser(ctx context.Context, packet *domain.AccessPacket) (*discord.User, error)
}

// AuthService completes Discord logins.
type AuthService interface {
	// CompleteLogin runs the full callback continuation for one browser
	// redirect: token exchange, profile fetch, user upsert, session-cache
	// store. Steps execute strictly in that order.
	CompleteLogin(ctx context.Context, code, state string) (*dto.PublicProfile, error)
}

// ProfileService builds public views and mutates the ledger tables.
type ProfileService interface {
	BuildPublicProfile(ctx context.Context, user *domain.User) (*dto.PublicProfile, error)
	AddCredits(ctx context.Context, clientID string, amount int64, reason string) (*domain.CreditModification, error)
	RecordInvite(ctx context.Context, inviteCode, invitedID string) (*domain.Invite, error)
	RequestRedeem(ctx context.Context, clientID string, paidAmount int, message *string) (*domain.Redeem, error)
}
