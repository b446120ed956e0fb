package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/repository"
)

// profileService implements ProfileService interface
type profileService struct {
	users   repository.UserRepository
	credits repository.CreditRepository
	invites repository.InviteRepository
	redeems repository.RedeemRepository
}

// NewProfileService creates a new profile service
func NewProfileService(
	users repository.UserRepository,
	credits repository.CreditRepository,
	invites repository.InviteRepository,
	redeems repository.RedeemRepository,
) ProfileService {
	return &profileService{
		users:   users,
		credits: credits,
		invites: invites,
		redeems: redeems,
	}
}

// BuildPublicProfile gathers the user's ledger rows and derives the public
// view. Totals are computed here, never read from storage.
func (s *profileService) BuildPublicProfile(ctx context.Context, user *domain.User) (*dto.PublicProfile, error) {
	credits, err := s.credits.ListByClientID(ctx, user.ClientID)
	if err != nil {
		return nil, fmt.Errorf("loading credits for %s: %w", user.ClientID, err)
	}

	invites, err := s.invites.ListByInviter(ctx, user.ClientID)
	if err != nil {
		return nil, fmt.Errorf("loading invites for %s: %w", user.ClientID, err)
	}

	redeems, err := s.redeems.ListByClientID(ctx, user.ClientID)
	if err != nil {
		return nil, fmt.Errorf("loading redeems for %s: %w", user.ClientID, err)
	}

	return dto.NewPublicProfile(user, credits, invites, redeems), nil
}

// AddCredits appends one entry to the user's credit ledger.
func (s *profileService) AddCredits(ctx context.Context, clientID string, amount int64, reason string) (*domain.CreditModification, error) {
	if amount == 0 {
		return nil, fmt.Errorf("credit modification amount must be non-zero")
	}
	if reason == "" {
		reason = "ad-banner"
	}

	modification := &domain.CreditModification{
		ClientID: clientID,
		Amount:   amount,
		Reason:   reason,
	}
	if err := s.credits.Add(ctx, modification); err != nil {
		return nil, err
	}

	return modification, nil
}

// RecordInvite resolves the inviter by invite code and records the
// referral. A user cannot invite themselves, and each user can only be
// invited once.
func (s *profileService) RecordInvite(ctx context.Context, inviteCode, invitedID string) (*domain.Invite, error) {
	inviter, err := s.users.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownInviteCode
		}
		return nil, fmt.Errorf("resolving invite code: %w", err)
	}

	if inviter.ClientID == invitedID {
		return nil, ErrSelfInvite
	}

	if _, err := s.invites.GetInvitedBy(ctx, invitedID); err == nil {
		return nil, ErrAlreadyInvited
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking prior invite: %w", err)
	}

	return s.invites.Add(ctx, inviter.ClientID, invitedID)
}

// RequestRedeem files a new payout request in the PENDING state.
func (s *profileService) RequestRedeem(ctx context.Context, clientID string, paidAmount int, message *string) (*domain.Redeem, error) {
	if paidAmount <= 0 {
		return nil, fmt.Errorf("paid amount must be positive")
	}

	redeem := &domain.Redeem{
		ClientID:   clientID,
		PaidAmount: paidAmount,
		Status:     domain.RedeemStatusPending,
		Message:    message,
	}
	if err := s.redeems.Add(ctx, redeem); err != nil {
		return nil, err
	}

	return redeem, nil
}
