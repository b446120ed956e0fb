package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/cache"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/discord"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/repository"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/utils"
	"go.uber.org/zap"
)

// authService implements AuthService interface
type authService struct {
	users    repository.UserRepository
	provider IdentityProvider
	sessions cache.SessionCache
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repository.UserRepository,
	provider IdentityProvider,
	sessions cache.SessionCache,
	logger *zap.Logger,
) AuthService {
	return &authService{
		users:    users,
		provider: provider,
		sessions: sessions,
		logger:   logger,
	}
}

// CompleteLogin exchanges the authorization code, fetches the Discord
// profile, upserts the user row and stores the session under state. The
// identity-provider calls finish before any database write begins, so no
// connection is ever held across an outbound network call.
func (s *authService) CompleteLogin(ctx context.Context, code, state string) (*dto.PublicProfile, error) {
	packet, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	s.logger.Info("Exchanged authorization code for access token")

	identity, err := s.provider.FetchUser(ctx, packet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	s.logger.Info("Retrieved user information",
		zap.String("client_id", identity.ID),
		zap.String("username", identity.Username),
	)

	user, err := s.resolveUser(ctx, identity, packet)
	if err != nil {
		return nil, err
	}

	// Concurrent logins for the same Discord account race the upsert;
	// the later write wins. There is no per-account serialization guard.
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("persisting user %s: %w", user.ClientID, err)
	}

	profile, err := s.sessions.Put(ctx, state, user)
	if err != nil {
		return nil, fmt.Errorf("caching session: %w", err)
	}

	return profile, nil
}

// resolveUser loads the existing row for the Discord account or prepares a
// fresh one. Existing users keep their invite code and join date; only
// display fields and the access packet are refreshed.
func (s *authService) resolveUser(ctx context.Context, identity *discord.User, packet *domain.AccessPacket) (*domain.User, error) {
	user, err := s.users.GetByClientID(ctx, identity.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		inviteCode, codeErr := utils.GenerateInviteCode()
		if codeErr != nil {
			return nil, codeErr
		}
		user = &domain.User{
			ClientID:   identity.ID,
			InviteCode: inviteCode,
			JoinDate:   time.Now().UTC(),
		}
	case err != nil:
		return nil, fmt.Errorf("looking up user %s: %w", identity.ID, err)
	}

	user.Username = identity.Username
	user.Email = identity.Email
	user.Avatar = identity.Avatar
	user.AvatarDecoration = nil
	if identity.AvatarDecorationData != nil {
		user.AvatarDecoration = &identity.AvatarDecorationData.Asset
	}
	user.AccessPacket = *packet

	return user, nil
}
