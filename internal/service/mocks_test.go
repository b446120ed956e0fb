package service

import (
	"context"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/cache"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/discord"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByClientID(ctx context.Context, clientID string) (*domain.User, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByInviteCode(ctx context.Context, inviteCode string) (*domain.User, error) {
	args := m.Called(ctx, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// MockCreditRepository is a mock implementation of repository.CreditRepository
type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) ListByClientID(ctx context.Context, clientID string) ([]*domain.CreditModification, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CreditModification), args.Error(1)
}

func (m *MockCreditRepository) Add(ctx context.Context, modification *domain.CreditModification) error {
	args := m.Called(ctx, modification)
	return args.Error(0)
}

// MockInviteRepository is a mock implementation of repository.InviteRepository
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) ListByInviter(ctx context.Context, inviterID string) ([]*domain.Invite, error) {
	args := m.Called(ctx, inviterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invite), args.Error(1)
}

func (m *MockInviteRepository) CountByInviter(ctx context.Context, inviterID string) (int64, error) {
	args := m.Called(ctx, inviterID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInviteRepository) GetInvitedBy(ctx context.Context, invitedID string) (*domain.Invite, error) {
	args := m.Called(ctx, invitedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}

func (m *MockInviteRepository) Add(ctx context.Context, inviterID, invitedID string) (*domain.Invite, error) {
	args := m.Called(ctx, inviterID, invitedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}

// MockRedeemRepository is a mock implementation of repository.RedeemRepository
type MockRedeemRepository struct {
	mock.Mock
}

func (m *MockRedeemRepository) ListByClientID(ctx context.Context, clientID string) ([]*domain.Redeem, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Redeem), args.Error(1)
}

func (m *MockRedeemRepository) Add(ctx context.Context, redeem *domain.Redeem) error {
	args := m.Called(ctx, redeem)
	return args.Error(0)
}

func (m *MockRedeemRepository) UpdateStatus(ctx context.Context, uid int64, status domain.RedeemStatus) error {
	args := m.Called(ctx, uid, status)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) ExchangeCode(ctx context.Context, code string) (*domain.AccessPacket, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessPacket), args.Error(1)
}

func (m *MockIdentityProvider) FetchUser(ctx context.Context, packet *domain.AccessPacket) (*discord.User, error) {
	args := m.Called(ctx, packet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discord.User), args.Error(1)
}

// MockSessionCache is a mock implementation of cache.SessionCache
type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) Exists(key string) bool {
	args := m.Called(key)
	return args.Bool(0)
}

func (m *MockSessionCache) Get(key string) (*cache.Entry, bool) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*cache.Entry), args.Bool(1)
}

func (m *MockSessionCache) Put(ctx context.Context, key string, user *domain.User) (*dto.PublicProfile, error) {
	args := m.Called(ctx, key, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublicProfile), args.Error(1)
}

func (m *MockSessionCache) Remove(key string) {
	m.Called(key)
}
