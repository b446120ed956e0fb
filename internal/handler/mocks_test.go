package handler

import (
	"context"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/cache"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) CompleteLogin(ctx context.Context, code, state string) (*dto.PublicProfile, error) {
	args := m.Called(ctx, code, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublicProfile), args.Error(1)
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
