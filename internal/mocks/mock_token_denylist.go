package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/pomodorosvc/domain"
)

// MockTokenDenylist implements domain.TokenDenylist with an in-memory set
type MockTokenDenylist struct {
	RevokeFunc         func(ctx context.Context, tokenID string, ttl time.Duration) error
	RevokeIfAbsentFunc func(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)

	mu      sync.Mutex
	Revoked map[string]time.Duration
}

// NewMockTokenDenylist creates an empty MockTokenDenylist
func NewMockTokenDenylist() *MockTokenDenylist {
	return &MockTokenDenylist{Revoked: map[string]time.Duration{}}
}

// Revoke marks a token ID as revoked
func (m *MockTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Revoked[tokenID] = ttl
	return nil
}

// RevokeIfAbsent marks a token ID as revoked unless it already is
func (m *MockTokenDenylist) RevokeIfAbsent(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if m.RevokeIfAbsentFunc != nil {
		return m.RevokeIfAbsentFunc(ctx, tokenID, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Revoked[tokenID]; ok || ttl <= 0 {
		return false, nil
	}
	m.Revoked[tokenID] = ttl
	return true, nil
}

// Compile-time interface compliance verification
var _ domain.TokenDenylist = (*MockTokenDenylist)(nil)
