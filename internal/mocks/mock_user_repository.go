package mocks

import (
	"context"

	"github.com/you/pomodorosvc/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, creds domain.AuthCredentials) (*domain.User, error)

	// Recorded arguments, in call order
	GetByEmailCalls []string
	GetByIDCalls    []string
	CreateCalls     []domain.AuthCredentials
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// GetByEmail finds a user by email
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.GetByEmailCalls = append(m.GetByEmailCalls, email)
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	// Default behavior: absent
	return nil, nil
}

// GetByID finds a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.GetByIDCalls = append(m.GetByIDCalls, id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	// Default behavior: absent
	return nil, nil
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, creds domain.AuthCredentials) (*domain.User, error) {
	m.CreateCalls = append(m.CreateCalls, creds)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, creds)
	}
	// Default behavior: echo the credentials back as a stored user
	return &domain.User{
		ID:           "user-123",
		Email:        creds.Email,
		PasswordHash: "hashed_" + creds.Password,
		Name:         creds.Name,
		Role:         domain.DefaultRole,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
