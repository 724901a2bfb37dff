package e2e

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/you/pomodorosvc/domain"
	"github.com/you/pomodorosvc/internal/infrastructure/repositories"
)

// TestUserFactory inserts users directly into the database
type TestUserFactory struct {
	t  *testing.T
	db *gorm.DB
}

// NewTestUserFactory creates a new test user factory
func NewTestUserFactory(t *testing.T, db *gorm.DB) *TestUserFactory {
	t.Helper()
	return &TestUserFactory{t: t, db: db}
}

// TestUserOptions configures test user creation
type TestUserOptions struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// DefaultTestUser returns default test user options
func DefaultTestUser() *TestUserOptions {
	return &TestUserOptions{
		Email:    generateTestEmail("user"),
		Password: "Test123!@#",
		Name:     "Test User",
		Role:     domain.DefaultRole,
	}
}

// AdminTestUser returns test user options for admin user
func AdminTestUser() *TestUserOptions {
	opts := DefaultTestUser()
	opts.Email = generateTestEmail("admin")
	opts.Role = domain.AdminRole
	return opts
}

// CreateUser stores a user whose password carries a legacy bcrypt hash
func (f *TestUserFactory) CreateUser(opts *TestUserOptions) *domain.User {
	f.t.Helper()

	if opts == nil {
		opts = DefaultTestUser()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash password: %v", err)
	}

	dbUser := &repositories.DBUser{
		Email:        opts.Email,
		PasswordHash: string(hash),
		Name:         opts.Name,
		Role:         opts.Role,
	}
	if err := f.db.Create(dbUser).Error; err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return &domain.User{
		ID:    dbUser.ID,
		Email: dbUser.Email,
		Name:  dbUser.Name,
		Role:  dbUser.Role,
	}
}

func generateTestEmail(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8] + "@example.com"
}
