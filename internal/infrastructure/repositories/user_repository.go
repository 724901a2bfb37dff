package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/pomodorosvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db          *gorm.DB
	passwordSvc domain.PasswordService
	adminEmails map[string]struct{}
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           string         `gorm:"primaryKey;size:36"`
	Email        string         `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `gorm:"column:password;not null"`
	Name         string         `gorm:"size:255"`
	Role         string         `gorm:"index;size:64"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *DBUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// NewUserRepository creates a new user repository. Passwords are hashed with passwordSvc.
// Users created with one of adminEmails get domain.AdminRole; everyone else gets domain.DefaultRole.
func NewUserRepository(db *gorm.DB, passwordSvc domain.PasswordService, adminEmails []string) domain.UserRepository {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[email] = struct{}{}
	}
	return &UserRepositoryImpl{db: db, passwordSvc: passwordSvc, adminEmails: admins}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, creds domain.AuthCredentials) (*domain.User, error) {
	hash, err := r.passwordSvc.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	dbUser := &DBUser{
		Email:        creds.Email,
		PasswordHash: hash,
		Name:         creds.Name,
		Role:         r.roleFor(creds.Email),
	}
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}
	return r.dbToDomain(dbUser), nil
}

func (r *UserRepositoryImpl) roleFor(email string) string {
	if _, ok := r.adminEmails[email]; ok {
		return domain.AdminRole
	}
	return domain.DefaultRole
}

// GetByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByID implements domain.UserRepository
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) first(ctx context.Context, query string, arg string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		Name:         dbUser.Name,
		Role:         dbUser.Role,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
