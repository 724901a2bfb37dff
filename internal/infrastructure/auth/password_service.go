package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"

	"github.com/you/pomodorosvc/domain"
)

// DefaultArgon2Params match the argon2 library defaults the stored hashes were created with
var DefaultArgon2Params = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

var errUnusableHash = errors.New("argon2id hash has zero cost or empty key")

// PasswordServiceImpl implements domain.PasswordService.
// New hashes are argon2id in PHC format; bcrypt hashes are still accepted by Verify.
type PasswordServiceImpl struct {
	params *argon2id.Params
}

// NewPasswordService creates a new password service
func NewPasswordService() domain.PasswordService {
	return NewPasswordServiceWithParams(DefaultArgon2Params)
}

// NewPasswordServiceWithParams creates a password service with custom argon2 costs
func NewPasswordServiceWithParams(params *argon2id.Params) domain.PasswordService {
	return &PasswordServiceImpl{params: params}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, p.params)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	if strings.HasPrefix(hashedPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
	}

	if err := checkArgon2Hash(hashedPassword); err != nil {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, hashedPassword)
	return err == nil && match
}

// checkArgon2Hash rejects hashes that would match any password or make key derivation panic
func checkArgon2Hash(hashedPassword string) error {
	params, _, key, err := argon2id.DecodeHash(hashedPassword)
	if err != nil {
		return err
	}
	if len(key) == 0 || params.Iterations == 0 || params.Parallelism == 0 {
		return errUnusableHash
	}
	return nil
}
