package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/quartzlab/tipboard/internal/database/models"
	"github.com/quartzlab/tipboard/internal/database/types"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for password hashing.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

const hashPrefix = "argon2id"

// AuthService handles account registration and credential verification.
type AuthService struct {
	user   *models.UserModel
	logger *zap.Logger
}

// NewAuth creates a new auth service.
func NewAuth(user *models.UserModel, logger *zap.Logger) *AuthService {
	return &AuthService{
		user:   user,
		logger: logger.Named("auth_service"),
	}
}

// Register creates a new account. The username must be non-blank and
// unique; password confirmation matching is the request layer's concern.
func (s *AuthService) Register(ctx context.Context, username, password string) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, types.ErrEmptyUsername
	}

	exists, err := s.user.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, types.ErrUsernameTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &types.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.user.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Registered new user", zap.String("username", username))

	return user, nil
}

// Authenticate verifies a username/password pair and returns the account.
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials
// so the two cases are indistinguishable to a client.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*types.User, error) {
	user, err := s.user.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, types.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, types.ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword derives an Argon2id hash with a fresh random salt, encoded
// as "argon2id$<salt-hex>$<hash-hex>".
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("%s$%s$%s", hashPrefix, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword checks a password against a stored hash in constant time.
// Malformed hashes never verify.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashPrefix {
		return false
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return subtle.ConstantTimeCompare(got, want) == 1
}
