package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserModel handles database operations for user accounts.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a new user model.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// Create inserts a new user record. The caller provides the username and
// password hash; the created timestamp is set here.
func (r *UserModel) Create(ctx context.Context, user *types.User) error {
	user.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(user).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserModel) GetByID(ctx context.Context, id int64) (*types.User, error) {
	user := new(types.User)

	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by their username.
func (r *UserModel) GetByUsername(ctx context.Context, username string) (*types.User, error) {
	user := new(types.User)

	err := r.db.NewSelect().
		Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// UsernameExists reports whether a username is already registered.
func (r *UserModel) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*types.User)(nil)).
		Where("username = ?", username).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return exists, nil
}

// UpdateReputation overwrites the stored reputation value for a user.
func (r *UserModel) UpdateReputation(ctx context.Context, userID, reputation int64) error {
	_, err := r.db.NewUpdate().
		Model((*types.User)(nil)).
		Set("reputation = ?", reputation).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update reputation: %w", err)
	}

	r.logger.Debug("Updated reputation",
		zap.Int64("userID", userID),
		zap.Int64("reputation", reputation))

	return nil
}
