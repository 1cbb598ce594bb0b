package database

import (
	"github.com/quartzlab/tipboard/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	user *models.UserModel
	tip  *models.TipModel
	vote *models.VoteModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		user: models.NewUser(db, logger),
		tip:  models.NewTip(db, logger),
		vote: models.NewVote(db, logger),
	}
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Tip returns the tip model repository.
func (r *Repository) Tip() *models.TipModel {
	return r.tip
}

// Vote returns the vote model repository.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}
