package service

import (
	"context"
	"fmt"

	"github.com/quartzlab/tipboard/internal/database/models"
	"github.com/quartzlab/tipboard/internal/database/types"
	"go.uber.org/zap"
)

// ReputationService derives a user's reputation from the votes on all
// tips they authored. It is invoked after every tip creation, tip
// deletion, and vote toggle, always for the tip's author.
type ReputationService struct {
	vote   *models.VoteModel
	user   *models.UserModel
	logger *zap.Logger
}

// NewReputation creates a new reputation service.
func NewReputation(vote *models.VoteModel, user *models.UserModel, logger *zap.Logger) *ReputationService {
	return &ReputationService{
		vote:   vote,
		user:   user,
		logger: logger.Named("reputation_service"),
	}
}

// Recompute tallies the votes across all of the author's tips, applies
// the reputation formula, and overwrites the stored value. An author
// with no tips ends up with a reputation of 0.
func (s *ReputationService) Recompute(ctx context.Context, authorID int64) error {
	tallies, err := s.vote.TalliesByAuthor(ctx, authorID)
	if err != nil {
		return fmt.Errorf("failed to tally author votes: %w", err)
	}

	score := types.ReputationScore(tallies)

	if err := s.user.UpdateReputation(ctx, authorID, score); err != nil {
		return fmt.Errorf("failed to persist reputation: %w", err)
	}

	s.logger.Debug("Recomputed reputation",
		zap.Int64("authorID", authorID),
		zap.Int64("score", score),
		zap.Int("tips", len(tallies)))

	return nil
}
