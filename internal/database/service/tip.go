package service

import (
	"context"
	"strings"

	"github.com/quartzlab/tipboard/internal/database/models"
	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/quartzlab/tipboard/internal/database/types/enum"
	"go.uber.org/zap"
)

// TipService handles the tip lifecycle: creation, listing, and guarded
// deletion. Reputation recomputation is an explicit call at each trigger
// point rather than a persistence hook.
type TipService struct {
	tip        *models.TipModel
	vote       *models.VoteModel
	reputation *ReputationService
	logger     *zap.Logger
}

// NewTip creates a new tip service.
func NewTip(
	tip *models.TipModel,
	vote *models.VoteModel,
	reputation *ReputationService,
	logger *zap.Logger,
) *TipService {
	return &TipService{
		tip:        tip,
		vote:       vote,
		reputation: reputation,
		logger:     logger.Named("tip_service"),
	}
}

// Create inserts a new tip for the author and recomputes their
// reputation. Blank content is rejected with ErrEmptyContent.
func (s *TipService) Create(ctx context.Context, authorID int64, content string) (*types.Tip, error) {
	if strings.TrimSpace(content) == "" {
		return nil, types.ErrEmptyContent
	}

	tip := &types.Tip{
		Content:  content,
		AuthorID: authorID,
	}

	if err := s.tip.Create(ctx, tip); err != nil {
		return nil, err
	}

	if err := s.reputation.Recompute(ctx, authorID); err != nil {
		return nil, err
	}

	s.logger.Debug("Created tip",
		zap.Int64("tipID", tip.ID),
		zap.Int64("authorID", authorID))

	return tip, nil
}

// Delete removes a tip if the requester owns it or holds the delete
// privilege, then recomputes the author's reputation over their
// remaining tips. Unauthorized requests mutate nothing.
func (s *TipService) Delete(ctx context.Context, tipID int64, requester *types.User) error {
	tip, err := s.tip.GetByID(ctx, tipID)
	if err != nil {
		return err
	}

	if !tip.CanBeDeletedBy(requester) {
		return types.ErrPermissionDenied
	}

	if err := s.tip.Delete(ctx, tipID); err != nil {
		return err
	}

	s.logger.Debug("Deleted tip",
		zap.Int64("tipID", tipID),
		zap.Int64("requesterID", requester.ID))

	return s.reputation.Recompute(ctx, tip.AuthorID)
}

// List returns all tips newest first. When a viewer is given, each
// listing carries the viewer's current vote state.
func (s *TipService) List(ctx context.Context, viewer *types.User) ([]*types.TipListing, error) {
	listings, err := s.tip.List(ctx)
	if err != nil {
		return nil, err
	}

	if viewer == nil {
		return listings, nil
	}

	states, err := s.vote.StatesByUser(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	for _, listing := range listings {
		if state, ok := states[listing.ID]; ok {
			listing.ViewerVote = state
		} else {
			listing.ViewerVote = enum.VoteStateNone
		}
	}

	return listings, nil
}
