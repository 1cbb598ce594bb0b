package service

import (
	"context"

	"github.com/quartzlab/tipboard/internal/database/models"
	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/quartzlab/tipboard/internal/database/types/enum"
	"go.uber.org/zap"
)

// VoteService implements the vote toggle state machine. Each (tip, voter)
// pair is in exactly one of three states: none, up, or down. Both
// operations toggle, so every state is revisitable.
//
// Upvoting is open to any authenticated user while downvoting is gated
// on reputation. The asymmetry is an intentional anti-abuse design.
type VoteService struct {
	tip        *models.TipModel
	vote       *models.VoteModel
	reputation *ReputationService
	logger     *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(
	tip *models.TipModel,
	vote *models.VoteModel,
	reputation *ReputationService,
	logger *zap.Logger,
) *VoteService {
	return &VoteService{
		tip:        tip,
		vote:       vote,
		reputation: reputation,
		logger:     logger.Named("vote_service"),
	}
}

// Upvote toggles the voter's upvote on a tip. Any existing downvote is
// withdrawn first so the vote sets stay disjoint, then the author's
// reputation is recomputed.
func (s *VoteService) Upvote(ctx context.Context, tipID, voterID int64) error {
	tip, err := s.tip.GetByID(ctx, tipID)
	if err != nil {
		return err
	}

	state, err := s.vote.GetState(ctx, tipID, voterID)
	if err != nil {
		return err
	}

	if state == enum.VoteStateDown {
		if err := s.vote.RemoveDownvoter(ctx, tipID, voterID); err != nil {
			return err
		}
	}

	if state == enum.VoteStateUp {
		err = s.vote.RemoveUpvoter(ctx, tipID, voterID)
	} else {
		err = s.vote.AddUpvoter(ctx, tipID, voterID)
	}

	if err != nil {
		return err
	}

	s.logger.Debug("Applied upvote toggle",
		zap.Int64("tipID", tipID),
		zap.Int64("voterID", voterID),
		zap.Stringer("newState", enum.NextUpvoteState(state)))

	return s.reputation.Recompute(ctx, tip.AuthorID)
}

// Downvote toggles the voter's downvote on a tip. The voter must own the
// tip or hold the downvote privilege; otherwise ErrPermissionDenied is
// returned and nothing is mutated.
func (s *VoteService) Downvote(ctx context.Context, tipID int64, voter *types.User) error {
	tip, err := s.tip.GetByID(ctx, tipID)
	if err != nil {
		return err
	}

	if !tip.CanBeDownvotedBy(voter) {
		return types.ErrPermissionDenied
	}

	state, err := s.vote.GetState(ctx, tipID, voter.ID)
	if err != nil {
		return err
	}

	if state == enum.VoteStateUp {
		if err := s.vote.RemoveUpvoter(ctx, tipID, voter.ID); err != nil {
			return err
		}
	}

	if state == enum.VoteStateDown {
		err = s.vote.RemoveDownvoter(ctx, tipID, voter.ID)
	} else {
		err = s.vote.AddDownvoter(ctx, tipID, voter.ID)
	}

	if err != nil {
		return err
	}

	s.logger.Debug("Applied downvote toggle",
		zap.Int64("tipID", tipID),
		zap.Int64("voterID", voter.ID),
		zap.Stringer("newState", enum.NextDownvoteState(state)))

	return s.reputation.Recompute(ctx, tip.AuthorID)
}
