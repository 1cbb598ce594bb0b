package models

import (
	"context"
	"fmt"

	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/quartzlab/tipboard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// VoteModel handles database operations for the tip vote sets.
// Membership is only ever mutated through the vote services, which keep
// the upvoter and downvoter sets disjoint.
type VoteModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVote creates a new vote model.
func NewVote(db *bun.DB, logger *zap.Logger) *VoteModel {
	return &VoteModel{
		db:     db,
		logger: logger.Named("db_vote"),
	}
}

// GetState returns the voter's current vote state on a tip.
func (r *VoteModel) GetState(ctx context.Context, tipID, userID int64) (enum.VoteState, error) {
	upvoted, err := r.db.NewSelect().
		Model((*types.TipUpvoter)(nil)).
		Where("tip_id = ?", tipID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return enum.VoteStateNone, fmt.Errorf("failed to check upvote state: %w", err)
	}

	if upvoted {
		return enum.VoteStateUp, nil
	}

	downvoted, err := r.db.NewSelect().
		Model((*types.TipDownvoter)(nil)).
		Where("tip_id = ?", tipID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return enum.VoteStateNone, fmt.Errorf("failed to check downvote state: %w", err)
	}

	if downvoted {
		return enum.VoteStateDown, nil
	}

	return enum.VoteStateNone, nil
}

// AddUpvoter adds a user to a tip's upvoter set.
func (r *VoteModel) AddUpvoter(ctx context.Context, tipID, userID int64) error {
	_, err := r.db.NewInsert().
		Model(&types.TipUpvoter{TipID: tipID, UserID: userID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add upvoter: %w", err)
	}

	return nil
}

// RemoveUpvoter removes a user from a tip's upvoter set.
func (r *VoteModel) RemoveUpvoter(ctx context.Context, tipID, userID int64) error {
	_, err := r.db.NewDelete().
		Model((*types.TipUpvoter)(nil)).
		Where("tip_id = ?", tipID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove upvoter: %w", err)
	}

	return nil
}

// AddDownvoter adds a user to a tip's downvoter set.
func (r *VoteModel) AddDownvoter(ctx context.Context, tipID, userID int64) error {
	_, err := r.db.NewInsert().
		Model(&types.TipDownvoter{TipID: tipID, UserID: userID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add downvoter: %w", err)
	}

	return nil
}

// RemoveDownvoter removes a user from a tip's downvoter set.
func (r *VoteModel) RemoveDownvoter(ctx context.Context, tipID, userID int64) error {
	_, err := r.db.NewDelete().
		Model((*types.TipDownvoter)(nil)).
		Where("tip_id = ?", tipID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove downvoter: %w", err)
	}

	return nil
}

// TalliesByAuthor returns the vote tallies for every tip authored by the
// given user. Tips with no votes are included with zero counts.
func (r *VoteModel) TalliesByAuthor(ctx context.Context, authorID int64) ([]types.VoteTally, error) {
	var tallies []types.VoteTally

	err := r.db.NewSelect().
		Model((*types.Tip)(nil)).
		ColumnExpr("tip.id AS tip_id").
		ColumnExpr("(SELECT count(*) FROM tip_upvoters AS u WHERE u.tip_id = tip.id) AS upvotes").
		ColumnExpr("(SELECT count(*) FROM tip_downvoters AS d WHERE d.tip_id = tip.id) AS downvotes").
		Where("tip.author_id = ?", authorID).
		Scan(ctx, &tallies)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes by author: %w", err)
	}

	return tallies, nil
}

// StatesByUser returns the user's vote state for every tip they have
// voted on, keyed by tip ID. Used to annotate board listings.
func (r *VoteModel) StatesByUser(ctx context.Context, userID int64) (map[int64]enum.VoteState, error) {
	states := make(map[int64]enum.VoteState)

	var upvoted []types.TipUpvoter

	err := r.db.NewSelect().
		Model(&upvoted).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get upvoted tips: %w", err)
	}

	for _, row := range upvoted {
		states[row.TipID] = enum.VoteStateUp
	}

	var downvoted []types.TipDownvoter

	err = r.db.NewSelect().
		Model(&downvoted).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get downvoted tips: %w", err)
	}

	for _, row := range downvoted {
		states[row.TipID] = enum.VoteStateDown
	}

	return states, nil
}
