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

// TipModel handles database operations for tips.
type TipModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewTip creates a new tip model.
func NewTip(db *bun.DB, logger *zap.Logger) *TipModel {
	return &TipModel{
		db:     db,
		logger: logger.Named("db_tip"),
	}
}

// Create inserts a new tip. The created timestamp is set here and is
// immutable afterwards.
func (r *TipModel) Create(ctx context.Context, tip *types.Tip) error {
	tip.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(tip).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create tip: %w", err)
	}

	return nil
}

// GetByID retrieves a tip by its ID.
func (r *TipModel) GetByID(ctx context.Context, id int64) (*types.Tip, error) {
	tip := new(types.Tip)

	err := r.db.NewSelect().
		Model(tip).
		Where("tip.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrTipNotFound
		}
		return nil, fmt.Errorf("failed to get tip by ID: %w", err)
	}

	return tip, nil
}

// List retrieves all tips newest first, with their authors and vote counts.
func (r *TipModel) List(ctx context.Context) ([]*types.TipListing, error) {
	var tips []*types.TipListing

	err := r.db.NewSelect().
		Model(&tips).
		Relation("Author").
		ColumnExpr("tip.*").
		ColumnExpr("(SELECT count(*) FROM tip_upvoters AS u WHERE u.tip_id = tip.id) AS upvotes").
		ColumnExpr("(SELECT count(*) FROM tip_downvoters AS d WHERE d.tip_id = tip.id) AS downvotes").
		OrderExpr("tip.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}

	return tips, nil
}

// Delete removes a tip. The join table rows are removed by the cascading
// foreign keys.
func (r *TipModel) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*types.Tip)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete tip: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return types.ErrTipNotFound
	}

	r.logger.Debug("Deleted tip", zap.Int64("tipID", id))

	return nil
}
