package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []struct {
			name  string
			table string
			expr  string
		}{
			// Board listing is always newest first
			{"idx_tips_created_at", "tips", "created_at DESC"},
			// Reputation recomputation scans by author
			{"idx_tips_author_id", "tips", "author_id"},
			// Viewer vote annotation scans the join tables by voter
			{"idx_tip_upvoters_user_id", "tip_upvoters", "user_id"},
			{"idx_tip_downvoters_user_id", "tip_downvoters", "user_id"},
		}

		for _, idx := range indexes {
			_, err := db.NewRaw(fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
				idx.name, idx.table, idx.expr)).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"idx_tips_created_at",
			"idx_tips_author_id",
			"idx_tip_upvoters_user_id",
			"idx_tip_downvoters_user_id",
		}

		for _, name := range indexes {
			if _, err := db.NewRaw("DROP INDEX IF EXISTS " + name).Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop index %s: %w", name, err)
			}
		}

		return nil
	})
}
