package migrations

import (
	"context"
	"fmt"

	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []struct {
			model       any
			name        string
			foreignKeys []string
		}{
			{
				model: (*types.User)(nil),
				name:  "users",
			},
			{
				model: (*types.Tip)(nil),
				name:  "tips",
				foreignKeys: []string{
					`("author_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				},
			},
			{
				model: (*types.TipUpvoter)(nil),
				name:  "tip_upvoters",
				foreignKeys: []string{
					`("tip_id") REFERENCES "tips" ("id") ON DELETE CASCADE`,
					`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				},
			},
			{
				model: (*types.TipDownvoter)(nil),
				name:  "tip_downvoters",
				foreignKeys: []string{
					`("tip_id") REFERENCES "tips" ("id") ON DELETE CASCADE`,
					`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				},
			},
		}

		for _, table := range tables {
			query := db.NewCreateTable().
				Model(table.model).
				ModelTableExpr(table.name).
				IfNotExists()

			for _, fk := range table.foreignKeys {
				query = query.ForeignKey(fk)
			}

			if _, err := query.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		// Drop in reverse dependency order
		tables := []string{"tip_downvoters", "tip_upvoters", "tips", "users"}

		for _, table := range tables {
			if _, err := db.NewDropTable().
				TableExpr(table).
				IfExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
