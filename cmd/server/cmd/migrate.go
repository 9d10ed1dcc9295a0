package cmd

import (
	"fmt"

	"nodex/internal/infrastructure/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Применить или откатить миграции схемы",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(_ *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		mg := migration.NewMigration(cfg, migration.DefaultEngine)
		var err error
		if direction == "down" {
			err = mg.Down()
		} else {
			err = mg.Up()
		}
		if err != nil {
			return err
		}

		log.Info("migrations applied", "direction", direction, "driver", cfg.DB.Driver)
		fmt.Println("✅ Миграции применены:", direction)
		return nil
	},
}
