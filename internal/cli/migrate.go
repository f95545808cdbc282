package cli

import (
	"context"
	"fmt"
	"log"

	"quiz-session-service/internal/config"
	"quiz-session-service/internal/infra/postgres"

	"github.com/spf13/cobra"
)

// NewMigrateCmd manages the Postgres subjects table.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var rollback, status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create, roll back or inspect the Postgres subjects table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			schema := postgres.OpenSchema(cfg.Postgres.URL)
			defer schema.Close()

			switch {
			case status:
				pending, err := schema.Pending(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d pending migration(s)\n", len(pending))
				for _, m := range pending {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", m.Name)
				}
				return nil
			case rollback:
				group, err := schema.Down(cmd.Context())
				if err != nil {
					return err
				}
				if group.IsZero() {
					log.Printf("nothing to roll back")
					return nil
				}
				log.Printf("rolled back %s", group)
				return nil
			default:
				return upgradeSchema(cmd.Context(), schema)
			}
		},
	}
	cmd.Flags().BoolVar(&rollback, "rollback", false, "roll back the last migration group")
	cmd.Flags().BoolVar(&status, "status", false, "list pending migrations")
	return cmd
}

func upgradeSchema(ctx context.Context, schema *postgres.Schema) error {
	group, err := schema.Up(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Printf("subjects schema up to date")
		return nil
	}
	log.Printf("migrations applied: %s", group)
	return nil
}
