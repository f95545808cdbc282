package cli

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"quiz-session-service/internal/tui"

	"github.com/spf13/cobra"
)

// NewPlayCmd runs a single quiz session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			service, _, b, err := newService(ctx, *configPath)
			if err != nil {
				return err
			}
			defer b.Close()

			final, err := tea.NewProgram(tui.New(ctx, service)).Run()
			if err != nil {
				return fmt.Errorf("run terminal ui: %w", err)
			}
			if m, ok := final.(*tui.Model); ok && m.Farewell() != "" {
				fmt.Fprintln(cmd.OutOrStdout(), m.Farewell())
			}
			return nil
		},
	}
}
