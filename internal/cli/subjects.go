package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewSubjectsCmd prints the catalog served by the configured provider.
func NewSubjectsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List the subjects of the configured catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, b, err := newService(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer b.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tQUESTIONS")
			for _, s := range service.Subjects() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", s.ID, s.Name, s.QuestionCount)
			}
			return w.Flush()
		},
	}
}
