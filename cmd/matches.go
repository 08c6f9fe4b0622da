// -- cmd/matches.go --
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/dilemma-arena/internal/observability"
	"github.com/xkilldash9x/dilemma-arena/internal/service"
)

// newMatchesCommand prints recent match records, most recent first.
func newMatchesCommand() *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:   "matches",
		Short: "Show recent match records",
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := service.BuildComponents(cmd.Context(), cfg, observability.GetLogger())
			if err != nil {
				return err
			}
			defer components.Shutdown()

			records, err := components.Store.ListMatchRecords(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%d) vs %s (%d)\n",
					r.PlayedAt.Format("2006-01-02 15:04:05"),
					r.Strategy1Name, r.Score1, r.Strategy2Name, r.Score2)
			}
			return nil
		},
	}

	command.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of records to show")
	return command
}
