// -- cmd/leaderboard.go --
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/dilemma-arena/internal/observability"
	"github.com/xkilldash9x/dilemma-arena/internal/service"
)

// newLeaderboardCommand prints the strategies sorted by score.
func newLeaderboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the current strategy standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := service.BuildComponents(cmd.Context(), cfg, observability.GetLogger())
			if err != nil {
				return err
			}
			defer components.Shutdown()

			board, err := components.Arena.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tSCORE\tNAME\tAUTHOR")
			for i, s := range board {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", i+1, s.Score, s.Name, s.AuthorName)
			}
			return w.Flush()
		},
	}
}
