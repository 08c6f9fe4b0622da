// -- cmd/tournament.go --
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/dilemma-arena/internal/observability"
	"github.com/xkilldash9x/dilemma-arena/internal/service"
)

// newTournamentCommand runs a single grand tournament pass immediately.
func newTournamentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tournament",
		Short: "Run one grand tournament over all saved strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := service.BuildComponents(cmd.Context(), cfg, observability.GetLogger())
			if err != nil {
				return err
			}
			defer components.Shutdown()

			return components.Arena.RunGrandTournament(cmd.Context())
		},
	}
}
