// -- cmd/clear.go --
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/dilemma-arena/internal/observability"
	"github.com/xkilldash9x/dilemma-arena/internal/service"
)

// newClearCommand wipes the arena: all strategies and match records.
func newClearCommand() *cobra.Command {
	var force bool

	command := &cobra.Command{
		Use:   "clear",
		Short: "Delete every strategy and match record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to clear the arena without --force")
			}

			components, err := service.BuildComponents(cmd.Context(), cfg, observability.GetLogger())
			if err != nil {
				return err
			}
			defer components.Shutdown()

			if err := components.Arena.ClearArena(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Arena cleared.")
			return nil
		},
	}

	command.Flags().BoolVar(&force, "force", false, "confirm deletion of all arena data")
	return command
}
