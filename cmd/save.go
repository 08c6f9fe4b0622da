// -- cmd/save.go --
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/dilemma-arena/internal/observability"
	"github.com/xkilldash9x/dilemma-arena/internal/service"
)

// newSaveCommand saves an authored strategy from a JSON file and plays it
// against every existing strategy.
//
// The file holds a service.StrategyInput document:
//
//	{
//	  "name": "tit for tat",
//	  "author_name": "ada",
//	  "logic_tree": {"clauses": [
//	    {"role": "if", "match_mode": "all", "action": "betray",
//	     "conditions": [{"kind": "opponent_last_move", "target": "betray"}]},
//	    {"role": "else", "action": "cooperate"}
//	  ]}
//	}
func newSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <strategy.json>",
		Short: "Save a strategy and run its entry tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read strategy file: %w", err)
			}
			var input service.StrategyInput
			if err := json.Unmarshal(raw, &input); err != nil {
				return fmt.Errorf("failed to parse strategy file: %w", err)
			}

			components, err := service.BuildComponents(cmd.Context(), cfg, observability.GetLogger())
			if err != nil {
				return err
			}
			defer components.Shutdown()

			strat, err := components.Arena.SaveStrategy(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved strategy %q with id %s\n", strat.Name, strat.ID)
			return nil
		},
	}
}
