// -- cmd/serve.go --
package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/dilemma-arena/internal/observability"
	"github.com/xkilldash9x/dilemma-arena/internal/service"
)

// newServeCommand runs the tournament scheduler until interrupted: a grand
// tournament every arena.tournament_interval.
func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the periodic grand tournament scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			components, err := service.BuildComponents(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer components.Shutdown()

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return components.Arena.RunScheduler(ctx, cfg.Arena.TournamentInterval)
			})

			logger.Info("Arena scheduler running, press Ctrl+C to stop",
				zap.Duration("interval", cfg.Arena.TournamentInterval))

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("Arena scheduler shut down")
			return nil
		},
	}
}
