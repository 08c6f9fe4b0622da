// File: internal/service/arena.go
// Description: The arena service is the calling context around the tournament
// engine: it owns the strategy save flow, triggers grand tournaments, and
// hands every result bundle to the repository for atomic persistence.

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dilemma-arena/api/schemas"
	"github.com/xkilldash9x/dilemma-arena/internal/tournament"
)

// Arena wires the tournament orchestrator to the storage repository.
type Arena struct {
	repo   schemas.Repository
	orch   *tournament.Orchestrator
	logger *zap.Logger

	// Injectable for deterministic tests.
	newID func() string
	now   func() time.Time
}

// New creates the arena service.
func New(repo schemas.Repository, orch *tournament.Orchestrator, logger *zap.Logger) *Arena {
	return &Arena{
		repo:   repo,
		orch:   orch,
		logger: logger.Named("arena"),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// StrategyInput is an authored strategy before it has an id or a score.
type StrategyInput struct {
	Name       string            `json:"name"`
	AuthorName string            `json:"author_name"`
	AuthorID   string            `json:"author_id"`
	LogicTree  schemas.LogicTree `json:"logic_tree"`
}

// SaveStrategy validates and stores a new strategy, then plays it against
// every existing strategy and persists the resulting deltas and match
// records as one batch. The returned strategy carries its assigned id;
// its Score field does not include the on-save deltas (scores are only
// ever changed through the repository).
func (a *Arena) SaveStrategy(ctx context.Context, input StrategyInput) (schemas.Strategy, error) {
	if input.Name == "" {
		return schemas.Strategy{}, fmt.Errorf("strategy name is required")
	}
	if err := input.LogicTree.Validate(); err != nil {
		return schemas.Strategy{}, fmt.Errorf("invalid logic tree: %w", err)
	}

	existing, err := a.repo.ListStrategies(ctx)
	if err != nil {
		return schemas.Strategy{}, fmt.Errorf("failed to list strategies: %w", err)
	}

	strat := schemas.Strategy{
		ID:         a.newID(),
		Name:       input.Name,
		AuthorName: input.AuthorName,
		AuthorID:   input.AuthorID,
		LogicTree:  input.LogicTree,
		CreatedAt:  a.now().UTC(),
	}
	if err := a.repo.CreateStrategy(ctx, strat); err != nil {
		return schemas.Strategy{}, fmt.Errorf("failed to create strategy: %w", err)
	}
	a.logger.Info("Strategy saved",
		zap.String("id", strat.ID),
		zap.String("name", strat.Name),
		zap.Int("opponents", len(existing)))

	result, err := a.orch.RunOnSave(strat, existing)
	if err != nil {
		if errors.Is(err, tournament.ErrInProgress) {
			a.logger.Warn("Skipping on-save tournament, another pass is running",
				zap.String("id", strat.ID))
			return strat, nil
		}
		return schemas.Strategy{}, fmt.Errorf("on-save tournament failed: %w", err)
	}
	if result.Empty() {
		return strat, nil
	}

	if err := a.repo.ApplyTournamentResult(ctx, result); err != nil {
		return schemas.Strategy{}, fmt.Errorf("failed to persist on-save tournament: %w", err)
	}
	return strat, nil
}

// RunGrandTournament loads a snapshot of the arena, plays a full round-robin
// and persists the bundle. A pass already in progress or fewer than two
// strategies is zero work, not an error.
func (a *Arena) RunGrandTournament(ctx context.Context) error {
	strategies, err := a.repo.ListStrategies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list strategies: %w", err)
	}

	result, err := a.orch.RunGrand(strategies)
	if err != nil {
		if errors.Is(err, tournament.ErrInProgress) {
			a.logger.Warn("Skipping grand tournament, another pass is running")
			return nil
		}
		return fmt.Errorf("grand tournament failed: %w", err)
	}
	if result.Empty() {
		return nil
	}

	if err := a.repo.ApplyTournamentResult(ctx, result); err != nil {
		return fmt.Errorf("failed to persist grand tournament: %w", err)
	}
	return nil
}

// Leaderboard returns the current strategies sorted by descending score.
func (a *Arena) Leaderboard(ctx context.Context) ([]schemas.Strategy, error) {
	strategies, err := a.repo.ListStrategies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list strategies: %w", err)
	}
	// Stable sort keeps creation order among equal scores.
	sort.SliceStable(strategies, func(i, j int) bool {
		return strategies[i].Score > strategies[j].Score
	})
	return strategies, nil
}

// ClearArena wipes every strategy and match record.
func (a *Arena) ClearArena(ctx context.Context) error {
	return a.repo.ClearArena(ctx)
}

// RunScheduler runs a grand tournament every interval until the context is
// cancelled. Failures are logged and the next tick still fires; a pass never
// outlives its tick slot because passes are synchronous.
func (a *Arena) RunScheduler(ctx context.Context, interval time.Duration) error {
	a.logger.Info("Tournament scheduler started", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Tournament scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := a.RunGrandTournament(ctx); err != nil {
				a.logger.Error("Scheduled grand tournament failed", zap.Error(err))
			}
		}
	}
}
