// File: internal/tournament/orchestrator.go
// Description: Runs tournament passes over an immutable snapshot of the
// arena's strategies and returns a pure result bundle. Persisting the bundle
// is the repository's job; the orchestrator never reads scores back or
// mutates shared state.

package tournament

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dilemma-arena/api/schemas"
	"github.com/xkilldash9x/dilemma-arena/internal/engine"
)

// ErrInProgress is returned when a tournament pass is requested while another
// is still running. Callers treat it as zero work, not a failure.
var ErrInProgress = errors.New("tournament already in progress")

// Orchestrator schedules matches for grand (full round-robin) and on-save
// (new entrant vs. all existing) tournaments. It is not reentrant: a pass
// must finish before the next one may start.
type Orchestrator struct {
	logger *zap.Logger
	rounds int
	rng    engine.Rand

	// Injectable for deterministic tests.
	newID func() string
	now   func() time.Time

	running chan struct{}
}

// New creates an Orchestrator. rounds <= 0 falls back to the default match
// length. rng feeds the RANDOM clause action; pass a seeded source for
// reproducible passes.
func New(logger *zap.Logger, rounds int, rng engine.Rand) *Orchestrator {
	if rounds <= 0 {
		rounds = engine.DefaultRounds
	}
	o := &Orchestrator{
		logger:  logger.Named("tournament"),
		rounds:  rounds,
		rng:     rng,
		newID:   uuid.NewString,
		now:     time.Now,
		running: make(chan struct{}, 1),
	}
	return o
}

// acquire takes the single run slot without blocking.
func (o *Orchestrator) acquire() bool {
	select {
	case o.running <- struct{}{}:
		return true
	default:
		return false
	}
}

func (o *Orchestrator) release() { <-o.running }

// RunGrand plays every unordered pair of strategies once, in ascending pair
// order, and returns the accumulated deltas plus one record per match.
// Fewer than two strategies is a no-op (nil result, nil error). A concurrent
// invocation returns ErrInProgress.
func (o *Orchestrator) RunGrand(strategies []schemas.Strategy) (*schemas.TournamentResult, error) {
	if !o.acquire() {
		return nil, ErrInProgress
	}
	defer o.release()

	if len(strategies) < 2 {
		o.logger.Info("Skipping grand tournament, not enough strategies",
			zap.Int("count", len(strategies)))
		return nil, nil
	}

	o.logger.Info("Starting grand tournament",
		zap.Int("strategies", len(strategies)),
		zap.Int("matches", len(strategies)*(len(strategies)-1)/2))

	deciders := o.compileAll(strategies)
	result := &schemas.TournamentResult{Deltas: make(map[string]int, len(strategies))}
	for _, s := range strategies {
		result.Deltas[s.ID] = 0
	}

	for i := 0; i < len(strategies); i++ {
		for j := i + 1; j < len(strategies); j++ {
			outcome := engine.Simulate(deciders[i], deciders[j], o.rounds)
			result.Deltas[strategies[i].ID] += outcome.Score1
			result.Deltas[strategies[j].ID] += outcome.Score2
			result.Records = append(result.Records, o.record(strategies[i], strategies[j], outcome))
		}
	}

	o.logger.Info("Grand tournament finished", zap.Int("records", len(result.Records)))
	return result, nil
}

// RunOnSave plays the entrant against every existing strategy, in the order
// given, skipping a self-match if the entrant's id already appears in the
// set. No opponents is a no-op (nil result, nil error).
func (o *Orchestrator) RunOnSave(entrant schemas.Strategy, existing []schemas.Strategy) (*schemas.TournamentResult, error) {
	if !o.acquire() {
		return nil, ErrInProgress
	}
	defer o.release()

	entrantDecider := engine.Compile(entrant.LogicTree, o.rng)

	result := &schemas.TournamentResult{Deltas: make(map[string]int, len(existing)+1)}
	for _, opponent := range existing {
		if opponent.ID == entrant.ID {
			continue
		}
		outcome := engine.Simulate(entrantDecider, engine.Compile(opponent.LogicTree, o.rng), o.rounds)
		result.Deltas[entrant.ID] += outcome.Score1
		result.Deltas[opponent.ID] += outcome.Score2
		result.Records = append(result.Records, o.record(entrant, opponent, outcome))
	}

	if len(result.Records) == 0 {
		o.logger.Info("Skipping on-save tournament, no opponents",
			zap.String("strategy", entrant.Name))
		return nil, nil
	}

	o.logger.Info("On-save tournament finished",
		zap.String("strategy", entrant.Name),
		zap.Int("matches", len(result.Records)),
		zap.Int("entrant_delta", result.Deltas[entrant.ID]))
	return result, nil
}

func (o *Orchestrator) compileAll(strategies []schemas.Strategy) []*engine.Decider {
	deciders := make([]*engine.Decider, len(strategies))
	for i, s := range strategies {
		deciders[i] = engine.Compile(s.LogicTree, o.rng)
	}
	return deciders
}

func (o *Orchestrator) record(s1, s2 schemas.Strategy, outcome engine.MatchOutcome) schemas.MatchRecord {
	return schemas.MatchRecord{
		ID:            o.newID(),
		Strategy1ID:   s1.ID,
		Strategy1Name: s1.Name,
		Strategy2ID:   s2.ID,
		Strategy2Name: s2.Name,
		Moves1:        outcome.Moves1,
		Moves2:        outcome.Moves2,
		Score1:        outcome.Score1,
		Score2:        outcome.Score2,
		PlayedAt:      o.now().UTC(),
	}
}
