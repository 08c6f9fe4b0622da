package schemas

import "context"

// Repository is the storage collaborator the arena persists through. The core
// engine and orchestrator never mutate stored state themselves; they hand a
// complete TournamentResult to a Repository, which must apply it atomically
// (all score deltas and all match records, or none of them).
type Repository interface {
	// ListStrategies returns a snapshot of every strategy in the arena.
	ListStrategies(ctx context.Context) ([]Strategy, error)

	// GetStrategy fetches a single strategy by id.
	GetStrategy(ctx context.Context, id string) (Strategy, error)

	// CreateStrategy inserts a new strategy. The caller supplies the id.
	CreateStrategy(ctx context.Context, s Strategy) error

	// ApplyTournamentResult commits one tournament pass as a single
	// transaction: every delta added to its strategy's score and every
	// record appended, or nothing at all.
	ApplyTournamentResult(ctx context.Context, result *TournamentResult) error

	// ListMatchRecords returns up to limit records, most recent first.
	// limit <= 0 means no limit.
	ListMatchRecords(ctx context.Context, limit int) ([]MatchRecord, error)

	// ClearArena deletes all match records and strategies.
	ClearArena(ctx context.Context) error
}
