package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dilemma-arena/api/schemas"
	"github.com/xkilldash9x/dilemma-arena/internal/tournament"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeRepo is an in-memory Repository capturing what the service persists.
type fakeRepo struct {
	mu         sync.Mutex
	strategies []schemas.Strategy
	applied    []*schemas.TournamentResult

	listErr   error
	createErr error
	applyErr  error
}

func (f *fakeRepo) ListStrategies(ctx context.Context) ([]schemas.Strategy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]schemas.Strategy, len(f.strategies))
	copy(out, f.strategies)
	return out, nil
}

func (f *fakeRepo) GetStrategy(ctx context.Context, id string) (schemas.Strategy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.strategies {
		if s.ID == id {
			return s, nil
		}
	}
	return schemas.Strategy{}, errors.New("not found")
}

func (f *fakeRepo) CreateStrategy(ctx context.Context, s schemas.Strategy) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.strategies = append(f.strategies, s)
	return nil
}

func (f *fakeRepo) ApplyTournamentResult(ctx context.Context, result *schemas.TournamentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, result)
	return nil
}

func (f *fakeRepo) ListMatchRecords(ctx context.Context, limit int) ([]schemas.MatchRecord, error) {
	return nil, nil
}

func (f *fakeRepo) ClearArena(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strategies = nil
	f.applied = nil
	return nil
}

func (f *fakeRepo) appliedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

func titForTatTree() schemas.LogicTree {
	return schemas.LogicTree{Clauses: []schemas.Clause{
		{Role: schemas.RoleIf, MatchMode: schemas.MatchAll, Action: schemas.ActionBetray,
			Conditions: []schemas.Condition{{Kind: schemas.KindOpponentLastMove, Target: schemas.MoveBetray}}},
		{Role: schemas.RoleElse, Action: schemas.ActionCooperate},
	}}
}

func betrayerTree() schemas.LogicTree {
	return schemas.LogicTree{Clauses: []schemas.Clause{
		{Role: schemas.RoleIf, MatchMode: schemas.MatchAny, Action: schemas.ActionBetray,
			Conditions: []schemas.Condition{
				{Kind: schemas.KindOpponentLastMove, Target: schemas.MoveCooperate},
				{Kind: schemas.KindOpponentLastMove, Target: schemas.MoveBetray},
			}},
	}}
}

func newTestArena(repo *fakeRepo) *Arena {
	orch := tournament.New(zap.NewNop(), 20, nil)
	return New(repo, orch, zap.NewNop())
}

func TestSaveStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("first strategy persists without a tournament", func(t *testing.T) {
		repo := &fakeRepo{}
		arena := newTestArena(repo)

		strat, err := arena.SaveStrategy(ctx, StrategyInput{
			Name:       "tit for tat",
			AuthorName: "ada",
			LogicTree:  titForTatTree(),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, strat.ID)
		assert.Len(t, repo.strategies, 1)
		assert.Zero(t, repo.appliedCount(), "no opponents means nothing to persist")
	})

	t.Run("second strategy triggers an on-save tournament", func(t *testing.T) {
		repo := &fakeRepo{}
		arena := newTestArena(repo)

		first, err := arena.SaveStrategy(ctx, StrategyInput{Name: "tit for tat", LogicTree: titForTatTree()})
		require.NoError(t, err)
		second, err := arena.SaveStrategy(ctx, StrategyInput{Name: "betrayer", LogicTree: betrayerTree()})
		require.NoError(t, err)

		require.Equal(t, 1, repo.appliedCount())
		result := repo.applied[0]
		require.Len(t, result.Records, 1)
		assert.Equal(t, second.ID, result.Records[0].Strategy1ID)
		assert.Equal(t, first.ID, result.Records[0].Strategy2ID)

		// betrayer vs tit for tat over 20 rounds: 2 vs 0.
		assert.Equal(t, 2, result.Deltas[second.ID])
		assert.Equal(t, 0, result.Deltas[first.ID])
	})

	t.Run("rejects an invalid logic tree", func(t *testing.T) {
		repo := &fakeRepo{}
		arena := newTestArena(repo)

		_, err := arena.SaveStrategy(ctx, StrategyInput{
			Name: "broken",
			LogicTree: schemas.LogicTree{Clauses: []schemas.Clause{
				{Role: schemas.RoleElse, Action: schemas.ActionCooperate},
				{Role: schemas.RoleIf, MatchMode: schemas.MatchAll, Action: schemas.ActionBetray},
			}},
		})
		require.Error(t, err)
		assert.Empty(t, repo.strategies, "an invalid strategy must not be persisted")
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		repo := &fakeRepo{}
		arena := newTestArena(repo)

		_, err := arena.SaveStrategy(ctx, StrategyInput{LogicTree: titForTatTree()})
		require.Error(t, err)
	})

	t.Run("propagates persistence failures", func(t *testing.T) {
		repo := &fakeRepo{strategies: []schemas.Strategy{
			{ID: "existing", Name: "cooperative", LogicTree: titForTatTree()},
		}}
		repo.applyErr = errors.New("commit failed")
		arena := newTestArena(repo)

		_, err := arena.SaveStrategy(ctx, StrategyInput{Name: "new", LogicTree: betrayerTree()})
		require.Error(t, err)
		assert.ErrorIs(t, err, repo.applyErr)
	})
}

func TestRunGrandTournament(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a full round-robin", func(t *testing.T) {
		repo := &fakeRepo{strategies: []schemas.Strategy{
			{ID: "s1", Name: "tit for tat", LogicTree: titForTatTree()},
			{ID: "s2", Name: "betrayer", LogicTree: betrayerTree()},
			{ID: "s3", Name: "tit for tat 2", LogicTree: titForTatTree()},
		}}
		arena := newTestArena(repo)

		require.NoError(t, arena.RunGrandTournament(ctx))
		require.Equal(t, 1, repo.appliedCount())
		assert.Len(t, repo.applied[0].Records, 3, "N=3 -> 3 unordered pairs")
	})

	t.Run("fewer than two strategies is zero work", func(t *testing.T) {
		repo := &fakeRepo{strategies: []schemas.Strategy{
			{ID: "only", Name: "lonely", LogicTree: titForTatTree()},
		}}
		arena := newTestArena(repo)

		require.NoError(t, arena.RunGrandTournament(ctx))
		assert.Zero(t, repo.appliedCount())
	})

	t.Run("propagates snapshot failures", func(t *testing.T) {
		repo := &fakeRepo{listErr: errors.New("db down")}
		arena := newTestArena(repo)

		err := arena.RunGrandTournament(ctx)
		assert.ErrorIs(t, err, repo.listErr)
	})
}

func TestLeaderboard(t *testing.T) {
	repo := &fakeRepo{strategies: []schemas.Strategy{
		{ID: "low", Name: "low", Score: 3},
		{ID: "high", Name: "high", Score: 99},
		{ID: "mid", Name: "mid", Score: 40},
	}}
	arena := newTestArena(repo)

	board, err := arena.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "high", board[0].ID)
	assert.Equal(t, "mid", board[1].ID)
	assert.Equal(t, "low", board[2].ID)
}

func TestRunScheduler(t *testing.T) {
	repo := &fakeRepo{strategies: []schemas.Strategy{
		{ID: "s1", Name: "tit for tat", LogicTree: titForTatTree()},
		{ID: "s2", Name: "betrayer", LogicTree: betrayerTree()},
	}}
	arena := newTestArena(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- arena.RunScheduler(ctx, 10*time.Millisecond)
	}()

	// Wait for at least one pass to land, then stop the scheduler.
	require.Eventually(t, func() bool { return repo.appliedCount() >= 1 },
		2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
