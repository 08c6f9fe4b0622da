package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dilemma-arena/api/schemas"
)

// DBPool abstracts pgxpool.Pool so the store can be mocked in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// ErrNotFound is returned when a strategy id has no row.
var ErrNotFound = errors.New("strategy not found")

// Store is the PostgreSQL implementation of schemas.Repository.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

var _ schemas.Repository = (*Store)(nil)

// New creates a Store and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// CreateStrategy inserts a new strategy row. The logic tree is stored as a
// JSONB document so authored trees round-trip without a schema migration per
// condition kind.
func (s *Store) CreateStrategy(ctx context.Context, strat schemas.Strategy) error {
	tree, err := json.Marshal(strat.LogicTree)
	if err != nil {
		return fmt.Errorf("failed to marshal logic tree: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
        INSERT INTO strategies (id, name, author_name, author_id, logic_tree, score, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `, strat.ID, strat.Name, strat.AuthorName, strat.AuthorID, tree, strat.Score, strat.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert strategy: %w", err)
	}
	return nil
}

// ListStrategies returns every strategy, oldest first. The ordering is part
// of the contract: on-save tournaments iterate opponents in this order.
func (s *Store) ListStrategies(ctx context.Context) ([]schemas.Strategy, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, name, author_name, author_id, logic_tree, score, created_at
        FROM strategies
        ORDER BY created_at ASC, id ASC;
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategies: %w", err)
	}
	defer rows.Close()

	var strategies []schemas.Strategy
	for rows.Next() {
		strat, err := scanStrategy(rows)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return strategies, nil
}

// GetStrategy fetches one strategy by id.
func (s *Store) GetStrategy(ctx context.Context, id string) (schemas.Strategy, error) {
	row := s.pool.QueryRow(ctx, `
        SELECT id, name, author_name, author_id, logic_tree, score, created_at
        FROM strategies
        WHERE id = $1;
    `, id)
	strat, err := scanStrategy(row)
	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return schemas.Strategy{}, ErrNotFound
	}
	return strat, err
}

func scanStrategy(row pgx.Row) (schemas.Strategy, error) {
	var strat schemas.Strategy
	var tree []byte
	if err := row.Scan(&strat.ID, &strat.Name, &strat.AuthorName, &strat.AuthorID,
		&tree, &strat.Score, &strat.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schemas.Strategy{}, err
		}
		return schemas.Strategy{}, fmt.Errorf("failed to scan strategy row: %w", err)
	}
	if err := json.Unmarshal(tree, &strat.LogicTree); err != nil {
		return schemas.Strategy{}, fmt.Errorf("failed to unmarshal logic tree for strategy %s: %w", strat.ID, err)
	}
	return strat, nil
}

// ApplyTournamentResult commits one tournament pass inside a single
// transaction: every score delta and every match record, or nothing.
// An empty result is a no-op.
func (s *Store) ApplyTournamentResult(ctx context.Context, result *schemas.TournamentResult) error {
	if result.Empty() {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	if len(result.Deltas) > 0 {
		if err := s.applyDeltas(ctx, tx, result.Deltas); err != nil {
			return err
		}
	}
	if len(result.Records) > 0 {
		if err := s.appendRecords(ctx, tx, result.Records); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info("Applied tournament result",
		zap.Int("deltas", len(result.Deltas)),
		zap.Int("records", len(result.Records)))
	return nil
}

// applyDeltas queues one accumulating UPDATE per strategy. Deltas are
// applied in sorted-id order so a pass writes rows deterministically.
func (s *Store) applyDeltas(ctx context.Context, tx pgx.Tx, deltas map[string]int) error {
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	batch := &pgx.Batch{}
	const sqlAddScore = `UPDATE strategies SET score = score + $2 WHERE id = $1;`
	for _, id := range ids {
		batch.Queue(sqlAddScore, id, deltas[id])
	}

	br := tx.SendBatch(ctx, batch)
	if br == nil {
		return fmt.Errorf("failed to send batch: batch results is nil")
	}
	defer func() {
		_ = br.Close()
	}()

	for i, id := range ids {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to apply score delta for strategy %s (index %d): %w", id, i, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("score delta for strategy %s matched no row", id)
		}
	}
	return nil
}

func (s *Store) appendRecords(ctx context.Context, tx pgx.Tx, records []schemas.MatchRecord) error {
	rows := make([][]interface{}, len(records))
	for i, r := range records {
		rows[i] = []interface{}{
			r.ID,
			r.Strategy1ID, r.Strategy1Name,
			r.Strategy2ID, r.Strategy2Name,
			movesToStrings(r.Moves1), movesToStrings(r.Moves2),
			r.Score1, r.Score2,
			r.PlayedAt.UTC(),
		}
	}

	copyCount, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"match_records"},
		[]string{"id", "strategy1_id", "strategy1_name", "strategy2_id", "strategy2_name", "moves1", "moves2", "score1", "score2", "played_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy match records: %w", err)
	}
	if int(copyCount) != len(records) {
		return fmt.Errorf("mismatch in copied match record count: expected %d, got %d", len(records), copyCount)
	}
	return nil
}

// ListMatchRecords returns up to limit records, most recent first.
func (s *Store) ListMatchRecords(ctx context.Context, limit int) ([]schemas.MatchRecord, error) {
	query := `
        SELECT id, strategy1_id, strategy1_name, strategy2_id, strategy2_name, moves1, moves2, score1, score2, played_at
        FROM match_records
        ORDER BY played_at DESC, id DESC
    `
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1;`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query match records: %w", err)
	}
	defer rows.Close()

	var records []schemas.MatchRecord
	for rows.Next() {
		var r schemas.MatchRecord
		var moves1, moves2 []string
		err := rows.Scan(&r.ID, &r.Strategy1ID, &r.Strategy1Name, &r.Strategy2ID, &r.Strategy2Name,
			&moves1, &moves2, &r.Score1, &r.Score2, &r.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match record row: %w", err)
		}
		r.Moves1 = stringsToMoves(moves1)
		r.Moves2 = stringsToMoves(moves2)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return records, nil
}

// ClearArena wipes all match records and strategies in one transaction.
func (s *Store) ClearArena(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM match_records;`); err != nil {
		return fmt.Errorf("failed to delete match records: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM strategies;`); err != nil {
		return fmt.Errorf("failed to delete strategies: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.log.Warn("Arena cleared")
	return nil
}

func movesToStrings(moves []schemas.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = string(m)
	}
	return out
}

func stringsToMoves(raw []string) []schemas.Move {
	out := make([]schemas.Move, len(raw))
	for i, s := range raw {
		out[i] = schemas.Move(s)
	}
	return out
}
