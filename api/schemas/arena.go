package schemas

import "time"

// -- Arena Schemas --

// Strategy is a named, authored decision rule. The logic tree is immutable
// once a tournament has run over it; Score is the running total and is only
// ever changed by applying tournament deltas (or an explicit arena reset).
type Strategy struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	AuthorName string    `json:"author_name"`
	AuthorID   string    `json:"author_id"`
	LogicTree  LogicTree `json:"logic_tree"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// MatchRecord is the append-only log of a single 20-round match. Names are
// denormalized so a record stays readable after a strategy is deleted.
type MatchRecord struct {
	ID            string    `json:"id"`
	Strategy1ID   string    `json:"strategy1_id"`
	Strategy1Name string    `json:"strategy1_name"`
	Strategy2ID   string    `json:"strategy2_id"`
	Strategy2Name string    `json:"strategy2_name"`
	Moves1        []Move    `json:"moves1"`
	Moves2        []Move    `json:"moves2"`
	Score1        int       `json:"score1"`
	Score2        int       `json:"score2"`
	PlayedAt      time.Time `json:"played_at"`
}

// TournamentResult is the pure outcome of one tournament pass: a score delta
// per participating strategy id and the match records to append. The core
// never touches live scores; a Repository applies the whole bundle as a
// single atomic unit of work.
type TournamentResult struct {
	// Deltas maps strategy id to the amount to add to its current score.
	Deltas map[string]int `json:"deltas"`
	// Records lists the played matches in deterministic order
	// (ascending pair index for a grand tournament, existing-strategy
	// order for an on-save tournament).
	Records []MatchRecord `json:"records"`
}

// Empty reports whether the pass produced no work to persist.
func (r *TournamentResult) Empty() bool {
	return r == nil || (len(r.Deltas) == 0 && len(r.Records) == 0)
}
