// Package solver provides the card-selection capability for the top
// difficulty tier: an adapter around an external double-dummy oracle with a
// transparent fallback to the search engine. Callers never branch on
// whether the oracle is reachable; they call Solve and the returned Source
// says which engine answered.
package solver

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/play"
)

// ErrOracleUnavailable wraps any oracle-side fault: dial failure, protocol
// error, timeout, or an illegal reply. It never escapes Solve; it appears
// only in logs.
var ErrOracleUnavailable = errors.New("solver: oracle unavailable")

// Source reports which engine produced a card.
type Source int

const (
	SourceSearch Source = iota
	SourceOracle
)

func (s Source) String() string {
	if s < SourceSearch || s > SourceOracle {
		return "unknown"
	}
	return [...]string{"search", "oracle"}[s]
}

// Solver picks a card for the seat to move.
type Solver interface {
	Solve(ctx context.Context, s play.State) (cards.Card, Source, error)
}

// SearchSolver answers with the alpha-beta searcher at a fixed depth. It is
// both a difficulty tier in its own right and the oracle's fallback.
type SearchSolver struct {
	searcher *play.Searcher
	depth    int
}

// NewSearchSolver wraps a searcher at the given depth. A nil searcher gets
// a private one.
func NewSearchSolver(searcher *play.Searcher, depth int) *SearchSolver {
	if searcher == nil {
		searcher = play.NewSearcher(nil)
	}
	return &SearchSolver{searcher: searcher, depth: depth}
}

func (ss *SearchSolver) Solve(ctx context.Context, s play.State) (cards.Card, Source, error) {
	if err := ctx.Err(); err != nil {
		return cards.Card{}, SourceSearch, err
	}
	c, err := ss.searcher.BestCard(s, ss.depth)
	return c, SourceSearch, err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
