// Package engine is the public facade of the bridge engine: bidding, card
// play, contract resolution, scoring, played-call review, and self-play.
// One Engine serves any number of concurrent boards; all decision methods
// are pure with respect to their inputs.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/bidding"
	"github.com/yourusername/bridgeengine/pkg/play"
	"github.com/yourusername/bridgeengine/pkg/solver"
)

// EngineOptions configures a new Engine.
type EngineOptions struct {
	// Config is the profile; DefaultConfig when nil.
	Config *Config

	// Logger receives engine logs; discarded when nil.
	Logger *log.Logger

	// Oracle overrides the expert-tier solver, mainly for tests. When nil
	// and the config names a solver address, a TCP oracle adapter is
	// built; otherwise expert uses its deepest search.
	Oracle solver.Solver
}

// Engine bundles the auction and play engines behind one surface.
type Engine struct {
	cfg      *Config
	logger   *log.Logger
	bidding  *bidding.System
	searcher *play.Searcher
	oracle   solver.Solver
}

// NewEngine creates an engine from options.
func NewEngine(opts EngineOptions) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	searcher := play.NewSearcher(play.NewEvalCache(uint32(cfg.Engine.CacheSize)))

	oracle := opts.Oracle
	if oracle == nil && cfg.Solver.Addr != "" {
		fallback := solver.NewSearchSolver(searcher, cfg.depthFor(play.Expert))
		oracle = solver.NewOracle(solver.OracleOptions{
			Addr:    cfg.Solver.Addr,
			Timeout: cfg.SolverTimeout(),
			Logger:  logger.WithPrefix("solver"),
		}, fallback)
	}

	return &Engine{
		cfg:    cfg,
		logger: logger,
		bidding: bidding.NewSystem(bidding.Options{
			Slam:   cfg.SlamThresholds(),
			Logger: logger.WithPrefix("bidding"),
		}),
		searcher: searcher,
		oracle:   oracle,
	}
}

// Cache exposes the play evaluation cache for statistics.
func (e *Engine) Cache() *play.EvalCache { return e.searcher.Cache() }

// NextBid suggests a legal call for the seat on turn, with its rationale.
func (e *Engine) NextBid(hand cards.Hand, a auction.Auction) (*bidding.Suggestion, error) {
	return e.bidding.Suggest(hand, a)
}

// Decision is a chosen card plus where it came from. Source is search
// unless the double-dummy oracle actually answered.
type Decision struct {
	Card   cards.Card
	Source solver.Source
}

// NextCard picks a card for the seat to move at the given difficulty. The
// expert tier consults the oracle when one is configured; any oracle fault
// degrades to search, visible in Decision.Source.
func (e *Engine) NextCard(ctx context.Context, s play.State, difficulty play.Difficulty) (Decision, error) {
	if s.Done() {
		return Decision{}, fmt.Errorf("engine: board is complete")
	}

	if e.oracle != nil && e.cfg.oracleFor(difficulty) {
		c, source, err := e.oracle.Solve(ctx, s)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Card: c, Source: source}, nil
	}

	c, err := e.searcher.BestCard(s, e.cfg.depthFor(difficulty))
	if err != nil {
		return Decision{}, err
	}
	return Decision{Card: c, Source: solver.SourceSearch}, nil
}

// RankCards evaluates every legal card at the given difficulty's depth,
// best first.
func (e *Engine) RankCards(s play.State, difficulty play.Difficulty) ([]play.PlayWithEval, error) {
	return e.searcher.RankPlays(s, e.cfg.depthFor(difficulty))
}

// ResolveContract resolves a finished auction. A passed-out board returns
// (nil, nil).
func (e *Engine) ResolveContract(a auction.Auction) (*auction.Contract, error) {
	return a.Result()
}

// ScoreHand scores a played-out contract from the declaring side's
// perspective.
func (e *Engine) ScoreHand(c auction.Contract, tricksWon int, vulnerable bool) int {
	return auction.Score(c, tricksWon, vulnerable)
}

// Settle converts a declarer-signed score into points credited to each
// side. A set contract credits the defenders, never a negative amount to
// the declaring side.
func (e *Engine) Settle(score int) (declarerPoints, defenderPoints int) {
	return auction.Settle(score)
}
