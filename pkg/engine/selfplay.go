package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/play"
)

// maxAuctionCalls bounds a runaway auction; no sane auction approaches it.
const maxAuctionCalls = 80

// SelfplayOptions controls a self-play run.
type SelfplayOptions struct {
	Deals      int             // boards to play (default 32)
	Seed       int64           // RNG seed (0 = random)
	Workers    int             // parallel workers (0 = GOMAXPROCS)
	Difficulty play.Difficulty // card-play strength for all four seats
	Progress   func(SelfplayProgress)
}

// SelfplayProgress is reported after each completed board.
type SelfplayProgress struct {
	DealsCompleted int
	DealsTotal     int
	Percent        float64
}

// SelfplayResult aggregates a run. Scores are signed toward North-South,
// so a mean near zero is the expected long-run behavior of a fair engine
// playing itself.
type SelfplayResult struct {
	Deals         int
	PassedOut     int
	ContractsMade int
	ContractsSet  int

	MeanScore   float64 // North-South points per board
	ScoreStdDev float64
	ScoreCI95   float64
}

// DealRecord is one completed self-play board.
type DealRecord struct {
	Deal     cards.Deal
	Dealer   cards.Seat
	Auction  auction.Auction
	Contract *auction.Contract // nil when passed out
	Tricks   int               // declarer's tricks
	Score    int               // declarer-signed
	NSPoints int               // signed toward North-South
}

// Selfplay deals random boards and has the engine bid and play all four
// seats, in parallel across workers. Vulnerability rotates with the board
// number as in duplicate play.
func (e *Engine) Selfplay(ctx context.Context, opts SelfplayOptions) (*SelfplayResult, error) {
	if opts.Deals <= 0 {
		opts.Deals = 32
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Workers > opts.Deals {
		opts.Workers = opts.Deals
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Int63()
	}

	scores := make([]float64, opts.Deals)
	records := make([]DealRecord, opts.Deals)
	var completed atomic.Int64
	var progressMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	// Fixed board allotment: worker w plays boards w, w+Workers, ... so a
	// seeded run deals and plays the same boards every time regardless of
	// scheduling.
	for w := 0; w < opts.Workers; w++ {
		seed := opts.Seed + int64(w)*1000000
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			for i := w; i < opts.Deals; i += opts.Workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				record, err := e.playOneBoard(ctx, rng, i, opts.Difficulty)
				if err != nil {
					return fmt.Errorf("board %d: %w", i+1, err)
				}
				records[i] = record
				scores[i] = float64(record.NSPoints)

				done := completed.Add(1)
				if opts.Progress != nil {
					progressMu.Lock()
					opts.Progress(SelfplayProgress{
						DealsCompleted: int(done),
						DealsTotal:     opts.Deals,
						Percent:        float64(done) / float64(opts.Deals) * 100,
					})
					progressMu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SelfplayResult{Deals: opts.Deals}
	for _, r := range records {
		switch {
		case r.Contract == nil:
			result.PassedOut++
		case r.Score >= 0:
			result.ContractsMade++
		default:
			result.ContractsSet++
		}
	}
	result.MeanScore = stat.Mean(scores, nil)
	if opts.Deals > 1 {
		result.ScoreStdDev = stat.StdDev(scores, nil)
		result.ScoreCI95 = 1.96 * result.ScoreStdDev / math.Sqrt(float64(opts.Deals))
	}
	return result, nil
}

// playOneBoard bids and plays a single random deal.
func (e *Engine) playOneBoard(ctx context.Context, rng *rand.Rand, board int, difficulty play.Difficulty) (DealRecord, error) {
	deal := cards.RandomDeal(rng)
	dealer := cards.Seats[board%4]
	vul := auction.Vulnerability(board % 4)

	record := DealRecord{Deal: deal, Dealer: dealer}

	a := auction.New(dealer)
	for !a.Finished() {
		if len(a.Calls) > maxAuctionCalls {
			return record, fmt.Errorf("auction did not terminate: %v", a)
		}
		sug, err := e.NextBid(deal.Hand(a.Turn()), a)
		if err != nil {
			return record, err
		}
		if a, err = a.Apply(sug.Call); err != nil {
			return record, err
		}
	}
	record.Auction = a

	contract, err := a.Result()
	if err != nil {
		return record, err
	}
	if contract == nil {
		return record, nil
	}
	record.Contract = contract

	s := play.NewState(deal, *contract)
	for !s.Done() {
		decision, err := e.NextCard(ctx, s, difficulty)
		if err != nil {
			return record, err
		}
		if s, err = s.Play(decision.Card); err != nil {
			return record, err
		}
	}

	record.Tricks = s.DeclarerTricks()
	record.Score = auction.Score(*contract, record.Tricks,
		vul.IsVulnerable(contract.Declarer.Side()))
	record.NSPoints = record.Score
	if contract.Declarer.Side() == cards.EastWest {
		record.NSPoints = -record.Score
	}
	return record, nil
}
