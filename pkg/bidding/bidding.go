// Package bidding implements the auction decision engine: a state machine
// that routes a hand and auction to an ordered chain of convention modules
// and returns a legal call with a human-readable rationale.
//
// Modules never see the raw auction, only the feature bundle, and a module
// that does not apply returns nil rather than Pass; Pass is always an
// explicit, reasoned result. Raw suggestions pass through bid repair before
// they are returned, so a module may suggest an insufficient bid and still
// produce a legal auction.
package bidding

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

// State is the auction state machine position for the seat to act.
type State uint8

const (
	StateOpening State = iota
	StateCompetitive
	StateResponse
	StateRebid
	StateOpenerRebid
)

// String returns the state name
func (s State) String() string {
	return [...]string{"opening", "competitive", "response", "rebid", "opener-rebid"}[s]
}

// StateOf derives the state from the auction facts alone, so routing is
// replayable: the same auction always lands in the same state.
func StateOf(f *features.Features) State {
	switch f.Relationship {
	case features.NoOpener:
		return StateOpening
	case features.Opponent:
		return StateCompetitive
	case features.Self:
		return StateOpenerRebid
	}
	if f.CallsSinceOpening == 0 {
		return StateResponse
	}
	return StateRebid
}

// Suggestion is a module's answer: the call to make, why, and which
// convention produced it.
type Suggestion struct {
	Call       auction.Call
	Rationale  string
	Convention string
}

// SlamThresholds are the combined-point cutoffs the Blackwood signoff uses,
// keyed by how many aces the partnership is missing. They are deliberately
// configurable; the right values are a matter of partnership style.
type SlamThresholds struct {
	SmallSlamAllAces   int // six-level with no ace missing
	SmallSlamOneAceOut int // six-level with one ace missing
	GrandSlam          int // seven-level, requires all four aces
}

// DefaultSlamThresholds returns the standard cutoffs: 33 for a small slam
// with every ace, 35 when an ace is known to be missing, 37 for a grand.
func DefaultSlamThresholds() SlamThresholds {
	return SlamThresholds{
		SmallSlamAllAces:   33,
		SmallSlamOneAceOut: 35,
		GrandSlam:          37,
	}
}

// Options configures a System.
type Options struct {
	Slam   SlamThresholds
	Logger *log.Logger
}

// System is a complete bidding system: the convention modules plus routing.
// A System is stateless between calls and safe for concurrent use.
type System struct {
	slam   SlamThresholds
	logger *log.Logger
}

// NewSystem builds a System. Zero-value slam thresholds fall back to the
// defaults; a nil logger discards.
func NewSystem(opts Options) *System {
	if opts.Slam == (SlamThresholds{}) {
		opts.Slam = DefaultSlamThresholds()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &System{slam: opts.Slam, logger: opts.Logger.WithPrefix("bidding")}
}

// Errors surfaced by Suggest.
var (
	ErrAuctionFinished = errors.New("auction already finished")
	ErrWrongHandSize   = errors.New("bidding requires a thirteen-card hand")
)

// evaluator is the uniform module capability. nil means not applicable.
type evaluator func(hand cards.Hand, f *features.Features) *Suggestion

// Suggest returns the call for the seat on turn. The result is always legal
// on the given auction; if no module applies, it is an explicit Pass.
func (s *System) Suggest(hand cards.Hand, a auction.Auction) (*Suggestion, error) {
	if a.Finished() {
		return nil, ErrAuctionFinished
	}
	if hand.Len() != 13 {
		return nil, fmt.Errorf("%w: got %d cards", ErrWrongHandSize, hand.Len())
	}

	f := features.Extract(hand, a)
	state := StateOf(f)
	s.logger.Debug("routing call",
		"seat", f.Seat, "state", state, "hcp", f.HCP, "contested", f.Contested)

	for _, module := range s.chain(state, f) {
		sug := module(hand, f)
		if sug == nil {
			continue
		}
		return s.legalize(sug, a), nil
	}

	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  "No convention applies; nothing to say.",
		Convention: "default",
	}, nil
}

// chain returns the module precedence for the state. Order is the whole
// routing policy: first applicable, legality-checked result wins.
func (s *System) chain(state State, f *features.Features) []evaluator {
	switch state {
	case StateOpening:
		return []evaluator{s.preemptOpening, s.naturalOpening}

	case StateCompetitive:
		if f.PartnerActed || f.SelfActed {
			return []evaluator{s.blackwoodRespond, s.advance}
		}
		return []evaluator{s.michaels, s.unusualNoTrump, s.takeoutDouble, s.overcall}

	case StateResponse:
		return []evaluator{
			s.blackwoodRespond, s.blackwoodSignoff, s.blackwoodInit,
			s.splinter, s.negativeDouble,
			s.stayman, s.jacobyTransfer,
			s.naturalResponse,
		}

	case StateRebid:
		return []evaluator{
			s.blackwoodRespond, s.blackwoodSignoff, s.blackwoodInit,
			s.fourthSuitForcing,
			s.responderRebid,
		}

	case StateOpenerRebid:
		return []evaluator{
			s.blackwoodRespond, s.blackwoodSignoff, s.blackwoodInit,
			s.staymanAnswer, s.completeTransfer,
			s.openerRebid,
		}
	}
	return nil
}

// legalize passes a raw suggestion through legality and repair. Doubles and
// redoubles that are illegal here mean the module misread the auction; they
// degrade to Pass the same way an unrepairable bid does.
func (s *System) legalize(sug *Suggestion, a auction.Auction) *Suggestion {
	if a.Legal(sug.Call) == nil {
		return sug
	}

	if sug.Call.IsBid() {
		repaired, ok := a.Repair(sug.Call.Bid)
		if ok {
			s.logger.Debug("repaired insufficient bid",
				"convention", sug.Convention, "from", sug.Call.Bid, "to", repaired)
			sug.Call = auction.Call{Kind: auction.CallBid, Bid: repaired}
			return sug
		}
	}

	s.logger.Debug("suggestion unusable, passing instead",
		"convention", sug.Convention, "call", sug.Call)
	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  "Nothing suitable at a safe level.",
		Convention: sug.Convention,
	}
}

// honors counts the ace, king and queen held in suit
func honors(hand cards.Hand, suit cards.Suit) int {
	n := 0
	for _, r := range []cards.Rank{cards.Ace, cards.King, cards.Queen} {
		if hand.Has(cards.Card{Suit: suit, Rank: r}) {
			n++
		}
	}
	return n
}

// aces counts the aces held
func aces(hand cards.Hand) int {
	n := 0
	for _, s := range cards.Suits {
		if hand.Has(cards.Card{Suit: s, Rank: cards.Ace}) {
			n++
		}
	}
	return n
}

// stopper reports a likely stopper in suit: the ace, a guarded king or a
// twice-guarded queen
func stopper(hand cards.Hand, suit cards.Suit) bool {
	length := hand.SuitLength(suit)
	switch {
	case hand.Has(cards.Card{Suit: suit, Rank: cards.Ace}):
		return true
	case hand.Has(cards.Card{Suit: suit, Rank: cards.King}) && length >= 2:
		return true
	case hand.Has(cards.Card{Suit: suit, Rank: cards.Queen}) && length >= 3:
		return true
	}
	return false
}
