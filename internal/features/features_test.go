package features

import (
	"testing"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
)

func TestExtractHandStrength(t *testing.T) {
	tests := []struct {
		hand     string
		hcp      int
		dist     int
		balanced bool
	}{
		{"AKQJ.AKQ.AKQ.AKQ", 37, 0, true},
		{"AKQ2.T98.76.5432", 9, 0, true},
		{"AKQJT.987.65.432", 10, 1, true},
		{"AKQJT9.87.65.432", 10, 2, false},
		{"AKQJT98.765.43.2", 10, 3, false},
		{"2.T98.76.J976543", 1, 3, false},
		{"QJ65.KQ72.T4.A53", 12, 0, true},
	}

	for _, tc := range tests {
		f := Extract(cards.MustParseHand(tc.hand), auction.New(cards.North))
		if f.HCP != tc.hcp {
			t.Errorf("%s: HCP = %d, want %d", tc.hand, f.HCP, tc.hcp)
		}
		if f.DistPoints != tc.dist {
			t.Errorf("%s: DistPoints = %d, want %d", tc.hand, f.DistPoints, tc.dist)
		}
		if f.Balanced != tc.balanced {
			t.Errorf("%s: Balanced = %v, want %v", tc.hand, f.Balanced, tc.balanced)
		}
		if f.Points() != tc.hcp+tc.dist {
			t.Errorf("%s: Points = %d, want %d", tc.hand, f.Points(), tc.hcp+tc.dist)
		}
	}
}

func TestSupportPoints(t *testing.T) {
	// 7 HCP with a club void, worth 5 extra when raising a fit.
	f := Extract(cards.MustParseHand("Q965.A7632.J542."), auction.New(cards.North))
	if f.HCP != 7 {
		t.Fatalf("HCP = %d, want 7", f.HCP)
	}
	if got := f.SupportPoints(cards.Spades); got != 12 {
		t.Errorf("SupportPoints(♠) = %d, want 12", got)
	}

	// A doubleton adds one: swap the club void for a doubleton and a
	// two-card diamond suit.
	g := Extract(cards.MustParseHand("Q965.A7632.J5.42"), auction.New(cards.North))
	if got := g.SupportPoints(cards.Spades); got != g.HCP+1+1 {
		t.Errorf("SupportPoints(♠) = %d, want %d", got, g.HCP+2)
	}
}

func TestExtractOpenerFacts(t *testing.T) {
	// North opens 1♥, East overcalls 1♠. South to act.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainHearts),
		auction.BidCall(1, auction.StrainSpades),
	)
	f := Extract(cards.MustParseHand("QJ65.KQ72.T4.A53"), a)

	if f.Seat != cards.South {
		t.Fatalf("Seat = %v, want South", f.Seat)
	}
	if !f.HasOpener || f.Opener != cards.North {
		t.Errorf("Opener = %v/%v, want North", f.Opener, f.HasOpener)
	}
	if f.Relationship != Partner {
		t.Errorf("Relationship = %v, want partner", f.Relationship)
	}
	if f.OpeningBid != (auction.Bid{Level: 1, Strain: auction.StrainHearts}) {
		t.Errorf("OpeningBid = %v, want 1♥", f.OpeningBid)
	}
	if !f.Contested {
		t.Error("overcalled auction should be contested")
	}
	if !f.Interference.Present {
		t.Fatal("East's overcall should register as interference")
	}
	if f.Interference.Call != auction.BidCall(1, auction.StrainSpades) || f.Interference.Seat != cards.East {
		t.Errorf("Interference = %v by %v, want 1♠ by East", f.Interference.Call, f.Interference.Seat)
	}
}

func TestExtractRelationships(t *testing.T) {
	hand := cards.MustParseHand("QJ65.KQ72.T4.A53")

	// Opener's own rebid turn.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainClubs), auction.Pass,
		auction.BidCall(1, auction.StrainHearts), auction.Pass,
	)
	f := Extract(hand, a)
	if f.Relationship != Self {
		t.Errorf("Relationship = %v, want self", f.Relationship)
	}
	if f.CallsSinceOpening != 0 {
		t.Errorf("CallsSinceOpening = %d, want 0", f.CallsSinceOpening)
	}
	if f.OpenerLastBid != (auction.Bid{Level: 1, Strain: auction.StrainClubs}) {
		t.Errorf("OpenerLastBid = %v, want 1♣", f.OpenerLastBid)
	}

	// Defender's view: opener is an opponent.
	b := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainClubs))
	g := Extract(hand, b)
	if g.Relationship != Opponent {
		t.Errorf("Relationship = %v, want opponent", g.Relationship)
	}

	// Nobody has opened.
	h := Extract(hand, auction.New(cards.North))
	if h.HasOpener || h.Relationship != NoOpener {
		t.Errorf("fresh auction: HasOpener = %v, Relationship = %v", h.HasOpener, h.Relationship)
	}
}

func TestExtractBalancing(t *testing.T) {
	hand := cards.MustParseHand("QJ65.KQ72.T4.A53")

	// 1♠ Pass Pass to the fourth seat: balancing.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainSpades), auction.Pass, auction.Pass,
	)
	if f := Extract(hand, a); !f.Balancing {
		t.Error("fourth seat after 1♠ Pass Pass should be balancing")
	}

	// Direct seat over the opening is not balancing.
	b := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainSpades))
	if f := Extract(hand, b); f.Balancing {
		t.Error("direct seat should not be balancing")
	}

	// Two opening passes are not balancing: a third pass does not end the
	// auction.
	c := auction.New(cards.North).MustApply(auction.Pass, auction.Pass)
	if f := Extract(hand, c); f.Balancing {
		t.Error("third seat with no bid should not be balancing")
	}
}

func TestExtractFit(t *testing.T) {
	hand := cards.MustParseHand("QJ65.KQ72.T4.A53")

	// 1♥ raised to 2♥: heart fit for both partners.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainHearts), auction.Pass,
		auction.BidCall(2, auction.StrainHearts), auction.Pass,
	)
	f := Extract(hand, a)
	if !f.HasFit || f.FitSuit != cards.Hearts {
		t.Errorf("fit = %v/%v, want hearts", f.FitSuit, f.HasFit)
	}

	// 1♥ answered with 1♠: no suit agreed yet.
	b := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainHearts), auction.Pass,
		auction.BidCall(1, auction.StrainSpades), auction.Pass,
	)
	g := Extract(hand, b)
	if g.HasFit {
		t.Errorf("unagreed auction should have no fit, got %v", g.FitSuit)
	}
}

func TestExtractInterferenceAbsent(t *testing.T) {
	// Partner opened and the next opponent passed: nothing between partner's
	// call and this turn.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainHearts), auction.Pass,
	)
	f := Extract(cards.MustParseHand("QJ65.KQ72.T4.A53"), a)
	if f.Interference.Present {
		t.Errorf("no interference expected, got %v", f.Interference.Call)
	}
}

func TestExtractPure(t *testing.T) {
	hand := cards.MustParseHand("QJ65.KQ72.T4.A53")
	a := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainHearts))

	f1 := Extract(hand, a)
	f2 := Extract(hand, a)
	if *f1 != *f2 {
		t.Error("extraction should be deterministic for identical inputs")
	}
	if len(a.Calls) != 1 {
		t.Error("extraction must not modify the auction")
	}
}
