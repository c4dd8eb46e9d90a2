package engine

import (
	"context"
	"testing"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/play"
	"github.com/yourusername/bridgeengine/pkg/solver"
)

const testDeal = "N:AKJ92.K84.QT9.74 Q4.QJT92.K3.QJ52 T73.A3.A8542.K93 865.765.J76.AT86"

func testEngine() *Engine {
	return NewEngine(EngineOptions{})
}

func TestNextBidLegalAndIdempotent(t *testing.T) {
	e := testEngine()
	deal := cards.MustParseDeal(testDeal)
	a := auction.New(cards.North)

	first, err := e.NextBid(deal.Hand(cards.North), a)
	if err != nil {
		t.Fatalf("NextBid failed: %v", err)
	}
	if err := a.Legal(first.Call); err != nil {
		t.Fatalf("NextBid returned illegal call %v: %v", first.Call, err)
	}
	again, err := e.NextBid(deal.Hand(cards.North), a)
	if err != nil {
		t.Fatalf("NextBid failed: %v", err)
	}
	if again.Call != first.Call {
		t.Errorf("NextBid not idempotent: %v then %v", first.Call, again.Call)
	}
}

func TestNextCardSearchTier(t *testing.T) {
	e := testEngine()
	s := play.NewState(cards.MustParseDeal(testDeal), auction.Contract{
		Bid:      auction.Bid{Level: 1, Strain: auction.StrainSpades},
		Declarer: cards.North,
	})

	d, err := e.NextCard(context.Background(), s, play.Beginner)
	if err != nil {
		t.Fatalf("NextCard failed: %v", err)
	}
	if d.Source != solver.SourceSearch {
		t.Errorf("source = %v, want search", d.Source)
	}
	if _, err := s.Play(d.Card); err != nil {
		t.Errorf("card %v is not legal: %v", d.Card, err)
	}
}

// fixedSolver is an oracle stand-in answering with a fixed card.
type fixedSolver struct {
	card cards.Card
}

func (f *fixedSolver) Solve(ctx context.Context, s play.State) (cards.Card, solver.Source, error) {
	return f.card, solver.SourceOracle, nil
}

func TestNextCardExpertUsesOracle(t *testing.T) {
	s := play.NewState(cards.MustParseDeal(testDeal), auction.Contract{
		Bid:      auction.Bid{Level: 1, Strain: auction.StrainSpades},
		Declarer: cards.North,
	})
	oracleCard := s.LegalPlays()[0]
	e := NewEngine(EngineOptions{Oracle: &fixedSolver{card: oracleCard}})

	d, err := e.NextCard(context.Background(), s, play.Expert)
	if err != nil {
		t.Fatalf("NextCard failed: %v", err)
	}
	if d.Source != solver.SourceOracle || d.Card != oracleCard {
		t.Errorf("expert decision = %+v, want the oracle card", d)
	}

	// Lower tiers never consult the oracle.
	d, err = e.NextCard(context.Background(), s, play.Beginner)
	if err != nil {
		t.Fatalf("NextCard failed: %v", err)
	}
	if d.Source != solver.SourceSearch {
		t.Errorf("beginner source = %v, want search", d.Source)
	}
}

func TestResolveContract(t *testing.T) {
	e := testEngine()
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainSpades), auction.Pass,
		auction.BidCall(4, auction.StrainSpades), auction.Double,
		auction.Pass, auction.Pass, auction.Pass)

	c, err := e.ResolveContract(a)
	if err != nil {
		t.Fatalf("ResolveContract failed: %v", err)
	}
	if c.Declarer != cards.North || c.Bid.Level != 4 || c.Doubling != auction.Doubled {
		t.Errorf("contract = %v, want 4♠X by North", c)
	}

	passedOut := auction.New(cards.North).MustApply(
		auction.Pass, auction.Pass, auction.Pass, auction.Pass)
	c, err = e.ResolveContract(passedOut)
	if err != nil || c != nil {
		t.Errorf("passed out = (%v, %v), want (nil, nil)", c, err)
	}
}

func TestScoreHandSettle(t *testing.T) {
	e := testEngine()
	threeNT := auction.Contract{
		Bid:      auction.Bid{Level: 3, Strain: auction.StrainNoTrump},
		Declarer: cards.South,
	}

	// Down one, not vulnerable.
	score := e.ScoreHand(threeNT, 8, false)
	if score != -50 {
		t.Fatalf("3NT down 1 = %d, want -50", score)
	}
	declarer, defenders := e.Settle(score)
	if declarer != 0 || defenders != 50 {
		t.Errorf("Settle(-50) = (%d, %d), want (0, 50)", declarer, defenders)
	}

	// Making with an overtrick.
	score = e.ScoreHand(threeNT, 10, false)
	declarer, defenders = e.Settle(score)
	if declarer != score || defenders != 0 {
		t.Errorf("Settle(%d) = (%d, %d)", score, declarer, defenders)
	}
}
