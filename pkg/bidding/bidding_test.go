package bidding

import (
	"testing"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
)

func testSystem() *System {
	return NewSystem(Options{})
}

func suggest(t *testing.T, s *System, hand string, a auction.Auction) *Suggestion {
	t.Helper()
	sug, err := s.Suggest(cards.MustParseHand(hand), a)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if err := a.Legal(sug.Call); err != nil {
		t.Fatalf("Suggest returned illegal call %v: %v", sug.Call, err)
	}
	if sug.Rationale == "" {
		t.Fatalf("Suggest returned no rationale for %v", sug.Call)
	}
	return sug
}

func TestOpeningBids(t *testing.T) {
	s := testSystem()
	tests := []struct {
		name     string
		hand     string
		expected auction.Call
	}{
		// 16 HCP balanced.
		{"strong notrump", "AQ32.KJ4.KT9.Q74", auction.BidCall(1, auction.StrainNoTrump)},
		// 21 HCP balanced.
		{"two notrump", "AKQ2.KJ4.AQ9.Q74", auction.BidCall(2, auction.StrainNoTrump)},
		// 22+ points.
		{"strong two clubs", "AKQJ92.AK4.A9.74", auction.BidCall(2, auction.StrainClubs)},
		// 13 points, five spades.
		{"one spade", "AKJ92.K84.QT9.74", auction.BidCall(1, auction.StrainSpades)},
		// 6 HCP, seven hearts.
		{"three level preempt", "2.KQJ9732.T98.74", auction.BidCall(3, auction.StrainHearts)},
		// 8 HCP, six good spades.
		{"weak two", "KQT932.84.T98.74", auction.BidCall(2, auction.StrainSpades)},
		// 9 HCP, no shape.
		{"too weak to open", "Q932.K84.QT9.J74", auction.Pass},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sug := suggest(t, s, tc.hand, auction.New(cards.North))
			if sug.Call != tc.expected {
				t.Errorf("opening = %v (%s), want %v", sug.Call, sug.Rationale, tc.expected)
			}
		})
	}
}

func TestStaymanApplicability(t *testing.T) {
	s := testSystem()
	oneNT := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainNoTrump), auction.Pass)

	// Four spades, 9 HCP, no five-card major: Stayman.
	sug := suggest(t, s, "KQ32.843.A92.T74", oneNT)
	if sug.Call != auction.BidCall(2, auction.StrainClubs) || sug.Convention != "stayman" {
		t.Errorf("got %v via %s, want 2♣ stayman", sug.Call, sug.Convention)
	}

	// Five spades transfer instead, even with a four-card heart suit.
	sug = suggest(t, s, "KQ532.8432.A9.T7", oneNT)
	if sug.Call != auction.BidCall(2, auction.StrainHearts) || sug.Convention != "jacoby" {
		t.Errorf("got %v via %s, want 2♥ transfer", sug.Call, sug.Convention)
	}

	// No four-card major: no Stayman, natural raise on 10 HCP.
	sug = suggest(t, s, "KQ2.843.AQ92.T74", oneNT)
	if sug.Convention == "stayman" || sug.Convention == "jacoby" {
		t.Errorf("conventions should not apply without a major: %v via %s", sug.Call, sug.Convention)
	}
}

func TestStaymanAnswer(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainNoTrump), auction.Pass,
		auction.BidCall(2, auction.StrainClubs), auction.Pass)

	// Opener holds four hearts: 2♥.
	sug := suggest(t, s, "AQ3.KJ42.KT9.Q74", a)
	if sug.Call != auction.BidCall(2, auction.StrainHearts) {
		t.Errorf("Stayman answer = %v, want 2♥", sug.Call)
	}

	// No major: 2♦ denial.
	sug = suggest(t, s, "AQ3.KJ4.KT92.Q74", a)
	if sug.Call != auction.BidCall(2, auction.StrainDiamonds) {
		t.Errorf("Stayman answer = %v, want 2♦", sug.Call)
	}
}

func TestTransferCompletion(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainNoTrump), auction.Pass,
		auction.BidCall(2, auction.StrainDiamonds), auction.Pass)

	sug := suggest(t, s, "AQ3.KJ42.KT9.Q74", a)
	if sug.Call != auction.BidCall(2, auction.StrainHearts) || sug.Convention != "jacoby" {
		t.Errorf("transfer completion = %v via %s, want 2♥", sug.Call, sug.Convention)
	}
}

func TestTakeoutDouble(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainHearts))

	// 13 points, short in hearts, support everywhere else.
	sug := suggest(t, s, "KQ32.4.AJ92.KT74", a)
	if sug.Call != auction.Double || sug.Convention != "takeout-double" {
		t.Errorf("got %v via %s, want takeout double", sug.Call, sug.Convention)
	}

	// Same strength but length in their suit: overcall or pass, not double.
	sug = suggest(t, s, "KQ2.QJ43.A92.KT7", a)
	if sug.Call == auction.Double {
		t.Errorf("should not double with four of their suit")
	}
}

func TestNegativeDouble(t *testing.T) {
	s := testSystem()
	// Partner opens 1♦, East overcalls 1♠; responder holds four hearts.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainDiamonds),
		auction.BidCall(1, auction.StrainSpades))

	sug := suggest(t, s, "843.KQ32.92.KT74", a)
	if sug.Call != auction.Double || sug.Convention != "negative-double" {
		t.Errorf("got %v via %s, want negative double", sug.Call, sug.Convention)
	}
}

func TestMichaelsCuebid(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainDiamonds))

	// Five-five majors over a minor opening.
	sug := suggest(t, s, "KQT32.AJT98.9.74", a)
	if sug.Call != auction.BidCall(2, auction.StrainDiamonds) || sug.Convention != "michaels" {
		t.Errorf("got %v via %s, want 2♦ Michaels", sug.Call, sug.Convention)
	}
}

func TestUnusualNoTrump(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainSpades))

	// Five-five minors over a major opening.
	sug := suggest(t, s, "3.K7.KQT98.AJT92", a)
	if sug.Call != auction.BidCall(2, auction.StrainNoTrump) || sug.Convention != "unusual-notrump" {
		t.Errorf("got %v via %s, want unusual 2NT", sug.Call, sug.Convention)
	}
}

func TestSplinter(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainSpades), auction.Pass)

	// Four spades, singleton diamond, 12 support points.
	sug := suggest(t, s, "KQ32.A843.9.QT74", a)
	if sug.Call != auction.BidCall(4, auction.StrainDiamonds) || sug.Convention != "splinter" {
		t.Errorf("got %v via %s, want 4♦ splinter", sug.Call, sug.Convention)
	}
}

func TestBlackwoodAsk(t *testing.T) {
	s := testSystem()
	// 1♠ - 3♠ limit raise; opener holds slam-range extras.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainSpades), auction.Pass,
		auction.BidCall(3, auction.StrainSpades), auction.Pass)

	sug := suggest(t, s, "AKQJT9.AK4.KQ5.8", a)
	if sug.Call != auction.BidCall(4, auction.StrainNoTrump) || sug.Convention != "blackwood" {
		t.Errorf("got %v via %s, want 4NT Blackwood", sug.Call, sug.Convention)
	}
}

func TestBlackwoodResponse(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainSpades), auction.Pass,
		auction.BidCall(3, auction.StrainSpades), auction.Pass,
		auction.BidCall(4, auction.StrainNoTrump), auction.Pass)

	tests := []struct {
		hand     string
		expected auction.Call
	}{
		// No aces.
		{"KQ32.K43.Q92.T74", auction.BidCall(5, auction.StrainClubs)},
		// One ace.
		{"KQ32.A43.Q92.T74", auction.BidCall(5, auction.StrainDiamonds)},
		// Two aces.
		{"KQ32.A43.A92.T74", auction.BidCall(5, auction.StrainHearts)},
	}
	for _, tc := range tests {
		sug := suggest(t, s, tc.hand, a)
		if sug.Call != tc.expected || sug.Convention != "blackwood" {
			t.Errorf("Blackwood answer for %s = %v via %s, want %v",
				tc.hand, sug.Call, sug.Convention, tc.expected)
		}
	}
}

func TestBlackwoodSignoffSmallSlam(t *testing.T) {
	s := testSystem()
	// Partner's 5♥ shows two aces; asker holds the other two and enough
	// combined strength for six but not seven.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainSpades), auction.Pass,
		auction.BidCall(3, auction.StrainSpades), auction.Pass,
		auction.BidCall(4, auction.StrainNoTrump), auction.Pass,
		auction.BidCall(5, auction.StrainHearts), auction.Pass)

	sug := suggest(t, s, "AKQJT9.AK4.KQ5.8", a)
	if sug.Call != auction.BidCall(6, auction.StrainSpades) {
		t.Errorf("signoff = %v (%s), want 6♠", sug.Call, sug.Rationale)
	}
}

func TestBlackwoodSignoffTwoAcesMissing(t *testing.T) {
	s := testSystem()
	// Partner's 5♣ shows no aces; two are missing, so the five level is the
	// limit no matter how strong the hand is.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainSpades), auction.Pass,
		auction.BidCall(3, auction.StrainSpades), auction.Pass,
		auction.BidCall(4, auction.StrainNoTrump), auction.Pass,
		auction.BidCall(5, auction.StrainClubs), auction.Pass)

	sug := suggest(t, s, "AKQJT9.AKQ.KQ5.8", a)
	if sug.Call != auction.BidCall(5, auction.StrainSpades) {
		t.Errorf("signoff = %v (%s), want 5♠", sug.Call, sug.Rationale)
	}
}

func TestOvercall(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainClubs))

	sug := suggest(t, s, "AKJ92.K84.QT9.74", a)
	if sug.Call != auction.BidCall(1, auction.StrainSpades) || sug.Convention != "overcall" {
		t.Errorf("got %v via %s, want 1♠ overcall", sug.Call, sug.Convention)
	}
}

func TestBalancingSeatIsLighter(t *testing.T) {
	s := testSystem()
	// 6 HCP with five spades: below the direct-seat minimum, above the
	// balancing one.
	hand := "QJ982.K84.T95.74"

	direct := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainHearts))
	balancing := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainHearts), auction.Pass, auction.Pass)

	d := suggest(t, s, hand, direct)
	b := suggest(t, s, hand, balancing)
	if d.Call != auction.Pass {
		t.Errorf("direct seat should pass with 6 HCP, got %v (%s)", d.Call, d.Rationale)
	}
	if b.Call != auction.BidCall(1, auction.StrainSpades) {
		t.Errorf("balancing seat should overcall 1♠, got %v (%s)", b.Call, b.Rationale)
	}
}

func TestNoModuleMeansExplicitPass(t *testing.T) {
	s := testSystem()
	// A yarborough in fourth seat over strong opposing bidding.
	a := auction.New(cards.North).MustApply(
		auction.BidCall(1, auction.StrainSpades), auction.Pass,
		auction.BidCall(4, auction.StrainSpades))

	sug := suggest(t, s, "8432.843.932.T74", a)
	if sug.Call != auction.Pass {
		t.Errorf("got %v, want Pass", sug.Call)
	}
	if sug.Rationale == "" {
		t.Error("a default Pass still carries a rationale")
	}
}

func TestLegalizeRepairsInsufficientBid(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainSpades))

	sug := s.legalize(&Suggestion{
		Call:       auction.BidCall(1, auction.StrainHearts),
		Rationale:  "test",
		Convention: "test",
	}, a)
	if sug.Call != auction.BidCall(2, auction.StrainHearts) {
		t.Errorf("repaired call = %v, want 2♥", sug.Call)
	}
}

func TestLegalizeEscalationCapDegradesToPass(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(auction.BidCall(4, auction.StrainSpades))

	// 1♥ would need the five level, three levels up: repair refuses and the
	// suggestion becomes Pass.
	sug := s.legalize(&Suggestion{
		Call:       auction.BidCall(1, auction.StrainHearts),
		Rationale:  "test",
		Convention: "test",
	}, a)
	if sug.Call != auction.Pass {
		t.Errorf("capped repair = %v, want Pass", sug.Call)
	}
}

func TestSuggestIsIdempotent(t *testing.T) {
	s := testSystem()
	a := auction.New(cards.North).MustApply(auction.BidCall(1, auction.StrainHearts))
	hand := cards.MustParseHand("KQ32.4.AJ92.KT74")

	first, err := s.Suggest(hand, a)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := s.Suggest(hand, a)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if again.Call != first.Call || again.Convention != first.Convention {
			t.Fatalf("Suggest is not idempotent: %v then %v", first.Call, again.Call)
		}
	}
}

func TestSuggestRejectsBadInput(t *testing.T) {
	s := testSystem()

	done := auction.New(cards.North).MustApply(
		auction.Pass, auction.Pass, auction.Pass, auction.Pass)
	if _, err := s.Suggest(cards.MustParseHand("AQ32.KJ4.KT9.Q74"), done); err == nil {
		t.Error("Suggest on a finished auction should fail")
	}

	short := cards.MustParseHand("AQ32.KJ4.KT9.Q7")
	if _, err := s.Suggest(short, auction.New(cards.North)); err == nil {
		t.Error("Suggest with a twelve-card hand should fail")
	}
}

func TestFullAuctionTerminates(t *testing.T) {
	s := testSystem()
	deal := cards.MustParseDeal("N:AKJ92.K84.QT9.74 Q4.QJT92.K3.QJ52 T73.A3.A8542.K93 865.765.J76.AT86")

	a := auction.New(cards.North)
	for i := 0; !a.Finished(); i++ {
		if i > 100 {
			t.Fatalf("auction did not terminate: %v", a)
		}
		sug, err := s.Suggest(deal.Hand(a.Turn()), a)
		if err != nil {
			t.Fatalf("Suggest failed at %v: %v", a, err)
		}
		next, err := a.Apply(sug.Call)
		if err != nil {
			t.Fatalf("engine produced illegal call %v at %v: %v", sug.Call, a, err)
		}
		a = next
	}

	if _, err := a.Result(); err != nil {
		t.Fatalf("finished auction did not resolve: %v", err)
	}
}
