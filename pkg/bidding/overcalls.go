package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

// Overcall ranges. Balancing seat borrows a few points: passing there ends
// the auction, so the bar is lower.
const (
	overcallMinHCP         = 8
	overcallTwoLevelMinHCP = 11
	overcallMaxHCP         = 17
	notrumpOvercallMinHCP  = 15
	notrumpOvercallMaxHCP  = 18
	balancingDiscount      = 3
)

// overcall bids a decent five-card suit over the opponents' opening, or 1NT
// with a strong balanced hand and a stopper. Weak hands with six-card suits
// jump preemptively.
func (s *System) overcall(hand cards.Hand, f *features.Features) *Suggestion {
	discount := 0
	if f.Balancing {
		discount = balancingDiscount
	}

	// 1NT overcall: the strong notrump shape with the opponents' suit
	// stopped.
	if f.Balanced && f.OpenerLastBid.Strain.IsSuit() &&
		f.HCP >= notrumpOvercallMinHCP-discount && f.HCP <= notrumpOvercallMaxHCP &&
		stopper(hand, f.OpenerLastBid.Strain.Suit()) {
		return &Suggestion{
			Call: auction.BidCall(1, auction.StrainNoTrump),
			Rationale: fmt.Sprintf("%d HCP balanced with %s stopped: overcall 1NT.",
				f.HCP, f.OpenerLastBid.Strain),
			Convention: "overcall",
		}
	}

	suit, ok := bestOvercallSuit(hand, f)
	if !ok {
		return nil
	}
	length := f.SuitLengths[suit]

	// Weak jump overcall: preempt values with a six-card suit.
	if length >= 6 && f.HCP >= preemptMinHCP && f.HCP < overcallMinHCP && !f.Balancing {
		return &Suggestion{
			Call: auction.BidCall(f.OpenerLastBid.Level+1, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("Weak jump overcall: %d HCP with six %s.",
				f.HCP, suit),
			Convention: "overcall",
		}
	}

	if f.HCP < overcallMinHCP-discount || f.HCP > overcallMaxHCP {
		return nil
	}

	// The cheapest level for this suit; two-level overcalls promise more.
	level := 1
	if bid, _, ok := lastBidOf(f); ok && !bid.Less(auction.Bid{Level: 1, Strain: auction.SuitStrain(suit)}) {
		level = 2
	}
	if level == 2 && f.HCP < overcallTwoLevelMinHCP-discount {
		return nil
	}

	seat := "Overcall"
	if f.Balancing {
		seat = "Balancing overcall"
	}
	return &Suggestion{
		Call: auction.BidCall(level, auction.SuitStrain(suit)),
		Rationale: fmt.Sprintf("%s: %d HCP with %d %s.",
			seat, f.HCP, length, suit),
		Convention: "overcall",
	}
}

// bestOvercallSuit picks the longest suit of five or more cards with some
// honor substance, skipping any suit the opponents have bid.
func bestOvercallSuit(hand cards.Hand, f *features.Features) (cards.Suit, bool) {
	best := cards.Clubs
	found := false
	for _, suit := range cards.Suits {
		if suit == f.OpenerLastBid.Strain.Suit() && f.OpenerLastBid.Strain.IsSuit() {
			continue
		}
		length := f.SuitLengths[suit]
		if length < 5 || honors(hand, suit) == 0 {
			continue
		}
		if !found || length >= f.SuitLengths[best] {
			best = suit
			found = true
		}
	}
	return best, found
}

// lastBidOf returns the highest bid standing in the auction, taken from the
// extractor's facts: the opener's latest bid unless partner or an opponent
// has since bid higher. Overcall level selection only needs the opener side
// view, so the opener's last bid is the reference.
func lastBidOf(f *features.Features) (auction.Bid, cards.Seat, bool) {
	if !f.HasOpener {
		return auction.Bid{}, 0, false
	}
	return f.OpenerLastBid, f.Opener, true
}
