package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

// advance handles the later competitive calls: answering partner's takeout
// double, raising partner's overcall, and competing further with extra
// shape. It is the only competitive module that runs once our side has
// acted.
func (s *System) advance(hand cards.Hand, f *features.Features) *Suggestion {
	if f.PartnerActed {
		switch {
		case f.PartnerLastCall.Kind == auction.CallDouble:
			return s.advanceDouble(hand, f)
		case f.PartnerLastCall.IsBid():
			return s.advanceBid(hand, f)
		}
	}
	if f.SelfActed && f.SelfLastCall.IsBid() {
		return s.recompete(hand, f)
	}
	return nil
}

// advanceDouble answers a takeout double: the doubler asked for a suit, so
// passing is not an option unless the opponents bid in between.
func (s *System) advanceDouble(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Interference.Present {
		// A free bid after interference shows real values.
		if f.HCP < 6 {
			return &Suggestion{
				Call:       auction.Pass,
				Rationale:  "The opponents bid over partner's double; nothing to add freely.",
				Convention: "advance",
			}
		}
	}

	suit := bestAdvanceSuit(f)
	level := cheapestLevelFor(f, auction.SuitStrain(suit))

	if f.HCP >= 9 {
		return &Suggestion{
			Call: auction.BidCall(level+1, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("Jump advance of the double: %d HCP with %d %s.",
				f.HCP, f.SuitLengths[suit], suit),
			Convention: "advance",
		}
	}
	return &Suggestion{
		Call: auction.BidCall(level, auction.SuitStrain(suit)),
		Rationale: fmt.Sprintf("Answering the takeout double with %d %s; partner asked for a suit.",
			f.SuitLengths[suit], suit),
		Convention: "advance",
	}
}

// advanceBid raises partner's overcall or introduces a suit of its own.
func (s *System) advanceBid(hand cards.Hand, f *features.Features) *Suggestion {
	overcall := f.PartnerLastCall.Bid
	if !overcall.Strain.IsSuit() {
		return nil
	}
	suit := overcall.Strain.Suit()
	support := f.SuitLengths[suit]

	if support >= 3 {
		points := f.SupportPoints(suit)
		switch {
		case support >= 4 && f.HCP <= 6:
			return &Suggestion{
				Call: auction.BidCall(overcall.Level+2, auction.SuitStrain(suit)),
				Rationale: fmt.Sprintf("Preemptive raise: %d trumps and only %d HCP, taking room away.",
					support, f.HCP),
				Convention: "advance",
			}
		case points >= 11:
			return &Suggestion{
				Call: auction.BidCall(overcall.Level+2, auction.SuitStrain(suit)),
				Rationale: fmt.Sprintf("Jump raise of the overcall: %d support points.",
					points),
				Convention: "advance",
			}
		case points >= 7:
			return &Suggestion{
				Call: auction.BidCall(overcall.Level+1, auction.SuitStrain(suit)),
				Rationale: fmt.Sprintf("Raising partner's overcall: %d support points with %d trumps.",
					points, support),
				Convention: "advance",
			}
		}
	}

	// Own good suit, otherwise notrump with their suit stopped.
	if best, ok := bestOvercallSuit(hand, f); ok && f.HCP >= 10 {
		level := cheapestLevelFor(f, auction.SuitStrain(best))
		return &Suggestion{
			Call: auction.BidCall(level, auction.SuitStrain(best)),
			Rationale: fmt.Sprintf("New suit advance: %d HCP with %d %s.",
				f.HCP, f.SuitLengths[best], best),
			Convention: "advance",
		}
	}
	if f.HCP >= 9 && f.OpenerLastBid.Strain.IsSuit() &&
		stopper(hand, f.OpenerLastBid.Strain.Suit()) {
		return &Suggestion{
			Call: auction.BidCall(1, auction.StrainNoTrump),
			Rationale: fmt.Sprintf("Notrump advance: %d HCP with %s stopped.",
				f.HCP, f.OpenerLastBid.Strain),
			Convention: "advance",
		}
	}

	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  "No support for partner and nothing new to show.",
		Convention: "advance",
	}
}

// recompete pushes one level higher on extra shape when the opponents keep
// bidding over our overcall. Balancing seat competes a point lighter.
func (s *System) recompete(hand cards.Hand, f *features.Features) *Suggestion {
	bid := f.SelfLastCall.Bid
	if !bid.Strain.IsSuit() {
		return nil
	}
	suit := bid.Strain.Suit()

	minimum := 6
	if !f.Balancing {
		minimum = 8
	}
	if f.SuitLengths[suit] >= 6 && f.HCP >= minimum && bid.Level < 3 {
		return &Suggestion{
			Call: auction.BidCall(bid.Level+1, bid.Strain),
			Rationale: fmt.Sprintf("Competing again: %d-card %s suit plays well despite %d HCP.",
				f.SuitLengths[suit], suit, f.HCP),
			Convention: "advance",
		}
	}

	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  "Already competed; nothing extra to show.",
		Convention: "advance",
	}
}

// bestAdvanceSuit picks the longest suit outside the opponents' suits,
// majors preferred on ties.
func bestAdvanceSuit(f *features.Features) cards.Suit {
	theirs := f.OpenerLastBid.Strain
	best := cards.Clubs
	bestLen := -1
	for _, suit := range cards.Suits {
		if theirs.IsSuit() && suit == theirs.Suit() {
			continue
		}
		if f.SuitLengths[suit] >= bestLen {
			best = suit
			bestLen = f.SuitLengths[suit]
		}
	}
	return best
}

// cheapestLevelFor returns the lowest level at which strain can legally be
// bid over the opener's side's last bid.
func cheapestLevelFor(f *features.Features, strain auction.Strain) int {
	last := f.OpenerLastBid
	for level := 1; level <= 7; level++ {
		if last.Less(auction.Bid{Level: level, Strain: strain}) {
			return level
		}
	}
	return 7
}
