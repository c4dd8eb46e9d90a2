package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

const (
	takeoutMinPoints     = 12
	powerDoubleMinPoints = 18
	negativeDoubleMinHCP = 6
	negativeTwoLevelHCP  = 8
)

// takeoutDouble doubles the opponents' opening for takeout: opening values,
// shortness in their suit and support everywhere else, or a hand too strong
// for a simple overcall.
func (s *System) takeoutDouble(hand cards.Hand, f *features.Features) *Suggestion {
	if !f.OpenerLastBid.Strain.IsSuit() {
		return nil
	}
	theirs := f.OpenerLastBid.Strain.Suit()

	minimum := takeoutMinPoints
	if f.Balancing {
		minimum -= balancingDiscount
	}

	if f.Points() >= powerDoubleMinPoints {
		return &Suggestion{
			Call: auction.Double,
			Rationale: fmt.Sprintf("Takeout double: %d points, too strong for a simple overcall.",
				f.Points()),
			Convention: "takeout-double",
		}
	}

	if f.Points() < minimum || f.SuitLengths[theirs] > 2 {
		return nil
	}
	for _, suit := range cards.Suits {
		if suit != theirs && f.SuitLengths[suit] < 3 {
			return nil
		}
	}

	return &Suggestion{
		Call: auction.Double,
		Rationale: fmt.Sprintf("Takeout double: %d points, short in %s with support for the other suits.",
			f.Points(), theirs),
		Convention: "takeout-double",
	}
}

// negativeDouble shows the unbid major(s) after partner's one-of-a-suit
// opening was overcalled. It fires only on a suit overcall through 2♠ and
// needs a four-card unbid major the hand cannot show naturally.
func (s *System) negativeDouble(hand cards.Hand, f *features.Features) *Suggestion {
	if !f.Interference.Present || !f.Interference.Call.IsBid() {
		return nil
	}
	overcall := f.Interference.Call.Bid
	if !overcall.Strain.IsSuit() || !f.OpeningBid.Strain.IsSuit() {
		return nil
	}
	// Through 2♠: higher overcalls take too much room for a double to
	// stay takeout.
	if (auction.Bid{Level: 2, Strain: auction.StrainSpades}).Less(overcall) {
		return nil
	}

	minimum := negativeDoubleMinHCP
	if overcall.Level >= 2 {
		minimum = negativeTwoLevelHCP
	}
	if f.HCP < minimum {
		return nil
	}

	opened := f.OpeningBid.Strain.Suit()
	theirs := overcall.Strain.Suit()
	var shown []string
	for _, major := range []cards.Suit{cards.Hearts, cards.Spades} {
		if major == opened || major == theirs {
			continue
		}
		if f.SuitLengths[major] == 4 {
			shown = append(shown, major.String())
		}
	}
	if len(shown) == 0 {
		return nil
	}

	return &Suggestion{
		Call: auction.Double,
		Rationale: fmt.Sprintf("Negative double: %d HCP showing four cards in %s.",
			f.HCP, joinSuits(shown)),
		Convention: "negative-double",
	}
}

func joinSuits(suits []string) string {
	switch len(suits) {
	case 1:
		return suits[0]
	case 2:
		return suits[0] + " and " + suits[1]
	}
	return ""
}
