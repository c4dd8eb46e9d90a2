package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

// Opening ranges.
const (
	openMinPoints    = 13
	oneNTMinHCP      = 15
	oneNTMaxHCP      = 17
	twoNTMinHCP      = 20
	twoNTMaxHCP      = 21
	strongTwoClubMin = 22
)

// naturalOpening handles the first bid of the auction: strong 2♣, the
// notrump ladder, then one of a suit. A hand too weak to open passes with a
// reason; that Pass is a result, not a fallthrough.
func (s *System) naturalOpening(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Points() >= strongTwoClubMin {
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainClubs),
			Rationale:  fmt.Sprintf("Artificial 2♣: %d points, too strong for a one-level opening.", f.Points()),
			Convention: "opening",
		}
	}

	if f.Balanced && f.HCP >= twoNTMinHCP && f.HCP <= twoNTMaxHCP {
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainNoTrump),
			Rationale:  fmt.Sprintf("%d HCP, balanced: open 2NT.", f.HCP),
			Convention: "opening",
		}
	}

	if f.Balanced && f.HCP >= oneNTMinHCP && f.HCP <= oneNTMaxHCP {
		return &Suggestion{
			Call:       auction.BidCall(1, auction.StrainNoTrump),
			Rationale:  fmt.Sprintf("%d HCP, balanced: open 1NT.", f.HCP),
			Convention: "opening",
		}
	}

	if f.Points() >= openMinPoints || ruleOfTwenty(f) {
		suit := openingSuit(f)
		return &Suggestion{
			Call: auction.BidCall(1, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("%d points with %d %s: open 1%s.",
				f.Points(), f.SuitLengths[suit], suit, suit),
			Convention: "opening",
		}
	}

	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  fmt.Sprintf("%d points: not enough to open.", f.Points()),
		Convention: "opening",
	}
}

// ruleOfTwenty opens light hands whose HCP plus two longest suit lengths
// reach twenty
func ruleOfTwenty(f *features.Features) bool {
	longest, second := 0, 0
	for _, s := range cards.Suits {
		n := f.SuitLengths[s]
		if n > longest {
			longest, second = n, longest
		} else if n > second {
			second = n
		}
	}
	return f.HCP+longest+second >= 20 && f.HCP >= 10
}

// openingSuit picks the opening suit: the longer major with five or more
// cards, otherwise the better minor.
func openingSuit(f *features.Features) cards.Suit {
	spades, hearts := f.SuitLengths[cards.Spades], f.SuitLengths[cards.Hearts]
	if spades >= 5 || hearts >= 5 {
		if spades >= hearts {
			return cards.Spades
		}
		return cards.Hearts
	}

	diamonds, clubs := f.SuitLengths[cards.Diamonds], f.SuitLengths[cards.Clubs]
	if diamonds >= clubs && diamonds >= 4 {
		return cards.Diamonds
	}
	if clubs > diamonds {
		return cards.Clubs
	}
	// Three-three in the minors opens the club.
	if diamonds == 3 && clubs == 3 {
		return cards.Clubs
	}
	return cards.Diamonds
}
