package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

const twoSuitedMinHCP = 8

// michaels cuebids the opener's suit to show a two-suited hand: both majors
// over a minor, the other major plus an unspecified minor over a major.
// Five-five shape is the whole point; strength can be light.
func (s *System) michaels(hand cards.Hand, f *features.Features) *Suggestion {
	opening := f.OpenerLastBid
	if !opening.Strain.IsSuit() || opening.Level != 1 {
		return nil
	}
	if f.HCP < twoSuitedMinHCP {
		return nil
	}

	theirs := opening.Strain.Suit()
	hearts, spades := f.SuitLengths[cards.Hearts], f.SuitLengths[cards.Spades]

	if theirs == cards.Clubs || theirs == cards.Diamonds {
		if hearts >= 5 && spades >= 5 {
			return &Suggestion{
				Call: auction.BidCall(2, auction.SuitStrain(theirs)),
				Rationale: fmt.Sprintf("Michaels cuebid: %d HCP with five-five in the majors.",
					f.HCP),
				Convention: "michaels",
			}
		}
		return nil
	}

	// Over a major: the other major and a five-card minor.
	other := cards.Hearts
	if theirs == cards.Hearts {
		other = cards.Spades
	}
	if f.SuitLengths[other] < 5 {
		return nil
	}
	if f.SuitLengths[cards.Clubs] < 5 && f.SuitLengths[cards.Diamonds] < 5 {
		return nil
	}

	return &Suggestion{
		Call: auction.BidCall(2, auction.SuitStrain(theirs)),
		Rationale: fmt.Sprintf("Michaels cuebid: %d HCP with five %s and a five-card minor.",
			f.HCP, other),
		Convention: "michaels",
	}
}

// unusualNoTrump jumps to 2NT over a one-level opening to show the two
// lowest unbid suits, five-five.
func (s *System) unusualNoTrump(hand cards.Hand, f *features.Features) *Suggestion {
	opening := f.OpenerLastBid
	if !opening.Strain.IsSuit() || opening.Level != 1 {
		return nil
	}
	if f.HCP < twoSuitedMinHCP {
		return nil
	}

	suits := lowestUnbid(opening.Strain.Suit())
	if f.SuitLengths[suits[0]] < 5 || f.SuitLengths[suits[1]] < 5 {
		return nil
	}

	return &Suggestion{
		Call: auction.BidCall(2, auction.StrainNoTrump),
		Rationale: fmt.Sprintf("Unusual 2NT: %d HCP with five-five in %s and %s.",
			f.HCP, suits[0], suits[1]),
		Convention: "unusual-notrump",
	}
}

// lowestUnbid returns the two lowest-ranking suits other than theirs
func lowestUnbid(theirs cards.Suit) [2]cards.Suit {
	var out [2]cards.Suit
	i := 0
	for _, suit := range cards.Suits {
		if suit == theirs || i == 2 {
			continue
		}
		out[i] = suit
		i++
	}
	return out
}
