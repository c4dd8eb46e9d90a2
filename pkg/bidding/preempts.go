package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

// Preempt ranges: weak hands with long suits open high to take bidding
// space, never with the strength of a real opening.
const (
	preemptMinHCP = 5
	preemptMaxHCP = 10
)

// preemptOpening runs before the natural opening: a weak two on a good
// six-card suit, or a three-level preempt on seven.
func (s *System) preemptOpening(hand cards.Hand, f *features.Features) *Suggestion {
	if f.HCP < preemptMinHCP || f.HCP > preemptMaxHCP {
		return nil
	}

	suit := f.LongestSuit()
	length := f.SuitLengths[suit]

	if length >= 7 {
		return &Suggestion{
			Call: auction.BidCall(3, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("Preempt: %d HCP with a seven-card %s suit takes away bidding room.",
				f.HCP, suit),
			Convention: "preempt",
		}
	}

	// Weak two: six cards with two of the top three honors. 2♣ is reserved
	// for the strong opening.
	if length == 6 && suit != cards.Clubs && honors(hand, suit) >= 2 {
		return &Suggestion{
			Call: auction.BidCall(2, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("Weak two: %d HCP with six good %s.",
				f.HCP, suit),
			Convention: "preempt",
		}
	}

	return nil
}
