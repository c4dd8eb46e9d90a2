package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

// Partnership strength estimates used when deciding whether to move toward
// slam. These are minimums the partner's calls have promised, not exact
// counts; the signoff thresholds compensate.
const (
	openerMinPoints    = 13
	responderMinPoints = 6
	limitResponseMin   = 10
	splinterMinPoints  = 10
	splinterMaxPoints  = 15
)

var fourNoTrump = auction.BidCall(4, auction.StrainNoTrump)

// combinedEstimate is the asking hand's points plus the minimum partner has
// promised so far.
func combinedEstimate(f *features.Features) int {
	partnerMin := responderMinPoints
	if f.Relationship == features.Partner {
		partnerMin = openerMinPoints
	} else if f.PartnerActed && f.PartnerLastCall.IsBid() && f.PartnerLastCall.Bid.Level >= 3 {
		// A jump response promises invitational values.
		partnerMin = limitResponseMin
	}
	return f.Points() + partnerMin
}

// blackwoodInit asks for aces with 4NT once a trump suit is agreed and the
// combined strength is in slam range. It never fires without a fit: 4NT
// with no agreed suit is quantitative, which this system does not play.
func (s *System) blackwoodInit(hand cards.Hand, f *features.Features) *Suggestion {
	if !f.HasFit {
		return nil
	}
	// Already asked or already answered: the follow-up modules own the rest
	// of the sequence.
	if f.SelfLastCall == fourNoTrump || f.PartnerLastCall == fourNoTrump {
		return nil
	}

	combined := combinedEstimate(f)
	if combined < s.slam.SmallSlamAllAces {
		return nil
	}

	return &Suggestion{
		Call: fourNoTrump,
		Rationale: fmt.Sprintf("Blackwood: %s agreed and about %d combined points, asking for aces.",
			f.FitSuit, combined),
		Convention: "blackwood",
	}
}

// blackwoodRespond answers partner's 4NT ace ask on the step scale:
// 5♣ = 0 or 4 aces, 5♦ = 1, 5♥ = 2, 5♠ = 3.
func (s *System) blackwoodRespond(hand cards.Hand, f *features.Features) *Suggestion {
	if !f.PartnerActed || f.PartnerLastCall != fourNoTrump {
		return nil
	}

	n := aces(hand)
	step := n % 4
	return &Suggestion{
		Call: auction.BidCall(5, auction.Strain(step)),
		Rationale: fmt.Sprintf("Answering Blackwood: %d ace(s), so 5%s.",
			n, auction.Strain(step)),
		Convention: "blackwood",
	}
}

// blackwoodSignoff places the contract after partner's ace answer. The level
// is a function of the aces the partnership holds and the combined strength:
// the fewer aces known, the more points slam requires, and two missing aces
// always stop at the five level.
func (s *System) blackwoodSignoff(hand cards.Hand, f *features.Features) *Suggestion {
	if f.SelfLastCall != fourNoTrump {
		return nil
	}
	if !f.PartnerActed || !f.PartnerLastCall.IsBid() || f.PartnerLastCall.Bid.Level != 5 {
		return nil
	}

	partnerAces := decodeAceAnswer(f.PartnerLastCall.Bid.Strain, aces(hand))
	total := aces(hand) + partnerAces
	missing := 4 - total
	combined := combinedEstimate(f)

	strain := auction.StrainNoTrump
	if f.HasFit {
		strain = auction.SuitStrain(f.FitSuit)
	}

	level := 5
	reason := fmt.Sprintf("missing %d ace(s), stopping below slam", missing)
	switch {
	case missing == 0 && combined >= s.slam.GrandSlam:
		level = 7
		reason = fmt.Sprintf("all four aces and %d combined points", combined)
	case missing == 0 && combined >= s.slam.SmallSlamAllAces:
		level = 6
		reason = fmt.Sprintf("all four aces and %d combined points", combined)
	case missing == 1 && combined >= s.slam.SmallSlamOneAceOut:
		level = 6
		reason = fmt.Sprintf("one ace missing but %d combined points", combined)
	}

	return &Suggestion{
		Call:       auction.BidCall(level, strain),
		Rationale:  fmt.Sprintf("Blackwood signoff: %s.", reason),
		Convention: "blackwood",
	}
}

// decodeAceAnswer maps the step response back to an ace count. 5♣ is
// ambiguous between zero and four; the asker's own holding resolves it,
// since five aces cannot exist.
func decodeAceAnswer(strain auction.Strain, ownAces int) int {
	switch strain {
	case auction.StrainClubs:
		if ownAces == 0 {
			return 4
		}
		return 0
	case auction.StrainDiamonds:
		return 1
	case auction.StrainHearts:
		return 2
	case auction.StrainSpades:
		return 3
	}
	return 0
}

// splinter jumps in a short suit over partner's major opening: four-card
// support, a singleton or void, and game-going but not slam-driving
// strength. The bid is one level above the cheapest jump in that suit.
func (s *System) splinter(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Relationship != features.Partner || f.Interference.Present {
		return nil
	}
	opening := f.OpeningBid
	if opening.Level != 1 || !opening.Strain.IsSuit() {
		return nil
	}
	trump := opening.Strain.Suit()
	if trump != cards.Hearts && trump != cards.Spades {
		return nil
	}
	if f.SuitLengths[trump] < 4 {
		return nil
	}

	points := f.SupportPoints(trump)
	if points < splinterMinPoints || points > splinterMaxPoints {
		return nil
	}

	for _, short := range cards.Suits {
		if short == trump || f.SuitLengths[short] > 1 {
			continue
		}

		strain := auction.SuitStrain(short)
		level := 2
		if opening.Less(auction.Bid{Level: 1, Strain: strain}) {
			level = 1
		}
		shape := "singleton"
		if f.SuitLengths[short] == 0 {
			shape = "void"
		}
		return &Suggestion{
			Call: auction.BidCall(level+2, strain),
			Rationale: fmt.Sprintf("Splinter: %d-card %s support with a %s %s.",
				f.SuitLengths[trump], trump, shape, short),
			Convention: "splinter",
		}
	}
	return nil
}
