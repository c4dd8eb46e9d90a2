package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

// Response ranges opposite a one-of-a-suit opening.
const (
	respondMinPoints   = 6
	limitRaiseMin      = 10
	gameForceMin       = 13
	twoLevelNewSuitMin = 10
)

// naturalResponse answers partner's opening once the artificial options have
// declined: raises with support, new suits, and the notrump ladder.
func (s *System) naturalResponse(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Relationship != features.Partner {
		return nil
	}

	opening := f.OpeningBid
	switch {
	case opening.Strain == auction.StrainNoTrump:
		return s.respondToNoTrump(f)
	case opening.Level == 2 && opening.Strain == auction.StrainClubs:
		return s.respondToStrongTwo(f)
	case opening.Level >= 2:
		return s.respondToPreempt(hand, f)
	}

	return s.respondToOneOfASuit(hand, f)
}

func (s *System) respondToOneOfASuit(hand cards.Hand, f *features.Features) *Suggestion {
	opened := f.OpeningBid.Strain.Suit()

	if f.Points() < respondMinPoints {
		return &Suggestion{
			Call:       auction.Pass,
			Rationale:  fmt.Sprintf("%d points: too weak to respond.", f.Points()),
			Convention: "response",
		}
	}

	// Raise with support. Majors need three trumps, minors four.
	supportNeeded := 3
	if opened == cards.Clubs || opened == cards.Diamonds {
		supportNeeded = 4
	}
	if f.SuitLengths[opened] >= supportNeeded {
		points := f.SupportPoints(opened)
		switch {
		case points >= gameForceMin && (opened == cards.Hearts || opened == cards.Spades):
			return &Suggestion{
				Call: auction.BidCall(4, auction.SuitStrain(opened)),
				Rationale: fmt.Sprintf("%d support points with %d-card support: raise to game.",
					points, f.SuitLengths[opened]),
				Convention: "response",
			}
		case points >= limitRaiseMin:
			return &Suggestion{
				Call: auction.BidCall(3, auction.SuitStrain(opened)),
				Rationale: fmt.Sprintf("Limit raise: %d support points with %d-card support.",
					points, f.SuitLengths[opened]),
				Convention: "response",
			}
		case points >= respondMinPoints:
			return &Suggestion{
				Call: auction.BidCall(2, auction.SuitStrain(opened)),
				Rationale: fmt.Sprintf("Simple raise: %d support points with %d-card support.",
					points, f.SuitLengths[opened]),
				Convention: "response",
			}
		}
	}

	// New suit: four or more cards, bid up the line. A two-level
	// introduction needs ten points and a fifth card.
	if bid, suit, ok := s.newSuitResponse(f); ok {
		return &Suggestion{
			Call: auction.Call{Kind: auction.CallBid, Bid: bid},
			Rationale: fmt.Sprintf("%d points with %d %s: bid the suit up the line.",
				f.Points(), f.SuitLengths[suit], suit),
			Convention: "response",
		}
	}

	// 3NT with a balanced game-going hand, otherwise the catch-all 1NT.
	if f.Balanced && f.Points() >= gameForceMin {
		return &Suggestion{
			Call:       auction.BidCall(3, auction.StrainNoTrump),
			Rationale:  fmt.Sprintf("%d balanced points, no fit: bid game in notrump.", f.Points()),
			Convention: "response",
		}
	}
	return &Suggestion{
		Call:       auction.BidCall(1, auction.StrainNoTrump),
		Rationale:  fmt.Sprintf("%d points, no fit and no cheap suit: respond 1NT.", f.Points()),
		Convention: "response",
	}
}

// newSuitResponse finds the cheapest biddable new suit over partner's
// opening. Four-card suits qualify; the one-level is preferred and the
// two-level requires extra strength.
func (s *System) newSuitResponse(f *features.Features) (auction.Bid, cards.Suit, bool) {
	opening := f.OpeningBid

	// Up the line: cheapest strain above the opening first, then the wrap
	// to the two level.
	for _, strain := range auction.Strains[:4] {
		suit := strain.Suit()
		if suit == opening.Strain.Suit() || f.SuitLengths[suit] < 4 {
			continue
		}
		bid := auction.Bid{Level: 1, Strain: strain}
		if opening.Less(bid) {
			return bid, suit, true
		}
	}
	if f.Points() < twoLevelNewSuitMin {
		return auction.Bid{}, 0, false
	}
	for _, strain := range auction.Strains[:4] {
		suit := strain.Suit()
		if suit == opening.Strain.Suit() || f.SuitLengths[suit] < 5 {
			continue
		}
		bid := auction.Bid{Level: 2, Strain: strain}
		if opening.Less(bid) {
			return bid, suit, true
		}
	}
	return auction.Bid{}, 0, false
}

// respondToNoTrump covers the raises left after Stayman and the transfers
// have declined.
func (s *System) respondToNoTrump(f *features.Features) *Suggestion {
	level := f.OpeningBid.Level

	if level == 2 {
		if f.HCP >= 5 {
			return &Suggestion{
				Call:       auction.BidCall(3, auction.StrainNoTrump),
				Rationale:  fmt.Sprintf("%d HCP opposite 20-21: raise to game.", f.HCP),
				Convention: "response",
			}
		}
		return &Suggestion{
			Call:       auction.Pass,
			Rationale:  fmt.Sprintf("%d HCP opposite 2NT: no game.", f.HCP),
			Convention: "response",
		}
	}

	switch {
	case f.HCP >= 10:
		return &Suggestion{
			Call:       auction.BidCall(3, auction.StrainNoTrump),
			Rationale:  fmt.Sprintf("%d HCP opposite 15-17: raise to game.", f.HCP),
			Convention: "response",
		}
	case f.HCP >= 8:
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainNoTrump),
			Rationale:  fmt.Sprintf("%d HCP opposite 15-17: invite game.", f.HCP),
			Convention: "response",
		}
	}
	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  fmt.Sprintf("%d HCP opposite a strong notrump: no game interest.", f.HCP),
		Convention: "response",
	}
}

// respondToStrongTwo keeps the strong 2♣ auction alive with the cheapest
// waiting bid.
func (s *System) respondToStrongTwo(f *features.Features) *Suggestion {
	return &Suggestion{
		Call:       auction.BidCall(2, auction.StrainDiamonds),
		Rationale:  "2♦ waiting: partner's 2♣ is forcing, shape comes later.",
		Convention: "response",
	}
}

// respondToPreempt raises partner's preempt with a fit or gets out of the
// way.
func (s *System) respondToPreempt(hand cards.Hand, f *features.Features) *Suggestion {
	suit := f.OpeningBid.Strain.Suit()
	support := f.SuitLengths[suit]

	if f.Points() >= 16 && support >= 2 &&
		(suit == cards.Hearts || suit == cards.Spades) {
		return &Suggestion{
			Call: auction.BidCall(4, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("%d points with %d-card support: raise the preempt to game.",
				f.Points(), support),
			Convention: "response",
		}
	}

	if support >= 3 && f.OpeningBid.Level == 2 {
		return &Suggestion{
			Call: auction.BidCall(3, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("Furthering the preempt: %d-card support, opponents still have room.",
				support),
			Convention: "response",
		}
	}

	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  "Partner preempted; no reason to disturb it.",
		Convention: "response",
	}
}
