package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

// Opener rebid strength bands.
const (
	openerExtrasMin = 16
	openerGameMin   = 19
)

// openerRebid is the opener's second call: raise partner's suit with
// support, accept or decline raises by strength band, rebid a six-card
// suit, show a second suit, or retreat to notrump with a balanced minimum.
func (s *System) openerRebid(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Relationship != features.Self || !f.PartnerActed {
		return nil
	}
	if !f.PartnerLastCall.IsBid() {
		return nil
	}
	response := f.PartnerLastCall.Bid
	opened := f.OpeningBid

	// Partner raised our suit: pass a simple raise with a minimum, invite
	// or bid game with extras.
	if opened.Strain.IsSuit() && response.Strain == opened.Strain {
		return s.openerAfterRaise(f, response)
	}

	// Partner bid a new suit: raise with four-card support.
	if response.Strain.IsSuit() && f.SuitLengths[response.Strain.Suit()] >= 4 {
		level := response.Level + 1
		if f.Points() >= openerGameMin &&
			(response.Strain.Suit() == cards.Hearts || response.Strain.Suit() == cards.Spades) {
			level = 4
		}
		return &Suggestion{
			Call: auction.BidCall(level, response.Strain),
			Rationale: fmt.Sprintf("Raising partner's %s with %d-card support and %d points.",
				response.Strain, f.SuitLengths[response.Strain.Suit()], f.Points()),
			Convention: "opener-rebid",
		}
	}

	// Six-card suit: rebid it, jumping with extras.
	if opened.Strain.IsSuit() && f.SuitLengths[opened.Strain.Suit()] >= 6 {
		level := opened.Level + 1
		if f.Points() >= openerExtrasMin {
			level++
		}
		return &Suggestion{
			Call: auction.BidCall(level, opened.Strain),
			Rationale: fmt.Sprintf("Rebidding a %d-card %s suit with %d points.",
				f.SuitLengths[opened.Strain.Suit()], opened.Strain, f.Points()),
			Convention: "opener-rebid",
		}
	}

	// Second suit of four or more cards, cheapest first.
	if suit, ok := secondSuit(f, opened, response); ok {
		return &Suggestion{
			Call: auction.BidCall(cheapestOver(response, auction.SuitStrain(suit)), auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("Showing the second suit: %d %s.",
				f.SuitLengths[suit], suit),
			Convention: "opener-rebid",
		}
	}

	// Balanced minimum without support: the cheapest notrump.
	level := 1
	if !response.Less(auction.Bid{Level: 1, Strain: auction.StrainNoTrump}) {
		level = 2
	}
	if f.Points() >= openerGameMin {
		level = 3
	}
	return &Suggestion{
		Call:       auction.BidCall(level, auction.StrainNoTrump),
		Rationale:  fmt.Sprintf("%d points, no fit for partner: rebid %dNT.", f.Points(), level),
		Convention: "opener-rebid",
	}
}

// openerAfterRaise continues after partner supported the opened suit.
func (s *System) openerAfterRaise(f *features.Features, raise auction.Bid) *Suggestion {
	suit := raise.Strain.Suit()
	game := 4
	if suit == cards.Clubs || suit == cards.Diamonds {
		game = 5
	}

	switch {
	case f.Points() >= openerGameMin || (raise.Level >= 3 && f.Points() >= openerExtrasMin):
		return &Suggestion{
			Call: auction.BidCall(game, raise.Strain),
			Rationale: fmt.Sprintf("Partner raised %s; %d points is enough for game.",
				raise.Strain, f.Points()),
			Convention: "opener-rebid",
		}
	case raise.Level == 2 && f.Points() >= openerExtrasMin:
		return &Suggestion{
			Call: auction.BidCall(3, raise.Strain),
			Rationale: fmt.Sprintf("Inviting game: %d points over partner's simple raise.",
				f.Points()),
			Convention: "opener-rebid",
		}
	}
	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  fmt.Sprintf("Minimum opening (%d points); partner's raise is high enough.", f.Points()),
		Convention: "opener-rebid",
	}
}

// responderRebid is the responder's second call: support partner's second
// suit, give preference between partner's suits, raise toward game with
// extra strength, or stop.
func (s *System) responderRebid(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Relationship != features.Partner || !f.PartnerActed {
		return nil
	}

	// With an established fit the only question is how high.
	if f.HasFit {
		return s.responderWithFit(f)
	}

	if !f.PartnerLastCall.IsBid() {
		return nil
	}
	rebid := f.PartnerLastCall.Bid

	// Support partner's second suit.
	if rebid.Strain.IsSuit() && f.SuitLengths[rebid.Strain.Suit()] >= 4 {
		level := rebid.Level + 1
		if f.Points() >= gameForceMin &&
			(rebid.Strain.Suit() == cards.Hearts || rebid.Strain.Suit() == cards.Spades) {
			level = 4
		}
		return &Suggestion{
			Call: auction.BidCall(level, rebid.Strain),
			Rationale: fmt.Sprintf("Supporting partner's second suit with %d cards and %d points.",
				f.SuitLengths[rebid.Strain.Suit()], f.Points()),
			Convention: "responder-rebid",
		}
	}

	// Preference back to the opened suit on a doubleton or better.
	if f.OpeningBid.Strain.IsSuit() && rebid.Strain != f.OpeningBid.Strain &&
		f.SuitLengths[f.OpeningBid.Strain.Suit()] >= 2 &&
		f.SuitLengths[f.OpeningBid.Strain.Suit()] > f.SuitLengths[rebid.Strain.Suit()] {
		return &Suggestion{
			Call: auction.BidCall(cheapestOver(rebid, f.OpeningBid.Strain), f.OpeningBid.Strain),
			Rationale: fmt.Sprintf("Preference to partner's first suit, %s.",
				f.OpeningBid.Strain),
			Convention: "responder-rebid",
		}
	}

	// Balanced values: the notrump ladder by strength.
	if f.Balanced && f.HCP >= limitRaiseMin {
		level := 2
		if f.HCP >= gameForceMin {
			level = 3
		}
		if !rebid.Less(auction.Bid{Level: level, Strain: auction.StrainNoTrump}) {
			level = rebid.Level + 1
		}
		return &Suggestion{
			Call:       auction.BidCall(level, auction.StrainNoTrump),
			Rationale:  fmt.Sprintf("%d HCP, balanced: %dNT.", f.HCP, level),
			Convention: "responder-rebid",
		}
	}

	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  "Nothing more to show; partner has a safe spot.",
		Convention: "responder-rebid",
	}
}

// responderWithFit raises the agreed suit toward game when strength allows.
func (s *System) responderWithFit(f *features.Features) *Suggestion {
	suit := f.FitSuit
	points := f.SupportPoints(suit)
	game := 4
	if suit == cards.Clubs || suit == cards.Diamonds {
		game = 5
	}

	current := 0
	if f.PartnerLastCall.IsBid() && f.PartnerLastCall.Bid.Strain == auction.SuitStrain(suit) {
		current = f.PartnerLastCall.Bid.Level
	}

	if points >= gameForceMin && current < game {
		return &Suggestion{
			Call: auction.BidCall(game, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("%d support points with %s agreed: bid game.",
				points, suit),
			Convention: "responder-rebid",
		}
	}
	if points >= limitRaiseMin && current > 0 && current+1 < game {
		return &Suggestion{
			Call: auction.BidCall(current+1, auction.SuitStrain(suit)),
			Rationale: fmt.Sprintf("Inviting with %d support points in %s.",
				points, suit),
			Convention: "responder-rebid",
		}
	}
	return &Suggestion{
		Call:       auction.Pass,
		Rationale:  fmt.Sprintf("The fit is found and %d support points has no game interest.", points),
		Convention: "responder-rebid",
	}
}

// fourthSuitForcing bids the last unbid suit artificially when the
// partnership has shown three suits and responder has game-going values
// with no natural call. Partner must keep bidding.
func (s *System) fourthSuitForcing(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Relationship != features.Partner || f.HasFit {
		return nil
	}
	if f.HCP < gameForceMin-1 {
		return nil
	}
	if !f.PartnerLastCall.IsBid() || !f.SelfLastCall.IsBid() {
		return nil
	}

	var bid [4]bool
	for _, b := range []auction.Bid{f.OpeningBid, f.PartnerLastCall.Bid, f.SelfLastCall.Bid} {
		if b.Strain.IsSuit() {
			bid[b.Strain.Suit()] = true
		}
	}
	shown := 0
	fourth := cards.Clubs
	for _, suit := range cards.Suits {
		if bid[suit] {
			shown++
		} else {
			fourth = suit
		}
	}
	if shown != 3 {
		return nil
	}
	// A stopper in the fourth suit means notrump is natural; no need for
	// the artificial call.
	if stopper(hand, fourth) {
		return nil
	}

	return &Suggestion{
		Call: auction.BidCall(cheapestOver(f.PartnerLastCall.Bid, auction.SuitStrain(fourth)), auction.SuitStrain(fourth)),
		Rationale: fmt.Sprintf("Fourth suit forcing: %d HCP, asking partner for more shape; says nothing about %s.",
			f.HCP, fourth),
		Convention: "fourth-suit",
	}
}

// secondSuit finds opener's cheapest unbid four-card suit.
func secondSuit(f *features.Features, opened, response auction.Bid) (cards.Suit, bool) {
	for _, suit := range cards.Suits {
		if opened.Strain.IsSuit() && suit == opened.Strain.Suit() {
			continue
		}
		if response.Strain.IsSuit() && suit == response.Strain.Suit() {
			continue
		}
		if f.SuitLengths[suit] >= 4 {
			return suit, true
		}
	}
	return 0, false
}

// cheapestOver returns the lowest level at which strain outranks last.
func cheapestOver(last auction.Bid, strain auction.Strain) int {
	for level := last.Level; level <= 7; level++ {
		if last.Less(auction.Bid{Level: level, Strain: strain}) {
			return level
		}
	}
	return 7
}
