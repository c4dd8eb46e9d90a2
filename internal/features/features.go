// Package features derives the bidding inputs from a hand and the auction so
// far: point counts, shape, and the auction facts every convention module
// keys off (who opened, partner's last call, interference, balancing seat).
//
// Extraction is pure. The auction and hand are never modified, and the same
// inputs always produce the same bundle, so callers may re-extract freely.
package features

import (
	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
)

// Relationship places the acting seat relative to the opener.
type Relationship uint8

const (
	NoOpener Relationship = iota
	Self
	Partner
	Opponent
)

// String describes the relationship
func (r Relationship) String() string {
	return [...]string{"no opener", "self", "partner", "opponent"}[r]
}

// High card points per rank.
var hcpValue = map[cards.Rank]int{
	cards.Ace:   4,
	cards.King:  3,
	cards.Queen: 2,
	cards.Jack:  1,
}

// Interference is an opposing non-pass call made after partner's most recent
// action, as seen from the acting seat.
type Interference struct {
	Present bool
	Call    auction.Call
	Seat    cards.Seat
}

// Features is the immutable bundle handed to every convention module. Auction
// facts are computed once here, never re-derived inside modules.
type Features struct {
	Seat cards.Seat

	// Hand shape and strength.
	HCP         int
	DistPoints  int
	SuitLengths [4]int
	Balanced    bool

	// Auction facts.
	HasOpener     bool
	Opener        cards.Seat
	Relationship  Relationship
	OpeningBid    auction.Bid // valid when HasOpener
	OpenerLastBid auction.Bid // valid when HasOpener

	PartnerActed    bool
	PartnerLastCall auction.Call // most recent non-pass, valid when PartnerActed
	SelfActed       bool
	SelfLastCall    auction.Call // most recent non-pass, valid when SelfActed

	Contested    bool
	Balancing    bool
	Interference Interference

	HasFit  bool
	FitSuit cards.Suit // a suit both partners have bid, valid when HasFit

	// Number of calls the acting seat has made since the opening bid.
	CallsSinceOpening int
}

// Points returns opening strength: high card points plus length points
func (f *Features) Points() int {
	return f.HCP + f.DistPoints
}

// SupportPoints returns strength when raising partner's trump suit: high
// card points plus shortness (void 5, singleton 3, doubleton 1). Only
// meaningful once a fit is established; length points are not added on top.
func (f *Features) SupportPoints(trump cards.Suit) int {
	points := f.HCP
	for _, s := range cards.Suits {
		if s == trump {
			continue
		}
		switch f.SuitLengths[s] {
		case 0:
			points += 5
		case 1:
			points += 3
		case 2:
			points++
		}
	}
	return points
}

// LongestSuit returns the longest suit, breaking ties toward the
// higher-ranking suit
func (f *Features) LongestSuit() cards.Suit {
	best := cards.Clubs
	for _, s := range cards.Suits {
		if f.SuitLengths[s] >= f.SuitLengths[best] {
			best = s
		}
	}
	return best
}

// Extract computes the feature bundle for the seat due to call on a.
func Extract(hand cards.Hand, a auction.Auction) *Features {
	seat := a.Turn()
	f := &Features{Seat: seat}

	for _, c := range hand.Cards() {
		f.HCP += hcpValue[c.Rank]
	}
	for _, s := range cards.Suits {
		length := hand.SuitLength(s)
		f.SuitLengths[s] = length
		if length >= 5 {
			f.DistPoints += length - 4
		}
	}
	f.Balanced = balanced(f.SuitLengths)

	extractAuctionFacts(f, a)
	return f
}

// balanced means no void, no singleton and at most one doubleton (the 4333,
// 4432 and 5332 patterns)
func balanced(lengths [4]int) bool {
	doubletons := 0
	for _, n := range lengths {
		if n < 2 {
			return false
		}
		if n == 2 {
			doubletons++
		}
	}
	return doubletons <= 1
}

func extractAuctionFacts(f *Features, a auction.Auction) {
	seat := f.Seat
	partner := seat.Partner()

	if opener, ok := a.Opener(); ok {
		f.HasOpener = true
		f.Opener = opener
		switch {
		case opener == seat:
			f.Relationship = Self
		case opener == partner:
			f.Relationship = Partner
		default:
			f.Relationship = Opponent
		}
		if bids := a.BidsBy(opener); len(bids) > 0 {
			f.OpeningBid = bids[0]
			f.OpenerLastBid = bids[len(bids)-1]
		}
	}

	f.PartnerLastCall, f.PartnerActed = a.LastNonPassBy(partner)
	f.SelfLastCall, f.SelfActed = a.LastNonPassBy(seat)
	f.Contested = a.Contested()

	// Balancing seat: the previous two calls were passes and somebody has
	// bid, so one more pass ends the auction. The first non-pass call of any
	// auction is necessarily a bid, so checking for an opener suffices.
	n := len(a.Calls)
	if n >= 2 && a.Calls[n-1].Kind == auction.CallPass && a.Calls[n-2].Kind == auction.CallPass {
		if _, ok := a.Opener(); ok {
			f.Balancing = true
		}
	}

	extractInterference(f, a)
	extractFit(f, a)

	if f.HasOpener {
		for i := openingIndex(a) + 1; i < n; i++ {
			if a.Seat(i) == seat {
				f.CallsSinceOpening++
			}
		}
	}
}

// extractInterference records the most recent opposing non-pass call made
// after partner's last action.
func extractInterference(f *Features, a auction.Auction) {
	if !f.PartnerActed {
		return
	}

	partner := f.Seat.Partner()
	partnerIndex := -1
	for i := len(a.Calls) - 1; i >= 0; i-- {
		if a.Seat(i) == partner && a.Calls[i].Kind != auction.CallPass {
			partnerIndex = i
			break
		}
	}

	for i := len(a.Calls) - 1; i > partnerIndex; i-- {
		if a.Seat(i).Side() != f.Seat.Side() && a.Calls[i].Kind != auction.CallPass {
			f.Interference = Interference{Present: true, Call: a.Calls[i], Seat: a.Seat(i)}
			return
		}
	}
}

// extractFit finds a suit both partners have bid, preferring the most
// recently confirmed one.
func extractFit(f *Features, a auction.Auction) {
	var self, partner [4]bool
	for _, b := range a.BidsBy(f.Seat) {
		if b.Strain.IsSuit() {
			self[b.Strain.Suit()] = true
		}
	}
	for _, b := range a.BidsBy(f.Seat.Partner()) {
		if b.Strain.IsSuit() {
			partner[b.Strain.Suit()] = true
		}
	}

	for i := len(a.Calls) - 1; i >= 0; i-- {
		c := a.Calls[i]
		if !c.IsBid() || !c.Bid.Strain.IsSuit() {
			continue
		}
		if a.Seat(i).Side() != f.Seat.Side() {
			continue
		}
		s := c.Bid.Strain.Suit()
		if self[s] && partner[s] {
			f.HasFit = true
			f.FitSuit = s
			return
		}
	}
}

func openingIndex(a auction.Auction) int {
	for i, c := range a.Calls {
		if c.IsBid() {
			return i
		}
	}
	return -1
}
