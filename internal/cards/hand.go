package cards

import (
	"fmt"
	"math/bits"
	"strings"
)

// Hand is a set of cards held by one seat, stored as one 13-bit mask per
// suit (bit 0 = two, bit 12 = ace). Hands are comparable and copy by value;
// With and Without return new hands.
type Hand [4]uint16

const rankMask = 0x1fff

func rankBit(r Rank) uint16 {
	return 1 << (r - Two)
}

// Has reports whether the hand contains c
func (h Hand) Has(c Card) bool {
	return h[c.Suit]&rankBit(c.Rank) != 0
}

// With returns a copy of the hand with c added
func (h Hand) With(c Card) Hand {
	h[c.Suit] |= rankBit(c.Rank)
	return h
}

// Without returns a copy of the hand with c removed
func (h Hand) Without(c Card) Hand {
	h[c.Suit] &^= rankBit(c.Rank)
	return h
}

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	n := 0
	for _, m := range h {
		n += bits.OnesCount16(m)
	}
	return n
}

// Empty reports whether the hand holds no cards
func (h Hand) Empty() bool {
	return h == Hand{}
}

// SuitLength returns the number of cards held in suit s
func (h Hand) SuitLength(s Suit) int {
	return bits.OnesCount16(h[s])
}

// HasSuit reports whether the hand holds at least one card of suit s
func (h Hand) HasSuit(s Suit) bool {
	return h[s] != 0
}

// Ranks returns the ranks held in suit s, highest first
func (h Hand) Ranks(s Suit) []Rank {
	ranks := make([]Rank, 0, bits.OnesCount16(h[s]))
	for r := Ace; r >= Two; r-- {
		if h[s]&rankBit(r) != 0 {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

// Top returns the highest rank held in suit s
func (h Hand) Top(s Suit) (Rank, bool) {
	if h[s] == 0 {
		return 0, false
	}
	return Rank(bits.Len16(h[s])) + Two - 1, true
}

// Bottom returns the lowest rank held in suit s
func (h Hand) Bottom(s Suit) (Rank, bool) {
	if h[s] == 0 {
		return 0, false
	}
	return Rank(bits.TrailingZeros16(h[s])) + Two, true
}

// Cards returns every card in the hand, spades first, descending rank within
// each suit. This is the display order used by the text encoding.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.Len())
	for i := len(Suits) - 1; i >= 0; i-- {
		s := Suits[i]
		for _, r := range h.Ranks(s) {
			out = append(out, Card{Suit: s, Rank: r})
		}
	}
	return out
}

// String formats the hand as four dot-separated suit holdings in
// spades-hearts-diamonds-clubs order, e.g. "AKQ2.T98.76.5432". A void suit
// is an empty segment.
func (h Hand) String() string {
	parts := make([]string, 0, 4)
	for i := len(Suits) - 1; i >= 0; i-- {
		parts = append(parts, formatRanks(h.Ranks(Suits[i])))
	}
	return strings.Join(parts, ".")
}

// ParseHand parses the dot-separated text form produced by String. The hand
// may hold fewer than thirteen cards (play positions shrink) but never a
// duplicated card.
func ParseHand(s string) (Hand, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Hand{}, fmt.Errorf("invalid hand %q: want 4 suit groups, got %d", s, len(parts))
	}

	var h Hand
	for i, part := range parts {
		suit := Suits[3-i]
		ranks, err := parseRanks(part)
		if err != nil {
			return Hand{}, fmt.Errorf("invalid hand %q: %w", s, err)
		}
		for _, r := range ranks {
			if h[suit]&rankBit(r) != 0 {
				return Hand{}, fmt.Errorf("invalid hand %q: duplicate %s", s, Card{Suit: suit, Rank: r})
			}
			h[suit] |= rankBit(r)
		}
	}
	if h.Len() > 13 {
		return Hand{}, fmt.Errorf("invalid hand %q: %d cards", s, h.Len())
	}
	return h, nil
}

// MustParseHand is ParseHand that panics on error, for fixed test positions
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(err)
	}
	return h
}
