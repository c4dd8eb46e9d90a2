package cards

import (
	"fmt"
	"math/rand"
	"strings"
)

// Deal holds the four hands of one board, indexed by Seat.
type Deal [4]Hand

// Hand returns the hand dealt to seat
func (d Deal) Hand(seat Seat) Hand {
	return d[seat]
}

// String formats the deal in the standard text form, North's hand first:
// "N:AKQ2.T98.76.5432 J97.AKJ.T98.AK87 ..."
func (d Deal) String() string {
	parts := make([]string, 0, 4)
	for _, seat := range Seats {
		parts = append(parts, d[seat].String())
	}
	return "N:" + strings.Join(parts, " ")
}

// ParseDeal parses the text form produced by String. The leading seat letter
// names whose hand comes first; the rest follow clockwise. Every card must
// appear exactly once across the four hands.
func ParseDeal(s string) (Deal, error) {
	var d Deal

	colon := strings.IndexByte(s, ':')
	if colon != 1 {
		return d, fmt.Errorf("invalid deal %q: missing seat prefix", s)
	}
	first, err := ParseSeat(s[:1])
	if err != nil {
		return d, fmt.Errorf("invalid deal %q: %w", s, err)
	}

	fields := strings.Fields(s[colon+1:])
	if len(fields) != 4 {
		return d, fmt.Errorf("invalid deal %q: want 4 hands, got %d", s, len(fields))
	}

	seat := first
	for _, field := range fields {
		h, err := ParseHand(field)
		if err != nil {
			return d, fmt.Errorf("invalid deal: %w", err)
		}
		if h.Len() != 13 {
			return d, fmt.Errorf("invalid deal: %s holds %d cards", seat, h.Len())
		}
		d[seat] = h
		seat = seat.Next()
	}

	// Disjoint 13-card hands covering 52 cards means each suit mask unions
	// to the full 13 bits with no overlap.
	for _, suit := range Suits {
		var union uint16
		for _, seat := range Seats {
			if union&d[seat][suit] != 0 {
				return Deal{}, fmt.Errorf("invalid deal %q: duplicated card in %s", s, suit)
			}
			union |= d[seat][suit]
		}
		if union != rankMask {
			return Deal{}, fmt.Errorf("invalid deal %q: missing cards in %s", s, suit)
		}
	}

	return d, nil
}

// MustParseDeal is ParseDeal that panics on error, for fixed test boards
func MustParseDeal(s string) Deal {
	d, err := ParseDeal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Deck is an ordered sequence of cards.
type Deck []Card

// NewDeck returns all 52 cards in suit then rank order
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for _, s := range Suits {
		for r := Two; r <= Ace; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle randomizes the deck in place using the Fisher-Yates algorithm
func (d Deck) Shuffle(rng *rand.Rand) {
	for i := len(d) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Deal distributes the deck round-robin into four hands starting at North
func (d Deck) Deal() Deal {
	var deal Deal
	for i, c := range d {
		seat := Seat(i % 4)
		deal[seat] = deal[seat].With(c)
	}
	return deal
}

// RandomDeal shuffles a fresh deck with rng and deals it
func RandomDeal(rng *rand.Rand) Deal {
	deck := NewDeck()
	deck.Shuffle(rng)
	return deck.Deal()
}
