// Package cards implements the deck model for contract bridge: suits, ranks,
// cards, thirteen-card hands and full deals, plus the compact text encoding
// used to exchange hands and deals ("AKQ2.T98.76.5432", "N:... ... ... ...").
//
// Hands are immutable values backed by per-suit bitsets; With and Without
// return modified copies and never touch the receiver.
package cards

import (
	"fmt"
	"strings"
)

// Suit identifies one of the four suits. The numeric order matches the
// bidding rank of the suits, clubs lowest.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists all suits in ascending bidding order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the suit symbol
func (s Suit) String() string {
	return [...]string{"♣", "♦", "♥", "♠"}[s]
}

// Letter returns the single-letter suit code used in text records
func (s Suit) Letter() byte {
	return [...]byte{'C', 'D', 'H', 'S'}[s]
}

// ParseSuit parses a single-letter suit code (case insensitive)
func ParseSuit(b byte) (Suit, error) {
	switch b {
	case 'C', 'c':
		return Clubs, nil
	case 'D', 'd':
		return Diamonds, nil
	case 'H', 'h':
		return Hearts, nil
	case 'S', 's':
		return Spades, nil
	}
	return 0, fmt.Errorf("invalid suit %q", string(b))
}

// Rank is a card rank, Two (2) through Ace (14). The zero value is invalid.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank character ("2".."9", "T", "J", "Q", "K", "A")
func (r Rank) String() string {
	return [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"}[r-Two]
}

// ParseRank parses a rank character (case insensitive, "T" or "10" style not
// supported: ten is always "T")
func ParseRank(b byte) (Rank, error) {
	switch {
	case b >= '2' && b <= '9':
		return Rank(b - '0'), nil
	case b == 'T' || b == 't':
		return Ten, nil
	case b == 'J' || b == 'j':
		return Jack, nil
	case b == 'Q' || b == 'q':
		return Queen, nil
	case b == 'K' || b == 'k':
		return King, nil
	case b == 'A' || b == 'a':
		return Ace, nil
	}
	return 0, fmt.Errorf("invalid rank %q", string(b))
}

// Card is a single playing card. Cards are comparable values.
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns the card as suit symbol plus rank, e.g. "♠A"
func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// Code returns the two-letter text form used in records, e.g. "SA"
func (c Card) Code() string {
	return string(c.Suit.Letter()) + c.Rank.String()
}

// ParseCard parses the two-character text form, suit letter first ("SA", "h7")
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	suit, err := ParseSuit(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	rank, err := ParseRank(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

func parseRanks(s string) ([]Rank, error) {
	ranks := make([]Rank, 0, len(s))
	for i := 0; i < len(s); i++ {
		r, err := ParseRank(s[i])
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

func formatRanks(ranks []Rank) string {
	var sb strings.Builder
	for _, r := range ranks {
		sb.WriteString(r.String())
	}
	return sb.String()
}
