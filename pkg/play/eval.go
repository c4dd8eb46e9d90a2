package play

import (
	"github.com/yourusername/bridgeengine/internal/cards"
)

// Evaluation weights. A won trick outweighs any positional term, and the
// discard penalties outweigh the entry bonus so the engine never throws an
// honor to preserve a notional entry.
const (
	wonTrickValue   = 100
	sureWinnerValue = 45
	masterBonus     = 20
	ruffableValue   = 12
	entryValue      = 8
)

// discardPenalty is indexed by rank offset from Two. Discarding an honor to
// a trick the side is losing wastes a trick later.
var discardPenalty = [13]int{
	0, 0, 0, 0, 0, 0, 0, 0, // 2..9
	15, // ten
	25, // jack
	35, // queen
	50, // king
	60, // ace
}

func rankHCP(r cards.Rank) int {
	if r < cards.Jack {
		return 0
	}
	return int(r-cards.Jack) + 1
}

// Evaluate scores the state for the given side. The score is symmetric:
// Evaluate(s, a) == -Evaluate(s, a.Other()).
func Evaluate(s State, view cards.Side) int {
	score := (s.Won[view] - s.Won[view.Other()]) * wonTrickValue

	remaining := remainingBySuit(s)
	for _, side := range []cards.Side{view, view.Other()} {
		sign := 1
		if side != view {
			sign = -1
		}
		score += sign * sideValue(s, side, remaining)
	}

	score += trickPenalties(s, view)
	return score
}

// remainingBySuit unions the four hands per suit.
func remainingBySuit(s State) [4]uint16 {
	var out [4]uint16
	for _, seat := range cards.Seats {
		h := s.Hands.Hand(seat)
		for i := range out {
			out[i] |= h[i]
		}
	}
	return out
}

// sideValue sums the positional terms for one partnership: length-weighted
// high cards, sure and master winners, and entries.
func sideValue(s State, side cards.Side, remaining [4]uint16) int {
	value := 0
	trumpsOut := opponentTrumps(s, side)

	for _, suit := range cards.Suits {
		held := s.Hands.Hand(seatOf(side, 0))[suit] | s.Hands.Hand(seatOf(side, 1))[suit]
		if held == 0 {
			continue
		}

		// High cards are worth more in long suits.
		length := 0
		hcp := 0
		for _, seat := range []cards.Seat{seatOf(side, 0), seatOf(side, 1)} {
			h := s.Hands.Hand(seat)
			length += h.SuitLength(suit)
			for _, r := range h.Ranks(suit) {
				hcp += rankHCP(r)
			}
		}
		value += hcp * (4 + length) / 4

		run := topRun(held, remaining[suit])
		if run > 0 {
			isTrump := s.Trump().IsSuit() && s.Trump().Suit() == suit
			switch {
			case isTrump || trumpsOut == 0:
				// Nothing can overruff these.
				value += run * (sureWinnerValue + masterBonus)
			case opponentVoid(s, side, suit):
				value += run * ruffableValue
			default:
				value += run * sureWinnerValue
			}
		}

		// Holding the top remaining card is an entry to this hand.
		if run > 0 {
			value += entryValue
		}
	}
	return value
}

// topRun counts the consecutive highest remaining cards of a suit that the
// side holds.
func topRun(held, remaining uint16) int {
	run := 0
	for bit := uint16(1 << 12); bit != 0; bit >>= 1 {
		if remaining&bit == 0 {
			continue
		}
		if held&bit == 0 {
			break
		}
		run++
	}
	return run
}

// opponentTrumps counts trumps still held against the side. In notrump it
// is always zero.
func opponentTrumps(s State, side cards.Side) int {
	if !s.Trump().IsSuit() {
		return 0
	}
	suit := s.Trump().Suit()
	other := side.Other()
	return s.Hands.Hand(seatOf(other, 0)).SuitLength(suit) +
		s.Hands.Hand(seatOf(other, 1)).SuitLength(suit)
}

// opponentVoid reports whether either opponent of the side is void in the
// suit and could ruff it.
func opponentVoid(s State, side cards.Side, suit cards.Suit) bool {
	other := side.Other()
	return !s.Hands.Hand(seatOf(other, 0)).HasSuit(suit) ||
		!s.Hands.Hand(seatOf(other, 1)).HasSuit(suit)
}

// seatOf returns the nth seat (0 or 1) of a side.
func seatOf(side cards.Side, n int) cards.Seat {
	if side == cards.NorthSouth {
		return [2]cards.Seat{cards.North, cards.South}[n]
	}
	return [2]cards.Seat{cards.East, cards.West}[n]
}

// trickPenalties charges each side for honors discarded to the current
// trick while not winning it. The penalty dominates the entry bonus: keeping
// a bare King as an "entry" while holding a worthless low card is exactly
// the mistake this term exists to prevent.
func trickPenalties(s State, view cards.Side) int {
	if s.played < 2 {
		return 0
	}
	lead := s.Trick[0].Card.Suit
	winning := trickWinnerSoFar(s)

	total := 0
	for _, tc := range s.Trick[1:s.played] {
		if tc.Card.Suit == lead {
			continue
		}
		if s.Trump().IsSuit() && tc.Card.Suit == s.Trump().Suit() {
			continue
		}
		if winning.Side() == tc.Seat.Side() {
			continue
		}
		p := discardPenalty[tc.Card.Rank-cards.Two]
		if tc.Seat.Side() == view {
			total -= p
		} else {
			total += p
		}
	}
	return total
}

// trickWinnerSoFar returns the seat currently winning the incomplete trick.
func trickWinnerSoFar(s State) cards.Seat {
	best := s.Trick[0]
	for _, tc := range s.Trick[1:s.played] {
		if beats(tc.Card, best.Card, s.Trick[0].Card.Suit, s.Trump()) {
			best = tc
		}
	}
	return best.Seat
}
