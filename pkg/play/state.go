// Package play implements the card-play engine: the trick-by-trick play
// state, the evaluation function, and the alpha-beta search that picks a
// card for an AI seat.
package play

import (
	"errors"
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
)

// ErrNoLegalCard reports a corrupted state: the seat to move holds no cards
// although the hand is not over. Callers should abandon the board rather
// than guess.
var ErrNoLegalCard = errors.New("play: no legal card for seat to move")

// TrickCard is one card of the current trick, tagged with the seat that
// played it.
type TrickCard struct {
	Seat cards.Seat
	Card cards.Card
}

// State is the position between cards during the play of one board. It is a
// value type: Play returns a new State and never mutates the receiver, so a
// caller can keep any snapshot and replay from it.
type State struct {
	Hands    cards.Deal
	Contract auction.Contract

	// Leader led the current trick; Trick holds the cards played to it so
	// far in play order.
	Leader cards.Seat
	Trick  [4]TrickCard
	played int

	// Tricks won so far, indexed by cards.Side.
	Won [2]int
}

// NewState starts play of the given contract. The opening lead belongs to
// the seat left of declarer.
func NewState(deal cards.Deal, contract auction.Contract) State {
	return State{
		Hands:    deal,
		Contract: contract,
		Leader:   contract.Declarer.Next(),
	}
}

// Trump returns the contract strain.
func (s State) Trump() auction.Strain { return s.Contract.Bid.Strain }

// Dummy returns declarer's partner.
func (s State) Dummy() cards.Seat { return s.Contract.Declarer.Partner() }

// Turn returns the seat due to play the next card.
func (s State) Turn() cards.Seat {
	seat := s.Leader
	for i := 0; i < s.played; i++ {
		seat = seat.Next()
	}
	return seat
}

// TrickSoFar returns the cards of the current trick in play order.
func (s State) TrickSoFar() []TrickCard {
	return append([]TrickCard(nil), s.Trick[:s.played]...)
}

// TricksPlayed returns the number of completed tricks.
func (s State) TricksPlayed() int { return s.Won[0] + s.Won[1] }

// Done reports whether all thirteen tricks are complete.
func (s State) Done() bool { return s.TricksPlayed() == 13 }

// DeclarerTricks returns the tricks won by the declaring side.
func (s State) DeclarerTricks() int {
	return s.Won[s.Contract.Declarer.Side()]
}

// LeadSuit returns the suit led to the current trick. The second value is
// false between tricks.
func (s State) LeadSuit() (cards.Suit, bool) {
	if s.played == 0 {
		return 0, false
	}
	return s.Trick[0].Card.Suit, true
}

// LegalPlays returns the cards the seat to move may play: the led suit when
// the hand holds it, otherwise the whole hand. The slice is empty only on a
// corrupted state.
func (s State) LegalPlays() []cards.Card {
	hand := s.Hands.Hand(s.Turn())
	if lead, ok := s.LeadSuit(); ok && hand.HasSuit(lead) {
		var out []cards.Card
		for _, r := range hand.Ranks(lead) {
			out = append(out, cards.Card{Suit: lead, Rank: r})
		}
		return out
	}
	return hand.Cards()
}

// Play plays a card for the seat to move and returns the resulting state.
// The fourth card of a trick completes it: the winner is credited and leads
// the next trick.
func (s State) Play(c cards.Card) (State, error) {
	if s.Done() {
		return s, errors.New("play: board is complete")
	}
	seat := s.Turn()
	hand := s.Hands.Hand(seat)
	if hand.Empty() {
		return s, ErrNoLegalCard
	}
	if !hand.Has(c) {
		return s, fmt.Errorf("play: %s does not hold %s", seat, c)
	}
	if lead, ok := s.LeadSuit(); ok && c.Suit != lead && hand.HasSuit(lead) {
		return s, fmt.Errorf("play: %s must follow %s", seat, lead)
	}

	next := s
	next.Hands[seat] = hand.Without(c)
	next.Trick[next.played] = TrickCard{Seat: seat, Card: c}
	next.played++

	if next.played == 4 {
		winner := trickWinner(next.Trick, next.Trump())
		next.Won[winner.Side()]++
		next.Leader = winner
		next.Trick = [4]TrickCard{}
		next.played = 0
	}
	return next, nil
}

// MustPlay is Play for tests and fixtures with known-good cards.
func (s State) MustPlay(plays ...cards.Card) State {
	for _, c := range plays {
		next, err := s.Play(c)
		if err != nil {
			panic(err)
		}
		s = next
	}
	return s
}

// trickWinner returns the seat that won a completed trick: the highest
// trump if any was played, otherwise the highest card of the led suit.
func trickWinner(trick [4]TrickCard, trump auction.Strain) cards.Seat {
	best := trick[0]
	for _, tc := range trick[1:] {
		if beats(tc.Card, best.Card, trick[0].Card.Suit, trump) {
			best = tc
		}
	}
	return best.Seat
}

// beats reports whether card a beats card b given the led suit and trump.
func beats(a, b cards.Card, lead cards.Suit, trump auction.Strain) bool {
	if trump.IsSuit() {
		ts := trump.Suit()
		if a.Suit == ts && b.Suit != ts {
			return true
		}
		if a.Suit != ts && b.Suit == ts {
			return false
		}
	}
	if a.Suit != b.Suit {
		// Neither is trump; only the led suit can win.
		return a.Suit == lead && b.Suit != lead
	}
	return a.Rank > b.Rank
}
