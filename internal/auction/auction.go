// Package auction implements the bidding side of the table: calls, the strict
// total order over bids, auction legality, contract resolution and duplicate
// scoring.
//
// An Auction is a value; Apply returns a new auction and never mutates the
// receiver, so callers can replay or branch freely.
package auction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/bridgeengine/internal/cards"
)

// Strain is what a bid names: one of the four suits or notrump. The numeric
// order is the bidding rank, clubs lowest, notrump highest.
type Strain uint8

const (
	StrainClubs Strain = iota
	StrainDiamonds
	StrainHearts
	StrainSpades
	StrainNoTrump
)

// Strains lists all strains in ascending bidding rank.
var Strains = [5]Strain{StrainClubs, StrainDiamonds, StrainHearts, StrainSpades, StrainNoTrump}

// String returns the strain symbol ("♣".."♠", "NT")
func (s Strain) String() string {
	if s == StrainNoTrump {
		return "NT"
	}
	return cards.Suit(s).String()
}

// Letter returns the strain code used in text records ("C", "D", "H", "S", "N")
func (s Strain) Letter() byte {
	return [...]byte{'C', 'D', 'H', 'S', 'N'}[s]
}

// IsSuit reports whether the strain is a real suit rather than notrump
func (s Strain) IsSuit() bool {
	return s < StrainNoTrump
}

// Suit returns the suit a suit strain names. Only valid when IsSuit is true.
func (s Strain) Suit() cards.Suit {
	return cards.Suit(s)
}

// SuitStrain converts a suit to its strain
func SuitStrain(s cards.Suit) Strain {
	return Strain(s)
}

// ParseStrain parses a strain code ("C", "D", "H", "S", "N" or "NT", case
// insensitive)
func ParseStrain(s string) (Strain, error) {
	switch strings.ToUpper(s) {
	case "C":
		return StrainClubs, nil
	case "D":
		return StrainDiamonds, nil
	case "H":
		return StrainHearts, nil
	case "S":
		return StrainSpades, nil
	case "N", "NT":
		return StrainNoTrump, nil
	}
	return 0, fmt.Errorf("invalid strain %q", s)
}

// Bid is a level-strain pair, level 1 through 7.
type Bid struct {
	Level  int
	Strain Strain
}

// Valid reports whether the level is in range
func (b Bid) Valid() bool {
	return b.Level >= 1 && b.Level <= 7
}

// Value maps the bid onto the strict total order: level first, then strain
// rank within the level. Thirty-five distinct values, 1♣ lowest, 7NT highest.
func (b Bid) Value() int {
	return (b.Level-1)*5 + int(b.Strain)
}

// Less reports whether b ranks strictly below other
func (b Bid) Less(other Bid) bool {
	return b.Value() < other.Value()
}

// String returns the bid in display form, e.g. "4♠" or "3NT"
func (b Bid) String() string {
	return fmt.Sprintf("%d%s", b.Level, b.Strain)
}

// CallKind distinguishes the four kinds of call.
type CallKind uint8

const (
	CallPass CallKind = iota
	CallDouble
	CallRedouble
	CallBid
)

// Call is one action in an auction: Pass, Double, Redouble or a bid.
type Call struct {
	Kind CallKind
	Bid  Bid // set only when Kind is CallBid
}

// The three fixed calls.
var (
	Pass     = Call{Kind: CallPass}
	Double   = Call{Kind: CallDouble}
	Redouble = Call{Kind: CallRedouble}
)

// BidCall builds a bid call
func BidCall(level int, strain Strain) Call {
	return Call{Kind: CallBid, Bid: Bid{Level: level, Strain: strain}}
}

// IsBid reports whether the call is a level-strain bid
func (c Call) IsBid() bool {
	return c.Kind == CallBid
}

// String returns the call in display form: "Pass", "X", "XX" or the bid
func (c Call) String() string {
	switch c.Kind {
	case CallPass:
		return "Pass"
	case CallDouble:
		return "X"
	case CallRedouble:
		return "XX"
	}
	return c.Bid.String()
}

// Code returns the call in record form, bids as level plus strain letter
// ("1S", "3N")
func (c Call) Code() string {
	if c.Kind != CallBid {
		return c.String()
	}
	return fmt.Sprintf("%d%c", c.Bid.Level, c.Bid.Strain.Letter())
}

// ParseCall parses the record form: "Pass"/"P", "X"/"Dbl", "XX"/"Rdbl", or a
// bid like "1S", "3NT", "4♠" (case insensitive)
func ParseCall(s string) (Call, error) {
	switch strings.ToUpper(s) {
	case "P", "PASS":
		return Pass, nil
	case "X", "DBL", "DOUBLE":
		return Double, nil
	case "XX", "RDBL", "REDOUBLE":
		return Redouble, nil
	}

	if len(s) < 2 {
		return Call{}, fmt.Errorf("invalid call %q", s)
	}
	level := int(s[0] - '0')
	if level < 1 || level > 7 {
		return Call{}, fmt.Errorf("invalid call %q: bad level", s)
	}
	strain, err := parseStrainToken(s[1:])
	if err != nil {
		return Call{}, fmt.Errorf("invalid call %q: %w", s, err)
	}
	return BidCall(level, strain), nil
}

func parseStrainToken(s string) (Strain, error) {
	switch s {
	case "♣":
		return StrainClubs, nil
	case "♦":
		return StrainDiamonds, nil
	case "♥":
		return StrainHearts, nil
	case "♠":
		return StrainSpades, nil
	}
	return ParseStrain(s)
}

// Errors reported by Apply and Result.
var (
	ErrAuctionFinished = errors.New("auction already finished")
	ErrAuctionOpen     = errors.New("auction not finished")
	ErrIllegalCall     = errors.New("illegal call")
)

// Auction is the ordered sequence of calls on one board, starting with the
// dealer and cycling clockwise.
type Auction struct {
	Dealer cards.Seat
	Calls  []Call
}

// New starts an empty auction with the given dealer
func New(dealer cards.Seat) Auction {
	return Auction{Dealer: dealer}
}

// Seat returns the seat that made (or will make) call number i
func (a Auction) Seat(i int) cards.Seat {
	return cards.Seat((int(a.Dealer) + i) % 4)
}

// Turn returns the seat due to call next
func (a Auction) Turn() cards.Seat {
	return a.Seat(len(a.Calls))
}

// Finished reports whether the auction is over: at least four calls with the
// last three all passes. This covers both a passed-out board and three
// passes closing out a bid.
func (a Auction) Finished() bool {
	n := len(a.Calls)
	if n < 4 {
		return false
	}
	for _, c := range a.Calls[n-3:] {
		if c.Kind != CallPass {
			return false
		}
	}
	return true
}

// PassedOut reports whether the auction finished with no bid at all
func (a Auction) PassedOut() bool {
	if !a.Finished() {
		return false
	}
	for _, c := range a.Calls {
		if c.Kind != CallPass {
			return false
		}
	}
	return true
}

// LastBid returns the most recent level-strain bid and the seat that made it
func (a Auction) LastBid() (Bid, cards.Seat, bool) {
	for i := len(a.Calls) - 1; i >= 0; i-- {
		if a.Calls[i].IsBid() {
			return a.Calls[i].Bid, a.Seat(i), true
		}
	}
	return Bid{}, 0, false
}

// lastNonPass returns the most recent call that was not a pass
func (a Auction) lastNonPass() (Call, cards.Seat, bool) {
	for i := len(a.Calls) - 1; i >= 0; i-- {
		if a.Calls[i].Kind != CallPass {
			return a.Calls[i], a.Seat(i), true
		}
	}
	return Call{}, 0, false
}

// Legal reports whether c may be called now. A nil return means legal.
//
// A bid must rank strictly above the last bid. Double requires the last
// non-pass call to be an opponent's bid; Redouble requires it to be an
// opponent's double. Pass is always legal while the auction is open.
func (a Auction) Legal(c Call) error {
	if a.Finished() {
		return ErrAuctionFinished
	}

	switch c.Kind {
	case CallPass:
		return nil

	case CallBid:
		if !c.Bid.Valid() {
			return fmt.Errorf("%w: bid %v out of range", ErrIllegalCall, c.Bid)
		}
		if last, _, ok := a.LastBid(); ok && !last.Less(c.Bid) {
			return fmt.Errorf("%w: %v does not beat %v", ErrIllegalCall, c.Bid, last)
		}
		return nil

	case CallDouble:
		last, seat, ok := a.lastNonPass()
		if !ok || !last.IsBid() {
			return fmt.Errorf("%w: double with no bid to double", ErrIllegalCall)
		}
		if seat.Side() == a.Turn().Side() {
			return fmt.Errorf("%w: cannot double own side", ErrIllegalCall)
		}
		return nil

	case CallRedouble:
		last, seat, ok := a.lastNonPass()
		if !ok || last.Kind != CallDouble {
			return fmt.Errorf("%w: redouble with no double", ErrIllegalCall)
		}
		if seat.Side() == a.Turn().Side() {
			return fmt.Errorf("%w: cannot redouble own side's double", ErrIllegalCall)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown call kind %d", ErrIllegalCall, c.Kind)
}

// Apply returns a new auction with c appended. The receiver is unchanged.
func (a Auction) Apply(c Call) (Auction, error) {
	if err := a.Legal(c); err != nil {
		return a, err
	}
	calls := make([]Call, len(a.Calls)+1)
	copy(calls, a.Calls)
	calls[len(a.Calls)] = c
	return Auction{Dealer: a.Dealer, Calls: calls}, nil
}

// MustApply is Apply that panics on error, for fixed test auctions
func (a Auction) MustApply(calls ...Call) Auction {
	for _, c := range calls {
		next, err := a.Apply(c)
		if err != nil {
			panic(err)
		}
		a = next
	}
	return a
}

// Opener returns the seat that made the first bid of the auction
func (a Auction) Opener() (cards.Seat, bool) {
	for i, c := range a.Calls {
		if c.IsBid() {
			return a.Seat(i), true
		}
	}
	return 0, false
}

// Contested reports whether both sides have made non-pass calls
func (a Auction) Contested() bool {
	var acted [2]bool
	for i, c := range a.Calls {
		if c.Kind != CallPass {
			acted[a.Seat(i).Side()] = true
		}
	}
	return acted[cards.NorthSouth] && acted[cards.EastWest]
}

// LastNonPassBy returns seat's most recent non-pass call
func (a Auction) LastNonPassBy(seat cards.Seat) (Call, bool) {
	for i := len(a.Calls) - 1; i >= 0; i-- {
		if a.Seat(i) == seat && a.Calls[i].Kind != CallPass {
			return a.Calls[i], true
		}
	}
	return Call{}, false
}

// LastBidBy returns seat's most recent level-strain bid
func (a Auction) LastBidBy(seat cards.Seat) (Bid, bool) {
	for i := len(a.Calls) - 1; i >= 0; i-- {
		if a.Seat(i) == seat && a.Calls[i].IsBid() {
			return a.Calls[i].Bid, true
		}
	}
	return Bid{}, false
}

// BidsBy returns every level-strain bid seat has made, oldest first
func (a Auction) BidsBy(seat cards.Seat) []Bid {
	var bids []Bid
	for i, c := range a.Calls {
		if a.Seat(i) == seat && c.IsBid() {
			bids = append(bids, c.Bid)
		}
	}
	return bids
}

// CallsBy returns how many calls seat has made so far
func (a Auction) CallsBy(seat cards.Seat) int {
	n := 0
	for i := range a.Calls {
		if a.Seat(i) == seat {
			n++
		}
	}
	return n
}

// Repair finds the lowest legal bid at or above b in the same strain. The
// second return is false when no such bid exists within two levels of the
// suggestion; escalating further is judged worse than passing.
func (a Auction) Repair(b Bid) (Bid, bool) {
	if !b.Valid() {
		return Bid{}, false
	}
	for level := b.Level; level <= 7; level++ {
		candidate := Bid{Level: level, Strain: b.Strain}
		if a.Legal(Call{Kind: CallBid, Bid: candidate}) == nil {
			if level-b.Level > 2 {
				return Bid{}, false
			}
			return candidate, true
		}
	}
	return Bid{}, false
}

// String renders the calls in order, space separated
func (a Auction) String() string {
	parts := make([]string, len(a.Calls))
	for i, c := range a.Calls {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
