package auction

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/cards"
)

// Doubling is the doubled state of a contract.
type Doubling uint8

const (
	NotDoubled Doubling = iota
	Doubled
	Redoubled
)

// String returns the scoring suffix ("", "X", "XX")
func (d Doubling) String() string {
	return [...]string{"", "X", "XX"}[d]
}

// Contract is the outcome of an auction that contained at least one bid.
type Contract struct {
	Bid      Bid
	Declarer cards.Seat
	Doubling Doubling
}

// TricksNeeded returns the trick target for the declaring side (six plus the
// contract level)
func (c Contract) TricksNeeded() int {
	return c.Bid.Level + 6
}

// String returns e.g. "4♠X by North"
func (c Contract) String() string {
	return fmt.Sprintf("%s%s by %s", c.Bid, c.Doubling, c.Declarer)
}

// Result resolves the finished auction into a contract. A passed-out board
// yields (nil, nil). Resolving an open auction is an error.
//
// The declarer is not necessarily the seat that made the final bid: it is the
// seat on that side which named the final strain first. Doubles and redoubles
// change only the scoring, never who declares.
func (a Auction) Result() (*Contract, error) {
	if !a.Finished() {
		return nil, ErrAuctionOpen
	}
	if a.PassedOut() {
		return nil, nil
	}

	final, bidder, _ := a.LastBid()
	side := bidder.Side()

	declarer := bidder
	for i, c := range a.Calls {
		if c.IsBid() && c.Bid.Strain == final.Strain && a.Seat(i).Side() == side {
			declarer = a.Seat(i)
			break
		}
	}

	doubling := NotDoubled
	for i := len(a.Calls) - 1; i >= 0; i-- {
		c := a.Calls[i]
		if c.IsBid() {
			break
		}
		if c.Kind == CallRedouble {
			doubling = Redoubled
			break
		}
		if c.Kind == CallDouble {
			doubling = Doubled
			break
		}
	}

	return &Contract{Bid: final, Declarer: declarer, Doubling: doubling}, nil
}
