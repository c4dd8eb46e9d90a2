// Package match reads and writes board records in a PBN subset: the Event,
// Site, Board, Dealer, Vulnerable, Deal and Auction tags plus auction call
// lines. It is a text exchange format for deals and auctions, not a storage
// schema.
package match

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
)

// Board is one recorded deal, optionally with its auction.
type Board struct {
	Number        int
	Dealer        cards.Seat
	Vulnerability auction.Vulnerability
	Deal          cards.Deal
	Calls         []auction.Call
}

// Record is a set of boards from one session.
type Record struct {
	Event  string
	Site   string
	Boards []*Board
}

// NewRecord creates an empty record.
func NewRecord(event, site string) *Record {
	return &Record{Event: event, Site: site}
}

// Auction replays the board's calls from the dealer. It fails if the
// recorded sequence contains an illegal call.
func (b *Board) Auction() (auction.Auction, error) {
	a := auction.New(b.Dealer)
	for i, c := range b.Calls {
		next, err := a.Apply(c)
		if err != nil {
			return auction.Auction{}, fmt.Errorf("board %d call %d (%s): %w", b.Number, i, c, err)
		}
		a = next
	}
	return a, nil
}

// Contract resolves the recorded auction. It returns (nil, nil) for a
// passed-out board and an error when the auction is absent or unfinished.
func (b *Board) Contract() (*auction.Contract, error) {
	a, err := b.Auction()
	if err != nil {
		return nil, err
	}
	return a.Result()
}
