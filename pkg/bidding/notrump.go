package bidding

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/internal/features"
)

const staymanMinHCP = 8

var oneNoTrump = auction.Bid{Level: 1, Strain: auction.StrainNoTrump}

// openedOneNoTrump reports whether partner opened 1NT and has taken no other
// action, with the opponents silent. Both Stayman and the transfers require
// exactly this start.
func openedOneNoTrump(f *features.Features) bool {
	return f.Relationship == features.Partner &&
		f.OpeningBid == oneNoTrump &&
		f.PartnerLastCall == auction.BidCall(1, auction.StrainNoTrump) &&
		!f.Interference.Present
}

// stayman asks for a four-card major over partner's 1NT. It needs a
// four-card major of its own, invitational strength, and no five-card major
// (those transfer instead).
func (s *System) stayman(hand cards.Hand, f *features.Features) *Suggestion {
	if !openedOneNoTrump(f) {
		return nil
	}
	hearts, spades := f.SuitLengths[cards.Hearts], f.SuitLengths[cards.Spades]
	if hearts >= 5 || spades >= 5 {
		return nil
	}
	if (hearts != 4 && spades != 4) || f.HCP < staymanMinHCP {
		return nil
	}

	return &Suggestion{
		Call:       auction.BidCall(2, auction.StrainClubs),
		Rationale:  fmt.Sprintf("Stayman: %d HCP, asking for a four-card major.", f.HCP),
		Convention: "stayman",
	}
}

// jacobyTransfer transfers to a five-card major over partner's 1NT: 2♦
// shows hearts, 2♥ shows spades. Strength is irrelevant; weak hands pass
// the completed transfer, strong ones continue.
func (s *System) jacobyTransfer(hand cards.Hand, f *features.Features) *Suggestion {
	if !openedOneNoTrump(f) {
		return nil
	}

	hearts, spades := f.SuitLengths[cards.Hearts], f.SuitLengths[cards.Spades]
	if spades >= 5 && spades >= hearts {
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainHearts),
			Rationale:  fmt.Sprintf("Transfer: %d spades, partner will bid 2♠.", spades),
			Convention: "jacoby",
		}
	}
	if hearts >= 5 {
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainDiamonds),
			Rationale:  fmt.Sprintf("Transfer: %d hearts, partner will bid 2♥.", hearts),
			Convention: "jacoby",
		}
	}
	return nil
}

// staymanAnswer is the opener's reply to 2♣: a four-card major if there is
// one, hearts first, otherwise the 2♦ denial.
func (s *System) staymanAnswer(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Relationship != features.Self || f.OpeningBid != oneNoTrump {
		return nil
	}
	if f.PartnerLastCall != auction.BidCall(2, auction.StrainClubs) {
		return nil
	}

	switch {
	case f.SuitLengths[cards.Hearts] >= 4:
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainHearts),
			Rationale:  "Answering Stayman: four hearts.",
			Convention: "stayman",
		}
	case f.SuitLengths[cards.Spades] >= 4:
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainSpades),
			Rationale:  "Answering Stayman: four spades, no four hearts.",
			Convention: "stayman",
		}
	}
	return &Suggestion{
		Call:       auction.BidCall(2, auction.StrainDiamonds),
		Rationale:  "Answering Stayman: no four-card major.",
		Convention: "stayman",
	}
}

// completeTransfer is the opener's forced reply to a Jacoby transfer.
func (s *System) completeTransfer(hand cards.Hand, f *features.Features) *Suggestion {
	if f.Relationship != features.Self || f.OpeningBid != oneNoTrump {
		return nil
	}

	switch f.PartnerLastCall {
	case auction.BidCall(2, auction.StrainDiamonds):
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainHearts),
			Rationale:  "Completing the transfer: partner's 2♦ shows hearts.",
			Convention: "jacoby",
		}
	case auction.BidCall(2, auction.StrainHearts):
		return &Suggestion{
			Call:       auction.BidCall(2, auction.StrainSpades),
			Rationale:  "Completing the transfer: partner's 2♥ shows spades.",
			Convention: "jacoby",
		}
	}
	return nil
}
