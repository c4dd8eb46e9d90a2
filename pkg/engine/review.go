package engine

import (
	"fmt"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
)

// Agreement rates how far a played call sits from the engine's choice.
type Agreement int

const (
	AgreementBest       Agreement = iota // the engine's own call
	AgreementReasonable                  // close in level and strain
	AgreementDoubtful                    // questionable
	AgreementError                       // a different auction altogether
)

// String returns the display name of the agreement level.
func (a Agreement) String() string {
	return [...]string{"Best", "Reasonable", "Doubtful", "Error"}[a]
}

// Abbr returns the annotation notation ("", "", "?!", "?").
func (a Agreement) Abbr() string {
	return [...]string{"", "", "?!", "?"}[a]
}

// agreementThresholds are upper bounds on call distance per level.
var agreementThresholds = [3]int{0, 2, 5}

// ClassifyAgreement rates a call distance.
func ClassifyAgreement(distance int) Agreement {
	switch {
	case distance <= agreementThresholds[0]:
		return AgreementBest
	case distance <= agreementThresholds[1]:
		return AgreementReasonable
	case distance <= agreementThresholds[2]:
		return AgreementDoubtful
	}
	return AgreementError
}

// CallReview is the analysis of one played call against the engine's
// suggestion for the same position.
type CallReview struct {
	Played    auction.Call
	Suggested auction.Call
	Rationale string // why the engine would make its call
	Distance  int
	Agreement Agreement
	IsForced  bool // passing was the only legal action
}

// ReviewCall compares a played call with what the engine would have called
// from the same hand and auction. An illegal played call is an error; the
// caller's auction log should never contain one.
func (e *Engine) ReviewCall(hand cards.Hand, a auction.Auction, played auction.Call) (*CallReview, error) {
	if err := a.Legal(played); err != nil {
		return nil, fmt.Errorf("reviewing an illegal call %v: %w", played, err)
	}

	sug, err := e.NextBid(hand, a)
	if err != nil {
		return nil, err
	}

	review := &CallReview{
		Played:    played,
		Suggested: sug.Call,
		Rationale: sug.Rationale,
		Distance:  callDistance(played, sug.Call),
	}
	review.Agreement = ClassifyAgreement(review.Distance)

	// With the auction at the seven level there may be nothing left to
	// bid; agreeing to pass is not a skill signal.
	if played.Kind == auction.CallPass && onlyPassLegal(a) {
		review.IsForced = true
		review.Agreement = AgreementBest
		review.Distance = 0
	}
	return review, nil
}

// callDistance measures how far apart two calls are, in bid-rank steps.
// Calls of different kinds (a bid against a pass or double) are charged a
// base distance plus the bid's level, so passing instead of a cheap bid is
// closer than passing instead of a slam try.
func callDistance(a, b auction.Call) int {
	if a == b {
		return 0
	}
	if a.IsBid() && b.IsBid() {
		d := a.Bid.Value() - b.Bid.Value()
		if d < 0 {
			d = -d
		}
		return d
	}
	if !a.IsBid() && !b.IsBid() {
		return 2
	}
	bid := a
	if b.IsBid() {
		bid = b
	}
	return 2 + bid.Bid.Level
}

// onlyPassLegal reports whether no bid, double, or redouble is available.
func onlyPassLegal(a auction.Auction) bool {
	if a.Legal(auction.Double) == nil || a.Legal(auction.Redouble) == nil {
		return false
	}
	last, _, ok := a.LastBid()
	if !ok {
		return false
	}
	return last.Level == 7 && last.Strain == auction.StrainNoTrump
}
