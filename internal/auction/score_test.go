package auction

import (
	"testing"

	"github.com/yourusername/bridgeengine/internal/cards"
)

func TestScoreMadeContracts(t *testing.T) {
	tests := []struct {
		name     string
		contract Contract
		tricks   int
		vul      bool
		expected int
	}{
		{"1NT making", Contract{Bid: Bid{1, StrainNoTrump}}, 7, false, 90},
		{"3NT making", Contract{Bid: Bid{3, StrainNoTrump}}, 9, false, 400},
		{"3NT vulnerable", Contract{Bid: Bid{3, StrainNoTrump}}, 9, true, 600},
		{"3NT with overtrick", Contract{Bid: Bid{3, StrainNoTrump}}, 10, false, 430},
		{"4♠ making", Contract{Bid: Bid{4, StrainSpades}}, 10, false, 420},
		{"4♠ vulnerable", Contract{Bid: Bid{4, StrainSpades}}, 10, true, 620},
		{"5♣ making", Contract{Bid: Bid{5, StrainClubs}}, 11, false, 400},
		{"2♠ part score", Contract{Bid: Bid{2, StrainSpades}}, 8, false, 110},
		{"2♦ with overtrick", Contract{Bid: Bid{2, StrainDiamonds}}, 9, false, 110},
		{"6NT vulnerable", Contract{Bid: Bid{6, StrainNoTrump}}, 12, true, 1440},
		{"7NT vulnerable", Contract{Bid: Bid{7, StrainNoTrump}}, 13, true, 2220},
		{"2♠X game via double", Contract{Bid: Bid{2, StrainSpades}, Doubling: Doubled}, 8, false, 470},
		{"1NTX with overtrick", Contract{Bid: Bid{1, StrainNoTrump}, Doubling: Doubled}, 8, false, 280},
		{"4♥XX making", Contract{Bid: Bid{4, StrainHearts}, Doubling: Redoubled}, 10, false, 880},
	}

	for _, tc := range tests {
		got := Score(tc.contract, tc.tricks, tc.vul)
		if got != tc.expected {
			t.Errorf("%s: Score = %d, want %d", tc.name, got, tc.expected)
		}
	}
}

func TestScoreUndertricks(t *testing.T) {
	tests := []struct {
		name     string
		contract Contract
		tricks   int
		vul      bool
		expected int
	}{
		{"3NT down 1", Contract{Bid: Bid{3, StrainNoTrump}}, 8, false, -50},
		{"3NT down 1 vulnerable", Contract{Bid: Bid{3, StrainNoTrump}}, 8, true, -100},
		{"4♠ down 3", Contract{Bid: Bid{4, StrainSpades}}, 7, false, -150},
		{"2♥X down 1", Contract{Bid: Bid{2, StrainHearts}, Doubling: Doubled}, 7, false, -100},
		{"2♥X down 3", Contract{Bid: Bid{2, StrainHearts}, Doubling: Doubled}, 5, false, -500},
		{"2♥X down 4", Contract{Bid: Bid{2, StrainHearts}, Doubling: Doubled}, 4, false, -800},
		{"2♥X down 2 vulnerable", Contract{Bid: Bid{2, StrainHearts}, Doubling: Doubled}, 6, true, -500},
		{"3♦XX down 1", Contract{Bid: Bid{3, StrainDiamonds}, Doubling: Redoubled}, 8, false, -200},
		{"3♦XX down 2 vulnerable", Contract{Bid: Bid{3, StrainDiamonds}, Doubling: Redoubled}, 7, true, -1000},
	}

	for _, tc := range tests {
		got := Score(tc.contract, tc.tricks, tc.vul)
		if got != tc.expected {
			t.Errorf("%s: Score = %d, want %d", tc.name, got, tc.expected)
		}
	}
}

func TestSettleCreditsTheBenefitingSide(t *testing.T) {
	// Down one undoubled: the 50 belongs to the defenders, the declaring
	// side records nothing.
	declarer, defenders := Settle(-50)
	if declarer != 0 || defenders != 50 {
		t.Errorf("Settle(-50) = (%d, %d), want (0, 50)", declarer, defenders)
	}

	declarer, defenders = Settle(420)
	if declarer != 420 || defenders != 0 {
		t.Errorf("Settle(420) = (%d, %d), want (420, 0)", declarer, defenders)
	}

	declarer, defenders = Settle(0)
	if declarer != 0 || defenders != 0 {
		t.Errorf("Settle(0) = (%d, %d), want (0, 0)", declarer, defenders)
	}
}

func TestVulnerability(t *testing.T) {
	if VulNone.IsVulnerable(cards.NorthSouth) || VulNone.IsVulnerable(cards.EastWest) {
		t.Error("VulNone should make nobody vulnerable")
	}
	if !VulNS.IsVulnerable(cards.NorthSouth) || VulNS.IsVulnerable(cards.EastWest) {
		t.Error("VulNS should make only North-South vulnerable")
	}
	if !VulAll.IsVulnerable(cards.NorthSouth) || !VulAll.IsVulnerable(cards.EastWest) {
		t.Error("VulAll should make both sides vulnerable")
	}

	for _, s := range []string{"None", "Love", "NS", "EW", "All", "Both"} {
		if _, err := ParseVulnerability(s); err != nil {
			t.Errorf("ParseVulnerability(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseVulnerability("NSEW"); err == nil {
		t.Error("ParseVulnerability should reject unknown forms")
	}
}
