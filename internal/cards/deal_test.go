package cards

import (
	"math/rand"
	"testing"
)

const sampleDeal = "N:AKQ2.T98.76.5432 J97.AKJ.T98.AK87 T863.Q2.AKJ4.QJ9 54.76543.Q532.T6"

func TestParseDeal(t *testing.T) {
	d, err := ParseDeal(sampleDeal)
	if err != nil {
		t.Fatalf("ParseDeal failed: %v", err)
	}

	for _, seat := range Seats {
		if d.Hand(seat).Len() != 13 {
			t.Errorf("%s holds %d cards, want 13", seat, d.Hand(seat).Len())
		}
	}
	if !d.Hand(North).Has(Card{Spades, Ace}) {
		t.Error("North should hold ♠A")
	}
	if !d.Hand(West).Has(Card{Clubs, Ten}) {
		t.Error("West should hold ♣T")
	}
}

func TestDealStringRoundTrip(t *testing.T) {
	d := MustParseDeal(sampleDeal)
	if d.String() != sampleDeal {
		t.Errorf("round-trip: got %q, want %q", d.String(), sampleDeal)
	}
}

func TestParseDealRotated(t *testing.T) {
	// Same board given starting from East: hands shift one seat clockwise.
	rotated := "E:J97.AKJ.T98.AK87 T863.Q2.AKJ4.QJ9 54.76543.Q532.T6 AKQ2.T98.76.5432"
	d, err := ParseDeal(rotated)
	if err != nil {
		t.Fatalf("ParseDeal failed: %v", err)
	}
	if d != MustParseDeal(sampleDeal) {
		t.Error("rotated deal should equal the North-first form")
	}
}

func TestParseDealInvalid(t *testing.T) {
	for _, s := range []string{
		"AKQ2.T98.76.5432 J97.AKJ.T98.AK87 T863.Q2.AKJ4.QJ9 54.76543.Q532.T6",
		"N:AKQ2.T98.76.5432 J97.AKJ.T98.AK87 T863.Q2.AKJ4.QJ9",
		"N:AKQ2.T98.76.5432 AKQ2.T98.76.5432 T863.Q2.AKJ4.QJ9 54.76543.Q532.T6",
	} {
		if _, err := ParseDeal(s); err == nil {
			t.Errorf("ParseDeal(%q) should fail", s)
		}
	}
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("deck has %d cards, want 52", len(deck))
	}

	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Errorf("duplicate card %v", c)
		}
		seen[c] = true
	}
}

func TestRandomDeal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := RandomDeal(rng)

	total := 0
	for _, seat := range Seats {
		total += d.Hand(seat).Len()
		if d.Hand(seat).Len() != 13 {
			t.Errorf("%s holds %d cards, want 13", seat, d.Hand(seat).Len())
		}
	}
	if total != 52 {
		t.Errorf("deal holds %d cards, want 52", total)
	}

	// Same seed, same deal.
	rng2 := rand.New(rand.NewSource(42))
	if RandomDeal(rng2) != d {
		t.Error("identical seeds should produce identical deals")
	}
}
