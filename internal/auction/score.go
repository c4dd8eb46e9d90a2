package auction

import (
	"fmt"
	"strings"

	"github.com/yourusername/bridgeengine/internal/cards"
)

// Vulnerability is the board's vulnerability assignment.
type Vulnerability uint8

const (
	VulNone Vulnerability = iota
	VulNS
	VulEW
	VulAll
)

// String returns the record form ("None", "NS", "EW", "All")
func (v Vulnerability) String() string {
	return [...]string{"None", "NS", "EW", "All"}[v]
}

// IsVulnerable reports whether side is vulnerable on this board
func (v Vulnerability) IsVulnerable(side cards.Side) bool {
	switch v {
	case VulAll:
		return true
	case VulNS:
		return side == cards.NorthSouth
	case VulEW:
		return side == cards.EastWest
	}
	return false
}

// ParseVulnerability parses the record form, accepting the common synonyms
// ("Love"/"-" for none, "Both" for all)
func ParseVulnerability(s string) (Vulnerability, error) {
	switch strings.ToUpper(s) {
	case "NONE", "LOVE", "-":
		return VulNone, nil
	case "NS", "N-S":
		return VulNS, nil
	case "EW", "E-W":
		return VulEW, nil
	case "ALL", "BOTH":
		return VulAll, nil
	}
	return 0, fmt.Errorf("invalid vulnerability %q", s)
}

// Duplicate scoring tables. Trick values are per odd trick by strain; the
// first notrump trick carries the extra ten.
var trickValue = [5]int{20, 20, 30, 30, 30}

const notrumpFirstTrickBonus = 10

// Bonuses by vulnerability (index 0 not vulnerable, 1 vulnerable).
var (
	gameBonus      = [2]int{300, 500}
	smallSlamBonus = [2]int{500, 750}
	grandSlamBonus = [2]int{1000, 1500}
	undertrickUnit = [2]int{50, 100}
)

const partScoreBonus = 50

// Score computes the duplicate score of a played-out contract, signed from
// the declaring side's perspective. tricksWon is the declaring side's trick
// total (0 through 13); vulnerable applies to the declaring side.
func Score(c Contract, tricksWon int, vulnerable bool) int {
	vul := 0
	if vulnerable {
		vul = 1
	}

	needed := c.TricksNeeded()
	if tricksWon < needed {
		return -undertrickPenalty(needed-tricksWon, c.Doubling, vul)
	}

	// Trick score for the odd tricks actually contracted for.
	trickScore := c.Bid.Level * trickValue[c.Bid.Strain]
	if c.Bid.Strain == StrainNoTrump {
		trickScore += notrumpFirstTrickBonus
	}
	switch c.Doubling {
	case Doubled:
		trickScore *= 2
	case Redoubled:
		trickScore *= 4
	}

	score := trickScore
	if trickScore >= 100 {
		score += gameBonus[vul]
	} else {
		score += partScoreBonus
	}
	switch c.Bid.Level {
	case 6:
		score += smallSlamBonus[vul]
	case 7:
		score += grandSlamBonus[vul]
	}

	// The insult for making a doubled contract.
	switch c.Doubling {
	case Doubled:
		score += 50
	case Redoubled:
		score += 100
	}

	over := tricksWon - needed
	switch c.Doubling {
	case NotDoubled:
		score += over * trickValue[c.Bid.Strain]
	case Doubled:
		score += over * 100 * (vul + 1)
	case Redoubled:
		score += over * 200 * (vul + 1)
	}

	return score
}

// undertrickPenalty returns the positive penalty for going down by down
// tricks. Doubled penalties step 100/200/200/300... not vulnerable and
// 200/300/300... vulnerable; redoubled is twice doubled.
func undertrickPenalty(down int, doubling Doubling, vul int) int {
	if doubling == NotDoubled {
		return down * undertrickUnit[vul]
	}

	total := 0
	for i := 1; i <= down; i++ {
		per := 300
		switch {
		case i == 1:
			per = 100 + 100*vul
		case i <= 3 && vul == 0:
			per = 200
		}
		total += per
	}
	if doubling == Redoubled {
		total *= 2
	}
	return total
}

// Settle converts a declarer-signed score into the points credited to each
// side. Exactly one side receives the positive amount: a negative declarer
// score belongs to the defenders, never to the declaring side's total.
func Settle(score int) (declarerPoints, defenderPoints int) {
	if score >= 0 {
		return score, 0
	}
	return 0, -score
}
