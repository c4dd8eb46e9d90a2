package play

import (
	"sort"

	"github.com/yourusername/bridgeengine/internal/cards"
)

const (
	scoreInf = 1 << 20
)

// Searcher runs depth-bounded alpha-beta over legal plays. It is safe for
// concurrent use; independent boards share only the cache.
type Searcher struct {
	cache *EvalCache
}

// NewSearcher creates a Searcher with the given cache, or a default-sized
// one when nil.
func NewSearcher(cache *EvalCache) *Searcher {
	if cache == nil {
		cache = NewEvalCache(DefaultCacheSize)
	}
	return &Searcher{cache: cache}
}

// Cache exposes the evaluation cache for statistics.
func (sr *Searcher) Cache() *EvalCache { return sr.cache }

// PlayWithEval is one candidate card with its searched score, from the
// mover's perspective.
type PlayWithEval struct {
	Card  cards.Card
	Score int
}

// BestCard picks a card for the seat to move by searching to the given
// depth. It fails only on a corrupted state.
func (sr *Searcher) BestCard(s State, depth int) (cards.Card, error) {
	ranked, err := sr.RankPlays(s, depth)
	if err != nil {
		return cards.Card{}, err
	}
	return ranked[0].Card, nil
}

// RankPlays evaluates every legal play to the given depth and returns them
// best first. Every seat maximizes its own side's score; the sign flips
// whenever the move passes to the other side, and only then, because the
// winner of a trick can hand consecutive cards to the same side.
func (sr *Searcher) RankPlays(s State, depth int) ([]PlayWithEval, error) {
	legal := s.LegalPlays()
	if len(legal) == 0 {
		return nil, ErrNoLegalCard
	}
	view := s.Turn().Side()

	// Every candidate gets the full window. Tightening alpha across the
	// loop would be faster but turns tail scores into bounds, and callers
	// display the whole ranking.
	ranked := make([]PlayWithEval, 0, len(legal))
	for _, c := range orderPlays(s, legal) {
		child, err := s.Play(c)
		if err != nil {
			return nil, err
		}
		score := sr.scoreChild(child, view, depth-1, -scoreInf, scoreInf)
		ranked = append(ranked, PlayWithEval{Card: c, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// scoreChild scores a successor state for the parent mover's side, keeping
// or flipping the alpha-beta window depending on whose turn it is.
func (sr *Searcher) scoreChild(child State, view cards.Side, depth, alpha, beta int) int {
	if child.Done() {
		return sr.evaluateCached(child, view)
	}
	if child.Turn().Side() == view {
		return sr.negamax(child, depth, alpha, beta)
	}
	return -sr.negamax(child, depth, -beta, -alpha)
}

// negamax returns the best achievable score for the side of the seat to
// move in s.
func (sr *Searcher) negamax(s State, depth, alpha, beta int) int {
	view := s.Turn().Side()
	if depth <= 0 {
		return sr.evaluateCached(s, view)
	}
	legal := s.LegalPlays()
	if len(legal) == 0 {
		// Corrupted state; score it statically rather than guess.
		return sr.evaluateCached(s, view)
	}

	best := -scoreInf
	for _, c := range orderPlays(s, legal) {
		child, err := s.Play(c)
		if err != nil {
			continue
		}
		score := sr.scoreChild(child, view, depth-1, alpha, beta)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evaluateCached is Evaluate behind the shared cache. Values are stored
// from the North-South view and negated for the other side.
func (sr *Searcher) evaluateCached(s State, view cards.Side) int {
	key := keyOf(s)
	value, slot := sr.cache.Lookup(key)
	if slot != cacheHit {
		value = int32(Evaluate(s, cards.NorthSouth))
		sr.cache.Add(key, value, slot)
	}
	if view == cards.NorthSouth {
		return int(value)
	}
	return -int(value)
}

// orderPlays sorts candidates to help pruning: when following suit, try
// high cards first; when discarding or leading, try low cards first.
func orderPlays(s State, legal []cards.Card) []cards.Card {
	out := append([]cards.Card(nil), legal...)
	lead, following := s.LeadSuit()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if following && a.Suit == lead && b.Suit == lead {
			return a.Rank > b.Rank
		}
		if a.Suit != b.Suit {
			return a.Suit < b.Suit
		}
		return a.Rank < b.Rank
	})
	return out
}
