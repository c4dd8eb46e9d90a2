package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/engine"
	"github.com/yourusername/bridgeengine/pkg/play"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	engine  *engine.Engine
	pool    *WorkerPool
	logger  *log.Logger
	version string
}

// NewHandlers creates the handler set.
func NewHandlers(e *engine.Engine, version string, pool *WorkerPool, logger *log.Logger) *Handlers {
	return &Handlers{
		engine:  e,
		pool:    pool,
		logger:  logger,
		version: version,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: status, Details: details})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// parseAuction rebuilds an auction from a dealer letter and a call list.
func parseAuction(dealer string, callCodes []string) (auction.Auction, error) {
	seat, err := cards.ParseSeat(dealer)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("dealer: %w", err)
	}
	a := auction.New(seat)
	for i, code := range callCodes {
		c, err := auction.ParseCall(code)
		if err != nil {
			return auction.Auction{}, fmt.Errorf("call %d: %w", i, err)
		}
		next, err := a.Apply(c)
		if err != nil {
			return auction.Auction{}, fmt.Errorf("call %d (%s): %w", i, code, err)
		}
		a = next
	}
	return a, nil
}

// buildPlayState rebuilds a play position from the deal, the auction, and
// the cards played so far in play order.
func buildPlayState(req PlayRequest) (play.State, error) {
	deal, err := cards.ParseDeal(req.Deal)
	if err != nil {
		return play.State{}, fmt.Errorf("deal: %w", err)
	}
	a, err := parseAuction(req.Dealer, req.Calls)
	if err != nil {
		return play.State{}, err
	}
	contract, err := a.Result()
	if err != nil {
		return play.State{}, err
	}
	if contract == nil {
		return play.State{}, fmt.Errorf("auction was passed out, nothing to play")
	}

	s := play.NewState(deal, *contract)
	for i, code := range req.Played {
		c, err := cards.ParseCard(code)
		if err != nil {
			return play.State{}, fmt.Errorf("played card %d: %w", i, err)
		}
		next, err := s.Play(c)
		if err != nil {
			return play.State{}, fmt.Errorf("played card %d (%s): %w", i, code, err)
		}
		s = next
	}
	return s, nil
}

// Health handles GET /api/health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Pool:   h.pool.Stats(),
	})
}

// Bid handles POST /api/bid.
func (h *Handlers) Bid(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.AcquireFast(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", err.Error())
		return
	}
	defer h.pool.ReleaseFast()

	var req BidRequest
	if !decodeBody(w, r, &req) {
		return
	}

	hand, err := cards.ParseHand(req.Hand)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid hand", err.Error())
		return
	}
	a, err := parseAuction(req.Dealer, req.Calls)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid auction", err.Error())
		return
	}

	sug, err := h.engine.NextBid(hand, a)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "bid failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, BidResponse{
		Call:       sug.Call.Code(),
		Rationale:  sug.Rationale,
		Convention: sug.Convention,
	})
}

// Play handles POST /api/play.
func (h *Handlers) Play(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.AcquireFast(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", err.Error())
		return
	}
	defer h.pool.ReleaseFast()

	var req PlayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	difficulty := play.Advanced
	if req.Difficulty != "" {
		d, ok := play.ParseDifficulty(req.Difficulty)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid difficulty", req.Difficulty)
			return
		}
		difficulty = d
	}

	s, err := buildPlayState(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid position", err.Error())
		return
	}
	if s.Done() {
		writeError(w, http.StatusUnprocessableEntity, "board is complete", "")
		return
	}

	seat := s.Turn()
	decision, err := h.engine.NextCard(r.Context(), s, difficulty)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "play failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, PlayResponse{
		Card:   decision.Card.Code(),
		Seat:   string(seat.Letter()),
		Source: decision.Source.String(),
	})
}

// Contract handles POST /api/contract.
func (h *Handlers) Contract(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.AcquireFast(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", err.Error())
		return
	}
	defer h.pool.ReleaseFast()

	var req ContractRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := parseAuction(req.Dealer, req.Calls)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid auction", err.Error())
		return
	}

	contract, err := h.engine.ResolveContract(a)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "auction not finished", err.Error())
		return
	}
	if contract == nil {
		writeJSON(w, http.StatusOK, ContractResponse{PassedOut: true})
		return
	}

	writeJSON(w, http.StatusOK, ContractResponse{
		Contract: contract.String(),
		Declarer: string(contract.Declarer.Letter()),
		Level:    contract.Bid.Level,
		Strain:   string(contract.Bid.Strain.Letter()),
		Doubling: contract.Doubling.String(),
	})
}

// Score handles POST /api/score.
func (h *Handlers) Score(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.AcquireFast(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", err.Error())
		return
	}
	defer h.pool.ReleaseFast()

	var req ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := parseAuction(req.Dealer, req.Calls)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid auction", err.Error())
		return
	}
	contract, err := h.engine.ResolveContract(a)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "auction not finished", err.Error())
		return
	}
	if contract == nil {
		writeError(w, http.StatusUnprocessableEntity, "auction was passed out", "")
		return
	}
	if req.Tricks < 0 || req.Tricks > 13 {
		writeError(w, http.StatusBadRequest, "invalid trick count", fmt.Sprintf("%d", req.Tricks))
		return
	}

	score := h.engine.ScoreHand(*contract, req.Tricks, req.Vulnerable)
	declarerPts, defenderPts := h.engine.Settle(score)

	writeJSON(w, http.StatusOK, ScoreResponse{
		Score:          score,
		DeclarerPoints: declarerPts,
		DefenderPoints: defenderPts,
	})
}

// Review handles POST /api/review.
func (h *Handlers) Review(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.AcquireFast(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", err.Error())
		return
	}
	defer h.pool.ReleaseFast()

	var req ReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	hand, err := cards.ParseHand(req.Hand)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid hand", err.Error())
		return
	}
	a, err := parseAuction(req.Dealer, req.Calls)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid auction", err.Error())
		return
	}
	played, err := auction.ParseCall(req.Played)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid call", err.Error())
		return
	}

	review, err := h.engine.ReviewCall(hand, a, played)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "review failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ReviewResponse{
		Played:    review.Played.Code(),
		Suggested: review.Suggested.Code(),
		Rationale: review.Rationale,
		Distance:  review.Distance,
		Agreement: review.Agreement.String(),
		Forced:    review.IsForced,
	})
}
