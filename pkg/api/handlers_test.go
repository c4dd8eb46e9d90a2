package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/engine"
)

const testDeal = "N:AKJ92.K84.QT9.74 Q4.QJT92.K3.QJ52 T73.A3.A8542.K93 865.765.J76.AT86"

func newTestHandlers() *Handlers {
	e := engine.NewEngine(engine.EngineOptions{})
	pool := NewWorkerPool(DefaultPoolConfig())
	return NewHandlers(e, "test", pool, log.New(io.Discard))
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandlers()
	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	decodeResponse(t, rec, &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Pool.MaxFast != 100 {
		t.Errorf("pool max fast = %d, want 100", resp.Pool.MaxFast)
	}
}

func TestBidHandler(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Bid, BidRequest{
		Hand:   "AQ32.KJ4.KT9.Q74",
		Dealer: "N",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp BidResponse
	decodeResponse(t, rec, &resp)
	if resp.Call != "1N" {
		t.Errorf("call = %q, want 1N", resp.Call)
	}
	if resp.Rationale == "" {
		t.Error("missing rationale")
	}
}

func TestBidHandlerBadHand(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Bid, BidRequest{Hand: "AQ32.KJ4", Dealer: "N"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	decodeResponse(t, rec, &resp)
	if resp.Error == "" || resp.Code != http.StatusBadRequest {
		t.Errorf("error body = %+v", resp)
	}
}

func TestPlayHandler(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Play, PlayRequest{
		Deal:       testDeal,
		Dealer:     "N",
		Calls:      []string{"1S", "P", "P", "P"},
		Difficulty: "beginner",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp PlayResponse
	decodeResponse(t, rec, &resp)
	if resp.Seat != "E" {
		t.Errorf("seat = %q, want E (left of declarer)", resp.Seat)
	}
	card, err := cards.ParseCard(resp.Card)
	if err != nil {
		t.Fatalf("bad card %q: %v", resp.Card, err)
	}
	east := cards.MustParseDeal(testDeal).Hand(cards.East)
	if !east.Has(card) {
		t.Errorf("card %v is not in the mover's hand", card)
	}
	if resp.Source != "search" {
		t.Errorf("source = %q, want search", resp.Source)
	}
}

func TestPlayHandlerMidTrick(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Play, PlayRequest{
		Deal:       testDeal,
		Dealer:     "N",
		Calls:      []string{"1S", "P", "P", "P"},
		Played:     []string{"HQ"},
		Difficulty: "beginner",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp PlayResponse
	decodeResponse(t, rec, &resp)
	if resp.Seat != "S" {
		t.Errorf("seat = %q, want S", resp.Seat)
	}
}

func TestPlayHandlerPassedOut(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Play, PlayRequest{
		Deal:   testDeal,
		Dealer: "N",
		Calls:  []string{"P", "P", "P", "P"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlayHandlerBadDifficulty(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Play, PlayRequest{
		Deal:       testDeal,
		Dealer:     "N",
		Calls:      []string{"1S", "P", "P", "P"},
		Difficulty: "grandmaster",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestContractHandler(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Contract, ContractRequest{
		Dealer: "N",
		Calls:  []string{"1S", "P", "P", "P"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp ContractResponse
	decodeResponse(t, rec, &resp)
	if resp.PassedOut {
		t.Fatal("contract reported passed out")
	}
	if resp.Declarer != "N" || resp.Level != 1 || resp.Strain != "S" {
		t.Errorf("contract = %+v, want 1S by N", resp)
	}
	if resp.Doubling != "" {
		t.Errorf("doubling = %q, want empty", resp.Doubling)
	}
}

func TestContractHandlerPassedOut(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Contract, ContractRequest{
		Dealer: "N",
		Calls:  []string{"P", "P", "P", "P"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp ContractResponse
	decodeResponse(t, rec, &resp)
	if !resp.PassedOut {
		t.Error("expected passed_out")
	}
}

func TestContractHandlerUnfinished(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Contract, ContractRequest{
		Dealer: "N",
		Calls:  []string{"1S", "P"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestScoreHandler(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Score, ScoreRequest{
		Dealer: "N",
		Calls:  []string{"1S", "P", "P", "P"},
		Tricks: 9,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp ScoreResponse
	decodeResponse(t, rec, &resp)
	// 1S+2 nonvulnerable: 30+60 trick points plus the 50 partscore bonus.
	if resp.Score != 140 {
		t.Errorf("score = %d, want 140", resp.Score)
	}
	if resp.DeclarerPoints != 140 || resp.DefenderPoints != 0 {
		t.Errorf("settle = %d/%d, want 140/0", resp.DeclarerPoints, resp.DefenderPoints)
	}
}

func TestScoreHandlerBadTricks(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Score, ScoreRequest{
		Dealer: "N",
		Calls:  []string{"1S", "P", "P", "P"},
		Tricks: 14,
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReviewHandler(t *testing.T) {
	h := newTestHandlers()
	rec := postJSON(t, h.Review, ReviewRequest{
		Hand:   "AQ32.KJ4.KT9.Q74",
		Dealer: "N",
		Played: "P",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp ReviewResponse
	decodeResponse(t, rec, &resp)
	if resp.Suggested != "1N" {
		t.Errorf("suggested = %q, want 1N", resp.Suggested)
	}
	if resp.Played != "Pass" {
		t.Errorf("played = %q, want Pass", resp.Played)
	}
	if resp.Distance == 0 {
		t.Error("distance = 0 for pass against a notrump opening")
	}
	if resp.Agreement == "" {
		t.Error("missing agreement grade")
	}
}

func TestRoutesMethodNotAllowed(t *testing.T) {
	e := engine.NewEngine(engine.EngineOptions{})
	srv := NewServer(e, DefaultServerConfig(), "test", log.New(io.Discard))
	ts := httptest.NewServer(srv.setupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/bid")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/bid = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/health = %d, want 200", resp.StatusCode)
	}
}
