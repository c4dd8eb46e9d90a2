package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yourusername/bridgeengine/pkg/engine"
	"github.com/yourusername/bridgeengine/pkg/play"
)

// SSESelfplayProgress is the "progress" event payload.
type SSESelfplayProgress struct {
	DealsCompleted int     `json:"deals_completed"`
	DealsTotal     int     `json:"deals_total"`
	Percent        float64 `json:"percent"`
}

// SSESelfplayResult is the "result" event payload.
type SSESelfplayResult struct {
	Deals         int     `json:"deals"`
	PassedOut     int     `json:"passed_out"`
	ContractsMade int     `json:"contracts_made"`
	ContractsSet  int     `json:"contracts_set"`
	MeanScore     float64 `json:"mean_score"`
	ScoreStdDev   float64 `json:"score_std_dev"`
	ScoreCI95     float64 `json:"score_ci95"`
}

// SelfplaySSE streams self-play progress over Server-Sent Events.
// GET /api/selfplay/stream?deals=...&seed=...&difficulty=...
func (h *Handlers) SelfplaySSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}

	query := r.URL.Query()
	deals := parseIntParam(query.Get("deals"), 32)
	seed := int64(parseIntParam(query.Get("seed"), 0))
	workers := parseIntParam(query.Get("workers"), 0)

	difficulty := play.Intermediate
	if s := query.Get("difficulty"); s != "" {
		d, ok := play.ParseDifficulty(s)
		if !ok {
			writeSSEError(w, "invalid difficulty: "+s)
			return
		}
		difficulty = d
	}

	// A long self-play run must not crowd out decision requests.
	if !h.pool.TryAcquireSlow() {
		writeSSEError(w, "self-play capacity exhausted, try again later")
		return
	}
	defer h.pool.ReleaseSlow()

	opts := engine.SelfplayOptions{
		Deals:      deals,
		Seed:       seed,
		Workers:    workers,
		Difficulty: difficulty,
		Progress: func(p engine.SelfplayProgress) {
			writeSSEEvent(w, "progress", SSESelfplayProgress{
				DealsCompleted: p.DealsCompleted,
				DealsTotal:     p.DealsTotal,
				Percent:        p.Percent,
			})
			flusher.Flush()
		},
	}

	result, err := h.engine.Selfplay(r.Context(), opts)
	if err != nil {
		writeSSEError(w, "self-play failed: "+err.Error())
		return
	}

	writeSSEEvent(w, "result", SSESelfplayResult{
		Deals:         result.Deals,
		PassedOut:     result.PassedOut,
		ContractsMade: result.ContractsMade,
		ContractsSet:  result.ContractsSet,
		MeanScore:     result.MeanScore,
		ScoreStdDev:   result.ScoreStdDev,
		ScoreCI95:     result.ScoreCI95,
	})
	flusher.Flush()

	writeSSEEvent(w, "done", nil)
	flusher.Flush()
}

// writeSSEEvent writes a Server-Sent Event to the response.
func writeSSEEvent(w http.ResponseWriter, event string, data any) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

// writeSSEError writes an error event and closes the stream.
func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// parseIntParam parses an integer from a string with a default value.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return defaultVal
	}
	return val
}
