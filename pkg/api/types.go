package api

// BidRequest asks for the next call in an auction. Hand is the mover's
// thirteen cards in suit-dot notation ("AKQ2.T98.76.5432"); Calls are the
// calls already made, from the dealer onward.
type BidRequest struct {
	Hand   string   `json:"hand"`
	Dealer string   `json:"dealer"`
	Calls  []string `json:"calls"`
}

// BidResponse is the engine's suggested call.
type BidResponse struct {
	Call       string `json:"call"`
	Rationale  string `json:"rationale"`
	Convention string `json:"convention,omitempty"`
}

// PlayRequest asks for the next card. The request is stateless: the server
// reconstructs the position from the deal, the auction, and the cards
// already played in play order.
type PlayRequest struct {
	Deal       string   `json:"deal"`
	Dealer     string   `json:"dealer"`
	Calls      []string `json:"calls"`
	Played     []string `json:"played"`
	Difficulty string   `json:"difficulty,omitempty"`
}

// PlayResponse is the engine's chosen card.
type PlayResponse struct {
	Card   string `json:"card"`
	Seat   string `json:"seat"`
	Source string `json:"source"`
}

// ContractRequest resolves a finished auction.
type ContractRequest struct {
	Dealer string   `json:"dealer"`
	Calls  []string `json:"calls"`
}

// ContractResponse describes the resolved contract. PassedOut is true and
// the other fields empty when no one bid.
type ContractResponse struct {
	PassedOut bool   `json:"passed_out"`
	Contract  string `json:"contract,omitempty"`
	Declarer  string `json:"declarer,omitempty"`
	Level     int    `json:"level,omitempty"`
	Strain    string `json:"strain,omitempty"`
	Doubling  string `json:"doubling,omitempty"`
}

// ScoreRequest scores a completed hand.
type ScoreRequest struct {
	Dealer     string   `json:"dealer"`
	Calls      []string `json:"calls"`
	Tricks     int      `json:"tricks"`
	Vulnerable bool     `json:"vulnerable"`
}

// ScoreResponse carries the duplicate score, signed toward the declaring
// side, plus the per-side settlement.
type ScoreResponse struct {
	Score          int `json:"score"`
	DeclarerPoints int `json:"declarer_points"`
	DefenderPoints int `json:"defender_points"`
}

// ReviewRequest asks the engine to judge a call that was actually made.
type ReviewRequest struct {
	Hand   string   `json:"hand"`
	Dealer string   `json:"dealer"`
	Calls  []string `json:"calls"`
	Played string   `json:"played"`
}

// ReviewResponse grades the played call against the engine's choice.
type ReviewResponse struct {
	Played    string `json:"played"`
	Suggested string `json:"suggested"`
	Rationale string `json:"rationale"`
	Distance  int    `json:"distance"`
	Agreement string `json:"agreement"`
	Forced    bool   `json:"forced"`
}

// HealthResponse reports server liveness and pool load.
type HealthResponse struct {
	Status string    `json:"status"`
	Pool   PoolStats `json:"pool"`
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details string `json:"details,omitempty"`
}
