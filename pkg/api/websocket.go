package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/play"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "bid", "play", "review", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string `json:"type"`              // Response type: "result", "error", "pong"
	ID      string `json:"id,omitempty"`      // Request ID
	Payload any    `json:"payload,omitempty"` // Response data
	Error   string `json:"error,omitempty"`   // Error message if any
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
}

// WebSocket handles WebSocket connections for interactive table clients.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	client := &WSClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "bid":
		c.handleBid(msg)
	case "play":
		c.handlePlay(msg)
	case "review":
		c.handleReview(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func (c *WSClient) handleBid(msg WSMessage) {
	var req BidRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	hand, err := cards.ParseHand(req.Hand)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid hand"}
		return
	}
	a, err := parseAuction(req.Dealer, req.Calls)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid auction"}
		return
	}
	sug, err := c.handlers.engine.NextBid(hand, a)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "bid failed"}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: BidResponse{
		Call: sug.Call.Code(), Rationale: sug.Rationale, Convention: sug.Convention,
	}}
}

func (c *WSClient) handlePlay(msg WSMessage) {
	var req PlayRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	difficulty := play.Advanced
	if req.Difficulty != "" {
		d, ok := play.ParseDifficulty(req.Difficulty)
		if !ok {
			c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid difficulty"}
			return
		}
		difficulty = d
	}
	s, err := buildPlayState(req)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}
	if s.Done() {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "board is complete"}
		return
	}

	seat := s.Turn()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	decision, err := c.handlers.engine.NextCard(ctx, s, difficulty)
	cancel()
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "play failed"}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: PlayResponse{
		Card: decision.Card.Code(), Seat: string(seat.Letter()), Source: decision.Source.String(),
	}}
}

func (c *WSClient) handleReview(msg WSMessage) {
	var req ReviewRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	hand, err := cards.ParseHand(req.Hand)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid hand"}
		return
	}
	a, err := parseAuction(req.Dealer, req.Calls)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid auction"}
		return
	}
	played, err := auction.ParseCall(req.Played)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid call"}
		return
	}
	review, err := c.handlers.engine.ReviewCall(hand, a, played)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "review failed"}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: ReviewResponse{
		Played:    review.Played.Code(),
		Suggested: review.Suggested.Code(),
		Rationale: review.Rationale,
		Distance:  review.Distance,
		Agreement: review.Agreement.String(),
		Forced:    review.IsForced,
	}}
}
