package solver

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/play"
)

// DefaultTimeout bounds one oracle round trip.
const DefaultTimeout = 3 * time.Second

// OracleOptions configures the external double-dummy adapter.
type OracleOptions struct {
	// Addr is the oracle's TCP address, e.g. "127.0.0.1:7300".
	Addr string

	// Timeout bounds a round trip; DefaultTimeout when zero.
	Timeout time.Duration

	// Clock drives the timeout; real when nil. Tests inject a mock.
	Clock quartz.Clock

	// Logger receives degradation warnings; discarded when nil.
	Logger *log.Logger

	// Dial overrides the TCP dialer, for tests.
	Dial func(ctx context.Context, addr string) (net.Conn, error)
}

// Oracle queries an external double-dummy solver over a line-oriented TCP
// protocol. One request per connection:
//
//	solve <deal> <trump> <leader> <trick>
//
// where <deal> is the four-hand text form, <trump> and <leader> are single
// letters, and <trick> lists the cards already played to the current trick
// ("-" when leading). The reply is "card <code>" or "error <message>".
//
// Every fault degrades to the fallback solver; Solve never fails because of
// the oracle.
type Oracle struct {
	addr     string
	timeout  time.Duration
	clock    quartz.Clock
	logger   *log.Logger
	dial     func(ctx context.Context, addr string) (net.Conn, error)
	fallback Solver
}

// NewOracle builds the adapter. The fallback is required: it is what makes
// the oracle safe to depend on.
func NewOracle(opts OracleOptions, fallback Solver) *Oracle {
	if fallback == nil {
		fallback = NewSearchSolver(nil, play.Expert.Depth())
	}
	o := &Oracle{
		addr:     opts.Addr,
		timeout:  opts.Timeout,
		clock:    opts.Clock,
		logger:   opts.Logger,
		dial:     opts.Dial,
		fallback: fallback,
	}
	if o.timeout <= 0 {
		o.timeout = DefaultTimeout
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}
	if o.dial == nil {
		o.dial = func(ctx context.Context, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "tcp", addr)
		}
	}
	return o
}

// Solve asks the oracle for the best card and falls back to search on any
// fault. The returned Source tells the caller which engine answered.
func (o *Oracle) Solve(ctx context.Context, s play.State) (cards.Card, Source, error) {
	c, err := o.query(ctx, s)
	if err != nil {
		o.logger.Warn("double-dummy oracle unavailable, using search",
			"addr", o.addr, "err", err)
		return o.fallback.Solve(ctx, s)
	}
	// The oracle's card still has to be one the seat may play.
	if _, err := s.Play(c); err != nil {
		o.logger.Warn("double-dummy oracle returned an illegal card, using search",
			"addr", o.addr, "card", c, "err", err)
		return o.fallback.Solve(ctx, s)
	}
	return c, SourceOracle, nil
}

func (o *Oracle) query(ctx context.Context, s play.State) (cards.Card, error) {
	timedOut := make(chan struct{})
	timer := o.clock.AfterFunc(o.timeout, func() { close(timedOut) })
	defer timer.Stop()

	conn, err := o.dial(ctx, o.addr)
	if err != nil {
		return cards.Card{}, fmt.Errorf("%w: dial: %v", ErrOracleUnavailable, err)
	}
	defer conn.Close()

	type reply struct {
		card cards.Card
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		c, err := roundTrip(conn, encodeRequest(s))
		done <- reply{card: c, err: err}
	}()

	select {
	case r := <-done:
		return r.card, r.err
	case <-timedOut:
		conn.Close()
		return cards.Card{}, fmt.Errorf("%w: no reply within %s", ErrOracleUnavailable, o.timeout)
	case <-ctx.Done():
		conn.Close()
		return cards.Card{}, ctx.Err()
	}
}

// encodeRequest formats the solve line for a state.
func encodeRequest(s play.State) string {
	trick := "-"
	if sofar := s.TrickSoFar(); len(sofar) > 0 {
		codes := make([]string, len(sofar))
		for i, tc := range sofar {
			codes[i] = tc.Card.Code()
		}
		trick = strings.Join(codes, ",")
	}
	return fmt.Sprintf("solve %s %c %c %s",
		s.Hands, s.Trump().Letter(), s.Leader.Letter(), trick)
}

// roundTrip writes one request line and parses the single reply line.
func roundTrip(conn net.Conn, request string) (cards.Card, error) {
	if _, err := fmt.Fprintf(conn, "%s\n", request); err != nil {
		return cards.Card{}, fmt.Errorf("%w: write: %v", ErrOracleUnavailable, err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return cards.Card{}, fmt.Errorf("%w: read: %v", ErrOracleUnavailable, err)
	}
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return cards.Card{}, fmt.Errorf("%w: empty reply", ErrOracleUnavailable)
	}

	switch fields[0] {
	case "card":
		if len(fields) != 2 {
			return cards.Card{}, fmt.Errorf("%w: malformed reply %q", ErrOracleUnavailable, line)
		}
		c, err := cards.ParseCard(fields[1])
		if err != nil {
			return cards.Card{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
		}
		return c, nil
	case "error":
		return cards.Card{}, fmt.Errorf("%w: oracle error: %s",
			ErrOracleUnavailable, strings.Join(fields[1:], " "))
	}
	return cards.Card{}, fmt.Errorf("%w: unexpected reply %q", ErrOracleUnavailable, line)
}
