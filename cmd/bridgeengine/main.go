// Command bridgeengine is the command-line front end of the bridge engine:
// dealing, bidding, card play, contract resolution, scoring, call review
// and self-play.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
	"github.com/yourusername/bridgeengine/pkg/engine"
	"github.com/yourusername/bridgeengine/pkg/match"
	"github.com/yourusername/bridgeengine/pkg/play"
)

// version is set by ldflags during build
var version = "dev"

type Globals struct {
	Config  string `help:"Path to HCL config file" type:"path"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

type CLI struct {
	Globals
	Version kong.VersionFlag `short:"V" help:"Show version"`

	Deal     DealCmd     `cmd:"" help:"Deal random boards and print them as PBN"`
	Bid      BidCmd      `cmd:"" help:"Suggest the next call for a hand"`
	Play     PlayCmd     `cmd:"" help:"Choose the next card in a board"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve a finished auction into its contract"`
	Score    ScoreCmd    `cmd:"" help:"Score a played-out contract"`
	Review   ReviewCmd   `cmd:"" help:"Grade a call that was actually made"`
	Selfplay SelfplayCmd `cmd:"" help:"Bid and play random boards against itself"`
	Show     ShowCmd     `cmd:"" help:"Print the boards in a PBN file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bridgeengine"),
		kong.Description("Contract bridge bidding and card-play engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func newEngine(g *Globals) (*engine.Engine, error) {
	cfg, err := engine.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}
	logger := log.New(io.Discard)
	if g.Verbose {
		logger = log.New(os.Stderr)
		logger.SetLevel(log.DebugLevel)
	}
	return engine.NewEngine(engine.EngineOptions{Config: cfg, Logger: logger}), nil
}

func parseCalls(codes []string) ([]auction.Call, error) {
	calls := make([]auction.Call, 0, len(codes))
	for _, code := range codes {
		c, err := auction.ParseCall(code)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, nil
}

func buildAuction(dealer string, codes []string) (auction.Auction, error) {
	seat, err := cards.ParseSeat(dealer)
	if err != nil {
		return auction.Auction{}, err
	}
	calls, err := parseCalls(codes)
	if err != nil {
		return auction.Auction{}, err
	}
	a := auction.New(seat)
	for _, c := range calls {
		next, err := a.Apply(c)
		if err != nil {
			return auction.Auction{}, fmt.Errorf("call %s: %w", c, err)
		}
		a = next
	}
	return a, nil
}

func parseDifficulty(s string) (play.Difficulty, error) {
	d, ok := play.ParseDifficulty(s)
	if !ok {
		return 0, fmt.Errorf("unknown difficulty %q (beginner, intermediate, advanced, expert)", s)
	}
	return d, nil
}

type DealCmd struct {
	Boards int    `default:"4" help:"Number of boards to deal"`
	Seed   int64  `default:"0" help:"RNG seed (0 for random)"`
	Event  string `default:"bridgeengine deal" help:"Event tag for the PBN output"`
}

func (c *DealCmd) Run(g *Globals) error {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	record := match.NewRecord(c.Event, "")
	for i := 0; i < c.Boards; i++ {
		record.Boards = append(record.Boards, &match.Board{
			Number:        i + 1,
			Dealer:        cards.Seats[i%4],
			Vulnerability: auction.Vulnerability(i % 4),
			Deal:          cards.RandomDeal(rng),
		})
	}
	return match.ExportPBN(os.Stdout, record)
}

type BidCmd struct {
	Hand   string   `required:"" help:"Hand in suit-dot notation, e.g. AKJ92.K84.QT9.74"`
	Dealer string   `default:"N" help:"Dealer seat (N, E, S, W)"`
	Calls  []string `arg:"" optional:"" help:"Calls so far, from the dealer"`
}

func (c *BidCmd) Run(g *Globals) error {
	hand, err := cards.ParseHand(c.Hand)
	if err != nil {
		return err
	}
	a, err := buildAuction(c.Dealer, c.Calls)
	if err != nil {
		return err
	}

	e, err := newEngine(g)
	if err != nil {
		return err
	}
	sug, err := e.NextBid(hand, a)
	if err != nil {
		return err
	}

	fmt.Printf("%s bids %s\n", a.Turn(), sug.Call)
	fmt.Printf("  %s\n", sug.Rationale)
	if sug.Convention != "" {
		fmt.Printf("  convention: %s\n", sug.Convention)
	}
	return nil
}

type PlayCmd struct {
	Deal       string   `required:"" help:"Full deal, e.g. 'N:AKJ92.K84.QT9.74 ...'"`
	Dealer     string   `default:"N" help:"Dealer seat"`
	Calls      []string `required:"" help:"The complete auction, from the dealer"`
	Played     []string `help:"Cards already played, in play order (e.g. HQ,H2)"`
	Difficulty string   `default:"advanced" help:"beginner, intermediate, advanced or expert"`
	Rank       bool     `help:"Show every legal card with its evaluation"`
}

func (c *PlayCmd) Run(g *Globals) error {
	difficulty, err := parseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}
	deal, err := cards.ParseDeal(c.Deal)
	if err != nil {
		return err
	}
	a, err := buildAuction(c.Dealer, c.Calls)
	if err != nil {
		return err
	}
	contract, err := a.Result()
	if err != nil {
		return err
	}
	if contract == nil {
		return fmt.Errorf("auction was passed out, nothing to play")
	}

	s := play.NewState(deal, *contract)
	for _, code := range c.Played {
		card, err := cards.ParseCard(code)
		if err != nil {
			return err
		}
		if s, err = s.Play(card); err != nil {
			return fmt.Errorf("played card %s: %w", code, err)
		}
	}
	if s.Done() {
		return fmt.Errorf("board is complete")
	}

	e, err := newEngine(g)
	if err != nil {
		return err
	}

	if c.Rank {
		ranked, err := e.RankCards(s, difficulty)
		if err != nil {
			return err
		}
		fmt.Printf("%s in %s, %s to play:\n", contract, contract.Bid.Strain, s.Turn())
		for i, p := range ranked {
			fmt.Printf("  %d. %-3s  %+d\n", i+1, p.Card.Code(), p.Score)
		}
		return nil
	}

	start := time.Now()
	d, err := e.NextCard(context.Background(), s, difficulty)
	if err != nil {
		return err
	}
	fmt.Printf("%s plays %s (%s, %.2fs)\n", s.Turn(), d.Card, d.Source, time.Since(start).Seconds())
	return nil
}

type ResolveCmd struct {
	Dealer string   `default:"N" help:"Dealer seat"`
	Calls  []string `arg:"" help:"The complete auction, from the dealer"`
}

func (c *ResolveCmd) Run(g *Globals) error {
	a, err := buildAuction(c.Dealer, c.Calls)
	if err != nil {
		return err
	}
	e, err := newEngine(g)
	if err != nil {
		return err
	}
	contract, err := e.ResolveContract(a)
	if err != nil {
		return err
	}
	if contract == nil {
		fmt.Println("Passed out")
		return nil
	}
	fmt.Printf("%s (needs %d tricks)\n", contract, contract.TricksNeeded())
	return nil
}

type ScoreCmd struct {
	Dealer     string   `default:"N" help:"Dealer seat"`
	Calls      []string `required:"" help:"The complete auction, from the dealer"`
	Tricks     int      `required:"" help:"Tricks won by the declaring side"`
	Vulnerable bool     `help:"Declaring side is vulnerable"`
}

func (c *ScoreCmd) Run(g *Globals) error {
	if c.Tricks < 0 || c.Tricks > 13 {
		return fmt.Errorf("tricks must be 0 through 13")
	}
	a, err := buildAuction(c.Dealer, c.Calls)
	if err != nil {
		return err
	}
	e, err := newEngine(g)
	if err != nil {
		return err
	}
	contract, err := e.ResolveContract(a)
	if err != nil {
		return err
	}
	if contract == nil {
		fmt.Println("Passed out: 0")
		return nil
	}

	score := e.ScoreHand(*contract, c.Tricks, c.Vulnerable)
	declarerPts, defenderPts := e.Settle(score)
	fmt.Printf("%s, %d tricks: %+d\n", contract, c.Tricks, score)
	fmt.Printf("  declaring side %d, defending side %d\n", declarerPts, defenderPts)
	return nil
}

type ReviewCmd struct {
	Hand   string   `required:"" help:"The hand that made the call"`
	Dealer string   `default:"N" help:"Dealer seat"`
	Played string   `required:"" help:"The call that was actually made"`
	Calls  []string `arg:"" optional:"" help:"Calls before the played one, from the dealer"`
}

func (c *ReviewCmd) Run(g *Globals) error {
	hand, err := cards.ParseHand(c.Hand)
	if err != nil {
		return err
	}
	a, err := buildAuction(c.Dealer, c.Calls)
	if err != nil {
		return err
	}
	played, err := auction.ParseCall(c.Played)
	if err != nil {
		return err
	}

	e, err := newEngine(g)
	if err != nil {
		return err
	}
	review, err := e.ReviewCall(hand, a, played)
	if err != nil {
		return err
	}

	fmt.Printf("Played %s%s, engine would call %s\n", review.Played, review.Agreement.Abbr(), review.Suggested)
	fmt.Printf("  verdict: %s\n", review.Agreement)
	fmt.Printf("  %s\n", review.Rationale)
	return nil
}

type SelfplayCmd struct {
	Deals      int    `default:"32" help:"Boards to play"`
	Seed       int64  `default:"0" help:"RNG seed (0 for random)"`
	Workers    int    `default:"0" help:"Parallel workers (0 = auto)"`
	Difficulty string `default:"intermediate" help:"Card-play strength for all four seats"`
}

func (c *SelfplayCmd) Run(g *Globals) error {
	difficulty, err := parseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}
	e, err := newEngine(g)
	if err != nil {
		return err
	}

	opts := engine.SelfplayOptions{
		Deals:      c.Deals,
		Seed:       c.Seed,
		Workers:    c.Workers,
		Difficulty: difficulty,
	}
	if g.Verbose {
		opts.Progress = func(p engine.SelfplayProgress) {
			fmt.Fprintf(os.Stderr, "\r%d/%d boards (%.0f%%)", p.DealsCompleted, p.DealsTotal, p.Percent)
		}
	}

	start := time.Now()
	result, err := e.Selfplay(context.Background(), opts)
	if err != nil {
		return err
	}
	if g.Verbose {
		fmt.Fprintln(os.Stderr)
	}

	fmt.Printf("Self-play (%d boards, %.1fs):\n", result.Deals, time.Since(start).Seconds())
	fmt.Printf("  made %d, set %d, passed out %d\n", result.ContractsMade, result.ContractsSet, result.PassedOut)
	fmt.Printf("  NS score: %+.1f ± %.1f per board (95%% CI: ±%.1f)\n",
		result.MeanScore, result.ScoreStdDev, result.ScoreCI95)
	return nil
}

type ShowCmd struct {
	File string `arg:"" type:"existingfile" help:"PBN file to read"`
}

func (c *ShowCmd) Run(g *Globals) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	record, err := match.ImportPBN(f)
	if err != nil {
		return err
	}

	if record.Event != "" {
		fmt.Printf("%s\n\n", record.Event)
	}
	for _, b := range record.Boards {
		fmt.Printf("Board %d  dealer %s  vul %s\n", b.Number, b.Dealer, b.Vulnerability)
		for _, seat := range cards.Seats {
			fmt.Printf("  %-5s %s\n", seat, b.Deal.Hand(seat))
		}
		if len(b.Calls) == 0 {
			fmt.Println()
			continue
		}
		contract, err := b.Contract()
		switch {
		case err != nil:
			fmt.Printf("  auction unfinished\n\n")
		case contract == nil:
			fmt.Printf("  passed out\n\n")
		default:
			fmt.Printf("  %s\n\n", contract)
		}
	}
	return nil
}
