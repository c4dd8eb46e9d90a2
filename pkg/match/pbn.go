package match

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/bridgeengine/internal/auction"
	"github.com/yourusername/bridgeengine/internal/cards"
)

// PBN subset. Example:
//
//  [Event "Club evening"]
//  [Site "Local"]
//  [Board "1"]
//  [Dealer "N"]
//  [Vulnerable "None"]
//  [Deal "N:AKJ92.K84.QT9.74 Q4.QJT92.K3.QJ52 T73.A3.A8542.K93 865.765.J76.AT86"]
//  [Auction "N"]
//  1S Pass Pass Pass
//
// Call tokens after an [Auction] tag run until the next tag or blank line.

var (
	tagRE     = regexp.MustCompile(`^\[(\w+)\s+"([^"]*)"\]`)
	commentRE = regexp.MustCompile(`^[;%]`)
)

// ImportPBN reads a record from PBN text.
func ImportPBN(r io.Reader) (*Record, error) {
	scanner := bufio.NewScanner(r)
	record := &Record{}

	var current *Board
	inAuction := false

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validateBoard(current); err != nil {
			return err
		}
		record.Boards = append(record.Boards, current)
		current = nil
		return nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || commentRE.MatchString(line) {
			inAuction = false
			continue
		}

		if m := tagRE.FindStringSubmatch(line); m != nil {
			inAuction = false
			tag, value := m[1], m[2]

			switch tag {
			case "Event":
				record.Event = value
				continue
			case "Site":
				record.Site = value
				continue
			case "Board":
				if err := flush(); err != nil {
					return nil, err
				}
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad board number %q", lineNo, value)
				}
				current = &Board{Number: n}
				continue
			}

			if current == nil {
				// Tags we do not track, outside any board.
				continue
			}

			switch tag {
			case "Dealer":
				seat, err := cards.ParseSeat(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				current.Dealer = seat
			case "Vulnerable":
				vul, err := auction.ParseVulnerability(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				current.Vulnerability = vul
			case "Deal":
				deal, err := cards.ParseDeal(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				current.Deal = deal
			case "Auction":
				seat, err := cards.ParseSeat(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if seat != current.Dealer {
					return nil, fmt.Errorf("line %d: auction starts at %s, dealer is %s", lineNo, seat, current.Dealer)
				}
				inAuction = true
			}
			continue
		}

		if inAuction && current != nil {
			for _, token := range strings.Fields(line) {
				c, err := auction.ParseCall(token)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				current.Calls = append(current.Calls, c)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(record.Boards) == 0 {
		return nil, fmt.Errorf("no boards found")
	}
	return record, nil
}

func validateBoard(b *Board) error {
	if b.Deal == (cards.Deal{}) {
		return fmt.Errorf("board %d: missing deal", b.Number)
	}
	if len(b.Calls) > 0 {
		if _, err := b.Auction(); err != nil {
			return err
		}
	}
	return nil
}

// ExportPBN writes the record as PBN text.
func ExportPBN(w io.Writer, record *Record) error {
	if record.Event != "" {
		fmt.Fprintf(w, "[Event %q]\n", record.Event)
	}
	if record.Site != "" {
		fmt.Fprintf(w, "[Site %q]\n", record.Site)
	}
	if record.Event != "" || record.Site != "" {
		fmt.Fprintln(w)
	}

	for i, b := range record.Boards {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[Board \"%d\"]\n", b.Number)
		fmt.Fprintf(w, "[Dealer %q]\n", string(b.Dealer.Letter()))
		fmt.Fprintf(w, "[Vulnerable %q]\n", b.Vulnerability.String())
		fmt.Fprintf(w, "[Deal %q]\n", b.Deal.String())
		if len(b.Calls) == 0 {
			continue
		}
		fmt.Fprintf(w, "[Auction %q]\n", string(b.Dealer.Letter()))
		for j, c := range b.Calls {
			if j > 0 {
				if j%4 == 0 {
					fmt.Fprintln(w)
				} else {
					fmt.Fprint(w, " ")
				}
			}
			fmt.Fprint(w, c.Code())
		}
		fmt.Fprintln(w)
	}
	return nil
}
