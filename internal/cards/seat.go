package cards

import (
	"fmt"
	"strings"
)

// Seat is a position at the table. Play proceeds clockwise North, East,
// South, West.
type Seat uint8

const (
	North Seat = iota
	East
	South
	West
)

// Seats lists the seats in clockwise order starting from North.
var Seats = [4]Seat{North, East, South, West}

// String returns the full seat name
func (s Seat) String() string {
	return [...]string{"North", "East", "South", "West"}[s]
}

// Letter returns the single-letter seat code used in text records
func (s Seat) Letter() byte {
	return [...]byte{'N', 'E', 'S', 'W'}[s]
}

// Next returns the seat to the left (clockwise)
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Partner returns the seat across the table
func (s Seat) Partner() Seat {
	return (s + 2) % 4
}

// Side returns the partnership the seat belongs to
func (s Seat) Side() Side {
	return Side(s & 1)
}

// ParseSeat parses a seat from its letter or full name (case insensitive)
func ParseSeat(s string) (Seat, error) {
	switch strings.ToUpper(s) {
	case "N", "NORTH":
		return North, nil
	case "E", "EAST":
		return East, nil
	case "S", "SOUTH":
		return South, nil
	case "W", "WEST":
		return West, nil
	}
	return 0, fmt.Errorf("invalid seat %q", s)
}

// Side is one of the two partnerships.
type Side uint8

const (
	NorthSouth Side = iota
	EastWest
)

// String returns the conventional partnership abbreviation
func (s Side) String() string {
	return [...]string{"NS", "EW"}[s]
}

// Other returns the opposing partnership
func (s Side) Other() Side {
	return s ^ 1
}
