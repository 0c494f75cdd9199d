package xuanwei

import "fmt"

// Seat identifies one of the three fixed positions at the table
type Seat int

// seat constants. South hosts, East sits to the host's right, West to the left.
const (
	SeatSouth Seat = 0
	SeatWest  Seat = 1
	SeatEast  Seat = 2
)

// NumSeats is fixed by the rules: Xuanwei is a three-player game
const NumSeats = 3

const numSeats = NumSeats

// nextSeat is the fixed turn rotation: south, east, west, south.
// This is deliberately not ascending seat order.
var nextSeat = map[Seat]Seat{
	SeatSouth: SeatEast,
	SeatEast:  SeatWest,
	SeatWest:  SeatSouth,
}

// Next returns the seat that acts after s in the fixed rotation
func (s Seat) Next() Seat {
	return nextSeat[s]
}

// Valid returns true if the seat is one of the three table positions
func (s Seat) Valid() bool {
	return s >= 0 && s < numSeats
}

func (s Seat) String() string {
	switch s {
	case SeatSouth:
		return "south"
	case SeatWest:
		return "west"
	case SeatEast:
		return "east"
	}

	return fmt.Sprintf("seat(%d)", int(s))
}
