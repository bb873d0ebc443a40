package engine

import "fmt"

// Position is a seat at the table. Seating order is north, east, south, west.
type Position int

const (
	North Position = iota
	East
	South
	West
)

// NumPositions is the fixed table size.
const NumPositions = 4

var positionNames = map[Position]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// Next returns the seat that plays after p.
func (p Position) Next() Position {
	return (p + 1) % NumPositions
}

// Valid reports whether p is one of the four seats.
func (p Position) Valid() bool {
	return p >= North && p <= West
}

// PositionFromString parses a seat name.
func PositionFromString(s string) (Position, error) {
	for p, name := range positionNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown position %q", s)
}

// Positions returns all seats in seating order.
func Positions() [NumPositions]Position {
	return [NumPositions]Position{North, East, South, West}
}
