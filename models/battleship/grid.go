package battleship

import (
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

const GridSize int = 10

const (
	ValidLowerBound = 0
	ValidUpperBound = GridSize - 1
)

type PositionState uint8

const (
	// Default of a tracking grid; never fired upon
	PositionStateUnknown PositionState = iota
	PositionStateWater
	PositionStateShip
	PositionStateHit
	PositionStateMiss
)

// Canonical display symbols. Unfired tracking cells
// show as water.
const (
	SymbolWater rune = '~'
	SymbolShip  rune = 'S'
	SymbolHit   rune = '*'
	SymbolMiss  rune = '!'
)

func (ps PositionState) Symbol() rune {
	switch ps {
	case PositionStateShip:
		return SymbolShip
	case PositionStateHit:
		return SymbolHit
	case PositionStateMiss:
		return SymbolMiss
	default:
		return SymbolWater
	}
}

func (ps PositionState) String() string {
	switch ps {
	case PositionStateUnknown:
		return "unknown"
	case PositionStateWater:
		return "water"
	case PositionStateShip:
		return "ship"
	case PositionStateHit:
		return "hit"
	case PositionStateMiss:
		return "miss"
	default:
		return "invalid"
	}
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

func InBounds(row, col int) bool {
	return row >= ValidLowerBound && row <= ValidUpperBound && col >= ValidLowerBound && col <= ValidUpperBound
}

func (c Coordinates) InBounds() bool {
	return InBounds(c.Row, c.Col)
}

// Renders the coordinates the way players type them, e.g. A5, J10.
func (c Coordinates) String() string {
	if !c.InBounds() {
		return "(" + strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col) + ")"
	}
	return string(rune('A'+c.Row)) + strconv.Itoa(c.Col+1)
}

// ParseCoordinates turns text such as "a5" or "J10" into
// Coordinates. Row letter A..J, column 1..10.
func ParseCoordinates(raw string) (Coordinates, error) {
	text := strings.ToUpper(strings.TrimSpace(raw))
	if len(text) < 2 || len(text) > 3 {
		return Coordinates{}, cerr.ErrCoordinateMalformed(raw)
	}

	letter := text[0]
	if letter < 'A' || letter > 'Z' {
		return Coordinates{}, cerr.ErrCoordinateMalformed(raw)
	}

	digits := text[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Coordinates{}, cerr.ErrCoordinateMalformed(raw)
		}
	}
	// at most 3 chars, so at most two digits; Atoi cannot fail here
	col, _ := strconv.Atoi(digits)

	coords := NewCoordinates(int(letter-'A'), col-1)
	if !coords.InBounds() {
		return Coordinates{}, cerr.ErrCoordinateOutOfGrid(raw)
	}
	return coords, nil
}

func IsValidCoordinates(raw string) bool {
	_, err := ParseCoordinates(raw)
	return err == nil
}

// Grid is a value type so copying it gives a snapshot.
type Grid [GridSize][GridSize]PositionState

func NewGrid(initial PositionState) Grid {
	var grid Grid
	grid.fill(initial)
	return grid
}

func (g *Grid) fill(state PositionState) {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			g[row][col] = state
		}
	}
}

func (g Grid) At(c Coordinates) PositionState {
	return g[c.Row][c.Col]
}

func (g Grid) Count(state PositionState) int {
	var count int
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if g[row][col] == state {
				count++
			}
		}
	}
	return count
}

// Symbols returns one string per row using the canonical symbol table.
func (g Grid) Symbols() []string {
	rows := make([]string, GridSize)
	for row := 0; row < GridSize; row++ {
		var sb strings.Builder
		for col := 0; col < GridSize; col++ {
			sb.WriteRune(g[row][col].Symbol())
		}
		rows[row] = sb.String()
	}
	return rows
}
