package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type HitResult uint8

const (
	HitResultMiss HitResult = iota
	HitResultHit
)

func (hr HitResult) String() string {
	if hr == HitResultHit {
		return "hit"
	}
	return "miss"
}

// Board is one player's own grid. Only shot resolution
// mutates it once play has started.
type Board struct {
	grid  Grid
	ships []Ship
}

func NewBoard() *Board {
	board := &Board{}
	board.Initialize()
	return board
}

// Initialize sets every cell to water and forgets placed ships.
func (b *Board) Initialize() {
	b.grid.fill(PositionStateWater)
	b.ships = b.ships[:0]
}

// CheckPlacement reports why a ship cannot go at origin, or nil.
// Bounds are checked before the grid is indexed.
func (b *Board) CheckPlacement(origin Coordinates, size int, orientation Orientation) error {
	if size < 1 {
		return cerr.ErrShipOutOfGridBound(origin.Row, origin.Col, size)
	}

	cells := NewShip(origin, size, orientation).Cells()
	for _, c := range cells {
		if !c.InBounds() {
			return cerr.ErrShipOutOfGridBound(origin.Row, origin.Col, size)
		}
	}
	for _, c := range cells {
		if b.grid.At(c) != PositionStateWater {
			return cerr.ErrShipOverlap(c.Row, c.Col)
		}
	}
	return nil
}

func (b *Board) CanPlace(origin Coordinates, size int, orientation Orientation) bool {
	return b.CheckPlacement(origin, size, orientation) == nil
}

// Place marks the ship cells. The board is left untouched
// when the placement does not hold.
func (b *Board) Place(origin Coordinates, size int, orientation Orientation) error {
	if err := b.CheckPlacement(origin, size, orientation); err != nil {
		return err
	}

	ship := NewShip(origin, size, orientation)
	for _, c := range ship.Cells() {
		b.grid[c.Row][c.Col] = PositionStateShip
	}
	b.ships = append(b.ships, ship)
	return nil
}

// ReceiveShot destroys the ship part at c, if any. Repeat
// attacks are the resolver's concern, not the board's.
func (b *Board) ReceiveShot(c Coordinates) HitResult {
	if !c.InBounds() {
		return HitResultMiss
	}
	if b.grid[c.Row][c.Col] != PositionStateShip {
		return HitResultMiss
	}

	b.grid[c.Row][c.Col] = PositionStateWater
	return HitResultHit
}

func (b *Board) IsFleetDestroyed() bool {
	return b.ShipCells() == 0
}

// ShipCells is the number of ship cells still afloat.
func (b *Board) ShipCells() int {
	return b.grid.Count(PositionStateShip)
}

func (b *Board) At(c Coordinates) PositionState {
	return b.grid.At(c)
}

// Ships returns the placement records, in placement order.
func (b *Board) Ships() []Ship {
	ships := make([]Ship, len(b.ships))
	copy(ships, b.ships)
	return ships
}

func (b *Board) Snapshot() Grid {
	return b.grid
}
