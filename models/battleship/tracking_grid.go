package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

// TrackingGrid is a player's record of shots fired at the
// opponent. Each cell is written at most once.
type TrackingGrid struct {
	grid Grid
}

func NewTrackingGrid() *TrackingGrid {
	tg := &TrackingGrid{}
	tg.Initialize()
	return tg
}

func (tg *TrackingGrid) Initialize() {
	tg.grid.fill(PositionStateUnknown)
}

func (tg *TrackingGrid) AlreadyFiredAt(c Coordinates) bool {
	return tg.grid.At(c) != PositionStateUnknown
}

// Record must only be called on a cell that was never fired
// upon; callers check AlreadyFiredAt first.
func (tg *TrackingGrid) Record(c Coordinates, result HitResult) error {
	if tg.AlreadyFiredAt(c) {
		return cerr.ErrTrackingPositionRecorded(c.Row, c.Col)
	}

	if result == HitResultHit {
		tg.grid[c.Row][c.Col] = PositionStateHit
	} else {
		tg.grid[c.Row][c.Col] = PositionStateMiss
	}
	return nil
}

func (tg *TrackingGrid) Hits() int {
	return tg.grid.Count(PositionStateHit)
}

func (tg *TrackingGrid) Misses() int {
	return tg.grid.Count(PositionStateMiss)
}

func (tg *TrackingGrid) Snapshot() Grid {
	return tg.grid
}
