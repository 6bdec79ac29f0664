package error

import (
	"errors"
	"fmt"
)

// Error kinds. Every constructor below wraps one of these
// so callers can branch with errors.Is.
var (
	ErrInvalidCoordinate    = errors.New("invalid coordinate")
	ErrOutOfBoundsPlacement = errors.New("ship placement out of grid bound")
	ErrOverlapPlacement     = errors.New("ship placement overlaps another ship")
	ErrAlreadyAttacked      = errors.New("position already attacked")

	ErrPositionAlreadyRecorded = errors.New("tracking position already recorded")
	ErrFleetUnplaceable        = errors.New("fleet cannot be placed on grid")
	ErrInvalidFleet            = errors.New("invalid fleet")
	ErrInvalidOrientation      = errors.New("invalid orientation")
	ErrShipSizeMismatch        = errors.New("ship size mismatch")
	ErrGameNotInProgress       = errors.New("game is not in progress")
	ErrGameNotFound            = errors.New("game not found")
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("%w: game with this uuid does not exist, uuid: %s", ErrGameNotFound, gameUuid)
}

func ErrCoordinateMalformed(raw string) error {
	return fmt.Errorf("%w: malformed input %q, expected a row letter and a column number (e.g. A5)", ErrInvalidCoordinate, raw)
}

func ErrCoordinateOutOfGrid(raw string) error {
	return fmt.Errorf("%w: %q is out of game grid bound", ErrInvalidCoordinate, raw)
}

func ErrShipOutOfGridBound(row, col, size int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d\tsize: %d", ErrOutOfBoundsPlacement, row, col, size)
}

func ErrShipOverlap(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOverlapPlacement, row, col)
}

func ErrAttackPositionAlreadyFilled(row, col int) error {
	return fmt.Errorf("%w: current position in grid already taken\trow: %d\tcol: %d", ErrAlreadyAttacked, row, col)
}

func ErrTrackingPositionRecorded(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrPositionAlreadyRecorded, row, col)
}

func ErrNoSlotForShip(size int) error {
	return fmt.Errorf("%w: no free slot left for ship of size %d", ErrFleetUnplaceable, size)
}

func ErrFleetEmpty() error {
	return fmt.Errorf("%w: fleet must contain at least one ship", ErrInvalidFleet)
}

func ErrFleetShipSize(size, gridSize int) error {
	return fmt.Errorf("%w: ship size %d must be between 1 and %d", ErrInvalidFleet, size, gridSize)
}

func ErrFleetTooLarge(cells, gridCells int) error {
	return fmt.Errorf("%w: fleet needs %d cells, grid only has %d", ErrInvalidFleet, cells, gridCells)
}

func ErrFleetMalformed(raw string) error {
	return fmt.Errorf("%w: cannot parse fleet %q", ErrInvalidFleet, raw)
}

func ErrOrientationUnknown(raw string) error {
	return fmt.Errorf("%w: %q, expected h or v", ErrInvalidOrientation, raw)
}

func ErrShipSize(expected, got int) error {
	return fmt.Errorf("%w: expected: %d\tgot: %d", ErrShipSizeMismatch, expected, got)
}

func ErrGameState(state string) error {
	return fmt.Errorf("%w: current state: %s", ErrGameNotInProgress, state)
}

func ErrGameAlreadySetUp(gameUuid string) error {
	return fmt.Errorf("game is already set up, uuid: %s", gameUuid)
}
