package battleship

import (
	"log"
	"math/rand"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

const DefaultMaxRandomAttempts = 1000

// A ShipPlacer populates an initialized board with a fleet.
type ShipPlacer interface {
	PlaceFleet(board *Board, fleet Fleet) error
}

type RandomPlacer struct {
	rng         *rand.Rand
	maxAttempts int
}

var _ ShipPlacer = (*RandomPlacer)(nil)

// NewRandomPlacer samples origins with rng. After maxAttempts
// failed samples for one ship it searches every slot instead.
func NewRandomPlacer(rng *rand.Rand, maxAttempts int) *RandomPlacer {
	if maxAttempts < 0 {
		maxAttempts = 0
	}
	return &RandomPlacer{rng: rng, maxAttempts: maxAttempts}
}

func (rp *RandomPlacer) PlaceFleet(board *Board, fleet Fleet) error {
	if err := fleet.Validate(); err != nil {
		return err
	}

	for _, size := range fleet.Ascending() {
		if err := rp.placeShip(board, size); err != nil {
			return err
		}
	}
	return nil
}

func (rp *RandomPlacer) placeShip(board *Board, size int) error {
	for attempt := 0; attempt < rp.maxAttempts; attempt++ {
		orientation := rp.randomOrientation()
		origin := NewCoordinates(rp.rng.Intn(GridSize), rp.rng.Intn(GridSize))

		if board.CanPlace(origin, size, orientation) {
			return board.Place(origin, size, orientation)
		}
	}

	slots := freeSlots(board, size)
	if len(slots) == 0 {
		return cerr.ErrNoSlotForShip(size)
	}
	if rp.maxAttempts > 0 {
		log.Printf("random placement gave up after %d attempts for size %d; picking from %d free slots\n", rp.maxAttempts, size, len(slots))
	}

	slot := slots[rp.rng.Intn(len(slots))]
	return board.Place(slot.Origin, size, slot.Orientation)
}

func (rp *RandomPlacer) randomOrientation() Orientation {
	if rp.rng.Intn(2) == 0 {
		return OrientationHorizontal
	}
	return OrientationVertical
}

// freeSlots lists every legal placement of a ship of this size.
func freeSlots(board *Board, size int) []Ship {
	slots := make([]Ship, 0, 2*GridSize*GridSize)
	for _, orientation := range []Orientation{OrientationHorizontal, OrientationVertical} {
		for row := 0; row < GridSize; row++ {
			for col := 0; col < GridSize; col++ {
				origin := NewCoordinates(row, col)
				if board.CanPlace(origin, size, orientation) {
					slots = append(slots, NewShip(origin, size, orientation))
				}
			}
		}
	}
	return slots
}

// A ShipSpecProvider supplies ship specifications one at a time.
// lastErr is the rejection of the previous spec for the same
// ship, nil on the first request.
type ShipSpecProvider interface {
	RequestShipSpec(size int, lastErr error) (ShipSpec, error)
}

type DeclaredPlacer struct {
	provider ShipSpecProvider
}

var _ ShipPlacer = (*DeclaredPlacer)(nil)

func NewDeclaredPlacer(provider ShipSpecProvider) *DeclaredPlacer {
	return &DeclaredPlacer{provider: provider}
}

// PlaceFleet keeps asking for each ship until a valid spec comes in.
// Rejected specs never touch ships already on the board.
func (dp *DeclaredPlacer) PlaceFleet(board *Board, fleet Fleet) error {
	if err := fleet.Validate(); err != nil {
		return err
	}

	for _, size := range fleet.Ascending() {
		var lastErr error
		for {
			spec, err := dp.provider.RequestShipSpec(size, lastErr)
			if err != nil {
				return err
			}

			lastErr = PlaceShipSpec(board, size, spec)
			if lastErr == nil {
				break
			}
		}
	}
	return nil
}

// PlaceShipSpec validates one declared ship against the expected size
// and the board, placing it only when everything holds.
func PlaceShipSpec(board *Board, expectedSize int, spec ShipSpec) error {
	if spec.Size != expectedSize {
		return cerr.ErrShipSize(expectedSize, spec.Size)
	}
	if !spec.Origin.InBounds() {
		return cerr.ErrShipOutOfGridBound(spec.Origin.Row, spec.Origin.Col, spec.Size)
	}
	return board.Place(spec.Origin, spec.Size, spec.Orientation)
}
