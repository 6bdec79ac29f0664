package battleship

import (
	"sort"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

func ParseOrientation(raw string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "h", "horizontal":
		return OrientationHorizontal, nil
	case "v", "vertical":
		return OrientationVertical, nil
	default:
		return OrientationHorizontal, cerr.ErrOrientationUnknown(raw)
	}
}

// step returns the row and column increments for one cell along o.
func (o Orientation) step() (int, int) {
	if o == OrientationVertical {
		return 1, 0
	}
	return 0, 1
}

type Ship struct {
	Size        int         `json:"size"`
	Origin      Coordinates `json:"origin"`
	Orientation Orientation `json:"orientation"`
}

func NewShip(origin Coordinates, size int, orientation Orientation) Ship {
	return Ship{
		Size:        size,
		Origin:      origin,
		Orientation: orientation,
	}
}

// Cells lists the occupied coordinates starting at the origin.
// They may lie outside the grid; bounds are the board's concern.
func (sh Ship) Cells() []Coordinates {
	dRow, dCol := sh.Orientation.step()
	cells := make([]Coordinates, 0, sh.Size)
	for i := 0; i < sh.Size; i++ {
		cells = append(cells, NewCoordinates(sh.Origin.Row+i*dRow, sh.Origin.Col+i*dCol))
	}
	return cells
}

// Specification of a ship coming from the players, one at a time.
type ShipSpec struct {
	Size        int
	Origin      Coordinates
	Orientation Orientation
}

func ParseShipSpec(size int, rawOrigin, rawOrientation string) (ShipSpec, error) {
	origin, err := ParseCoordinates(rawOrigin)
	if err != nil {
		return ShipSpec{}, err
	}
	orientation, err := ParseOrientation(rawOrientation)
	if err != nil {
		return ShipSpec{}, err
	}
	return ShipSpec{Size: size, Origin: origin, Orientation: orientation}, nil
}

func (s ShipSpec) Ship() Ship {
	return NewShip(s.Origin, s.Size, s.Orientation)
}

// Fleet holds the sizes of the ships a player places.
type Fleet []int

// One ship each of sizes 2, 3, 4 and 5.
var ReferenceFleet = Fleet{2, 3, 4, 5}

func NewReferenceFleet() Fleet {
	fleet := make(Fleet, len(ReferenceFleet))
	copy(fleet, ReferenceFleet)
	return fleet
}

// ParseFleet reads a comma separated list of sizes such as "2,3,4,5".
func ParseFleet(raw string) (Fleet, error) {
	parts := strings.Split(raw, ",")
	fleet := make(Fleet, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := strconv.Atoi(part)
		if err != nil {
			return nil, cerr.ErrFleetMalformed(raw)
		}
		fleet = append(fleet, size)
	}

	if err := fleet.Validate(); err != nil {
		return nil, err
	}
	return fleet, nil
}

func (f Fleet) Validate() error {
	if len(f) == 0 {
		return cerr.ErrFleetEmpty()
	}
	for _, size := range f {
		if size < 1 || size > GridSize {
			return cerr.ErrFleetShipSize(size, GridSize)
		}
	}
	if cells := f.TotalCells(); cells > GridSize*GridSize {
		return cerr.ErrFleetTooLarge(cells, GridSize*GridSize)
	}
	return nil
}

func (f Fleet) TotalCells() int {
	var total int
	for _, size := range f {
		total += size
	}
	return total
}

// Ascending returns a sorted copy; placement goes smallest first.
func (f Fleet) Ascending() Fleet {
	sorted := make(Fleet, len(f))
	copy(sorted, f)
	sort.Ints(sorted)
	return sorted
}
