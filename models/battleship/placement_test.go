package battleship

import (
	"errors"
	"math/rand"
	"testing"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

func assertFleetOnBoard(t *testing.T, board *Board, fleet Fleet) {
	t.Helper()

	if cells := board.ShipCells(); cells != fleet.TotalCells() {
		t.Fatalf("expected ship cells: %d\tgot: %d", fleet.TotalCells(), cells)
	}

	ships := board.Ships()
	if len(ships) != len(fleet) {
		t.Fatalf("expected ships: %d\tgot: %d", len(fleet), len(ships))
	}

	seen := make(map[Coordinates]bool, fleet.TotalCells())
	for i, ship := range ships {
		if ship.Size != fleet.Ascending()[i] {
			t.Fatalf("expected ship %d of size %d\tgot: %d", i, fleet.Ascending()[i], ship.Size)
		}
		for _, c := range ship.Cells() {
			if !c.InBounds() {
				t.Fatalf("ship cell out of bound: %+v", c)
			}
			if seen[c] {
				t.Fatalf("ships overlap at %+v", c)
			}
			seen[c] = true
			if board.At(c) != PositionStateShip {
				t.Fatalf("expected ship at %+v", c)
			}
		}
	}
}

func TestRandomPlacerReferenceFleet(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		board := NewBoard()
		placer := NewRandomPlacer(rand.New(rand.NewSource(seed)), DefaultMaxRandomAttempts)

		if err := placer.PlaceFleet(board, ReferenceFleet); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if board.ShipCells() != 14 {
			t.Fatalf("seed %d: expected 14 ship cells\tgot: %d", seed, board.ShipCells())
		}
		assertFleetOnBoard(t, board, ReferenceFleet)
	}
}

func TestRandomPlacerExhaustiveFallback(t *testing.T) {
	tests := []struct {
		name        string
		fleet       Fleet
		maxAttempts int
	}{
		{name: "no random attempts", fleet: ReferenceFleet, maxAttempts: 0},
		{name: "dense declared fleet", fleet: Fleet{10, 10, 10, 10, 10, 10, 10, 10}, maxAttempts: 3},
		{name: "unordered fleet", fleet: Fleet{5, 2, 4, 3, 3}, maxAttempts: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := NewBoard()
			placer := NewRandomPlacer(rand.New(rand.NewSource(7)), test.maxAttempts)

			if err := placer.PlaceFleet(board, test.fleet); err != nil {
				t.Fatal(err)
			}
			assertFleetOnBoard(t, board, test.fleet)
		})
	}
}

func TestRandomPlacerUnplaceable(t *testing.T) {
	board := NewBoard()
	for row := 0; row < GridSize; row++ {
		if err := board.Place(NewCoordinates(row, 0), GridSize, OrientationHorizontal); err != nil {
			t.Fatal(err)
		}
	}

	placer := NewRandomPlacer(rand.New(rand.NewSource(1)), 5)
	err := placer.PlaceFleet(board, Fleet{2})
	if !errors.Is(err, cerr.ErrFleetUnplaceable) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrFleetUnplaceable, err)
	}
}

type scriptedSpecProvider struct {
	specs    []ShipSpec
	next     int
	rejected []error
}

func (sp *scriptedSpecProvider) RequestShipSpec(size int, lastErr error) (ShipSpec, error) {
	if lastErr != nil {
		sp.rejected = append(sp.rejected, lastErr)
	}
	if sp.next >= len(sp.specs) {
		return ShipSpec{}, errors.New("script exhausted")
	}
	spec := sp.specs[sp.next]
	sp.next++
	return spec, nil
}

func TestDeclaredPlacer(t *testing.T) {
	provider := &scriptedSpecProvider{
		specs: []ShipSpec{
			{Size: 2, Origin: NewCoordinates(0, 0), Orientation: OrientationHorizontal},
			// out of bound
			{Size: 3, Origin: NewCoordinates(0, 8), Orientation: OrientationHorizontal},
			// overlaps the size 2 ship
			{Size: 3, Origin: NewCoordinates(0, 1), Orientation: OrientationVertical},
			// wrong size
			{Size: 4, Origin: NewCoordinates(5, 5), Orientation: OrientationVertical},
			{Size: 3, Origin: NewCoordinates(2, 0), Orientation: OrientationHorizontal},
			{Size: 4, Origin: NewCoordinates(4, 0), Orientation: OrientationVertical},
			{Size: 5, Origin: NewCoordinates(9, 5), Orientation: OrientationHorizontal},
		},
	}

	board := NewBoard()
	if err := NewDeclaredPlacer(provider).PlaceFleet(board, ReferenceFleet); err != nil {
		t.Fatal(err)
	}
	assertFleetOnBoard(t, board, ReferenceFleet)

	expectedRejections := []error{cerr.ErrOutOfBoundsPlacement, cerr.ErrOverlapPlacement, cerr.ErrShipSizeMismatch}
	if len(provider.rejected) != len(expectedRejections) {
		t.Fatalf("expected rejections: %d\tgot: %d (%v)", len(expectedRejections), len(provider.rejected), provider.rejected)
	}
	for i, expected := range expectedRejections {
		if !errors.Is(provider.rejected[i], expected) {
			t.Fatalf("rejection %d expected: %v\tgot: %v", i, expected, provider.rejected[i])
		}
	}

	if board.At(NewCoordinates(0, 0)) != PositionStateShip || board.At(NewCoordinates(0, 1)) != PositionStateShip {
		t.Fatal("rejected specs must not corrupt placed ships")
	}
}

func TestDeclaredPlacerProviderError(t *testing.T) {
	provider := &scriptedSpecProvider{
		specs: []ShipSpec{{Size: 2, Origin: NewCoordinates(0, 0), Orientation: OrientationHorizontal}},
	}

	board := NewBoard()
	if err := NewDeclaredPlacer(provider).PlaceFleet(board, ReferenceFleet); err == nil {
		t.Fatal("exhausted provider must abort placement")
	}
	if board.ShipCells() != 2 {
		t.Fatalf("expected ship cells: %d\tgot: %d", 2, board.ShipCells())
	}
}

func TestParseShipSpec(t *testing.T) {
	spec, err := ParseShipSpec(3, "c4", "V")
	if err != nil {
		t.Fatal(err)
	}
	expected := ShipSpec{Size: 3, Origin: NewCoordinates(2, 3), Orientation: OrientationVertical}
	if spec != expected {
		t.Fatalf("expected spec: %+v\tgot: %+v", expected, spec)
	}

	if _, err := ParseShipSpec(3, "z4", "v"); !errors.Is(err, cerr.ErrInvalidCoordinate) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrInvalidCoordinate, err)
	}
	if _, err := ParseShipSpec(3, "c4", "diagonal"); !errors.Is(err, cerr.ErrInvalidOrientation) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrInvalidOrientation, err)
	}
}

func TestParseFleet(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Fleet
		err      error
	}{
		{name: "reference", raw: "2,3,4,5", expected: Fleet{2, 3, 4, 5}},
		{name: "spaces and trailing comma", raw: " 3, 3 ,2,", expected: Fleet{3, 3, 2}},
		{name: "empty", raw: "", err: cerr.ErrInvalidFleet},
		{name: "not a number", raw: "2,x", err: cerr.ErrInvalidFleet},
		{name: "ship too long", raw: "11", err: cerr.ErrInvalidFleet},
		{name: "zero size", raw: "0,2", err: cerr.ErrInvalidFleet},
		{name: "more cells than grid", raw: "10,10,10,10,10,10,10,10,10,10,1", err: cerr.ErrInvalidFleet},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fleet, err := ParseFleet(test.raw)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("expected error: %v\tgot: %v", test.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(fleet) != len(test.expected) {
				t.Fatalf("expected fleet: %v\tgot: %v", test.expected, fleet)
			}
			for i := range fleet {
				if fleet[i] != test.expected[i] {
					t.Fatalf("expected fleet: %v\tgot: %v", test.expected, fleet)
				}
			}
		})
	}
}
