package battleship

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

// fixedPlacer places the same ships on every board.
type fixedPlacer []Ship

func (fp fixedPlacer) PlaceFleet(board *Board, fleet Fleet) error {
	for _, ship := range fp {
		if err := board.Place(ship.Origin, ship.Size, ship.Orientation); err != nil {
			return err
		}
	}
	return nil
}

type scriptedSource struct {
	targets  map[Player][]Coordinates
	requests []Player
}

func (ss *scriptedSource) RequestCoordinate(player Player, view Grid) (Coordinates, error) {
	ss.requests = append(ss.requests, player)
	queue := ss.targets[player]
	if len(queue) == 0 {
		return Coordinates{}, errors.New("no more targets")
	}
	ss.targets[player] = queue[1:]
	return queue[0], nil
}

type recordingObserver struct {
	events []Event
}

func (ro *recordingObserver) Observe(game *Game, event Event) {
	ro.events = append(ro.events, event)
}

func newSmallGame(t *testing.T, opts ...GameOption) *Game {
	t.Helper()

	opts = append([]GameOption{WithFleet(Fleet{2})}, opts...)
	game := NewGame("abc123", opts...)
	p1 := fixedPlacer{NewShip(NewCoordinates(0, 0), 2, OrientationHorizontal)}
	p2 := fixedPlacer{NewShip(NewCoordinates(5, 5), 2, OrientationVertical)}
	if err := game.Setup(p1, p2); err != nil {
		t.Fatal(err)
	}
	return game
}

func TestGameFireBeforeSetup(t *testing.T) {
	game := NewGame("abc123")
	if game.State() != GameStateSetup {
		t.Fatalf("expected state: %s\tgot: %s", GameStateSetup, game.State())
	}

	_, err := game.Fire(NewCoordinates(0, 0))
	if !errors.Is(err, cerr.ErrGameNotInProgress) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrGameNotInProgress, err)
	}
}

func TestGameStateTransitions(t *testing.T) {
	observer := &recordingObserver{}
	game := newSmallGame(t, WithObserver(observer))

	tests := []struct {
		name            string
		raw             string
		expectedOutcome ShotOutcome
		expectedState   GameState
		expectedErr     error
	}{
		{name: "player 1 misses", raw: "J1", expectedOutcome: ShotOutcomeMiss, expectedState: GameStateAwaitingPlayer2Turn},
		{name: "player 2 hits", raw: "A1", expectedOutcome: ShotOutcomeHit, expectedState: GameStateAwaitingPlayer1Turn},
		{name: "player 1 repeats", raw: "j1", expectedOutcome: ShotOutcomeAlreadyAttacked, expectedState: GameStateAwaitingPlayer1Turn},
		{name: "player 1 invalid text", raw: "K1", expectedState: GameStateAwaitingPlayer1Turn, expectedErr: cerr.ErrInvalidCoordinate},
		{name: "player 1 hits", raw: "F6", expectedOutcome: ShotOutcomeHit, expectedState: GameStateAwaitingPlayer2Turn},
		{name: "player 2 misses", raw: "J10", expectedOutcome: ShotOutcomeMiss, expectedState: GameStateAwaitingPlayer1Turn},
		{name: "player 1 sinks fleet", raw: "G6", expectedOutcome: ShotOutcomeHit, expectedState: GameStateOver},
		{name: "no shots after game over", raw: "A2", expectedState: GameStateOver, expectedErr: cerr.ErrGameNotInProgress},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report, err := game.FireAt(test.raw)
			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected error: %v\tgot: %v", test.expectedErr, err)
				}
			} else {
				if err != nil {
					t.Fatal(err)
				}
				if report.Outcome != test.expectedOutcome {
					t.Fatalf("expected outcome: %s\tgot: %s", test.expectedOutcome, report.Outcome)
				}
			}

			if game.State() != test.expectedState {
				t.Fatalf("expected state: %s\tgot: %s", test.expectedState, game.State())
			}
		})
	}

	if game.Winner() != PlayerOne {
		t.Fatalf("expected winner: %s\tgot: %s", PlayerOne, game.Winner())
	}
	if game.Turn() != 5 {
		t.Fatalf("expected resolved shots: %d\tgot: %d", 5, game.Turn())
	}

	expectedKinds := []EventKind{
		EventGameStarted,
		EventShot,
		EventShot,
		EventAlreadyAttacked,
		EventShot,
		EventShot,
		EventShot,
		EventGameOver,
	}
	kinds := make([]EventKind, 0, len(observer.events))
	for _, event := range observer.events {
		kinds = append(kinds, event.Kind)
		if event.GameUuid != "abc123" {
			t.Fatalf("expected game uuid: abc123\tgot: %s", event.GameUuid)
		}
	}
	if !reflect.DeepEqual(expectedKinds, kinds) {
		t.Fatalf("expected events: %v\tgot: %v", expectedKinds, kinds)
	}

	last := observer.events[len(observer.events)-1]
	if last.Winner != PlayerOne || last.State != GameStateOver {
		t.Fatalf("unexpected game over event: %+v", last)
	}
}

func TestGamePlay(t *testing.T) {
	game := newSmallGame(t)

	source := &scriptedSource{targets: map[Player][]Coordinates{
		PlayerOne: {NewCoordinates(5, 5), NewCoordinates(5, 5), NewCoordinates(6, 5)},
		PlayerTwo: {NewCoordinates(9, 9)},
	}}

	winner, err := game.Play(source)
	if err != nil {
		t.Fatal(err)
	}
	if winner != PlayerOne {
		t.Fatalf("expected winner: %s\tgot: %s", PlayerOne, winner)
	}

	// the repeat keeps the turn with player one
	expectedRequests := []Player{PlayerOne, PlayerTwo, PlayerOne, PlayerOne}
	if !reflect.DeepEqual(expectedRequests, source.requests) {
		t.Fatalf("expected requests: %v\tgot: %v", expectedRequests, source.requests)
	}

	stats := game.Stats(PlayerOne)
	expectedStats := PlayerStats{Shots: 2, Hits: 2, Misses: 0, Repeats: 1, Accuracy: 100}
	if stats != expectedStats {
		t.Fatalf("expected stats: %+v\tgot: %+v", expectedStats, stats)
	}
	if acc := game.Stats(PlayerTwo).Accuracy; acc != 0 {
		t.Fatalf("expected accuracy: 0\tgot: %f", acc)
	}
}

func TestGamePlaySourceError(t *testing.T) {
	game := newSmallGame(t)
	source := &scriptedSource{targets: map[Player][]Coordinates{}}

	if _, err := game.Play(source); err == nil {
		t.Fatal("source error must stop the game loop")
	}
	if game.State() != GameStateAwaitingPlayer1Turn {
		t.Fatalf("expected state: %s\tgot: %s", GameStateAwaitingPlayer1Turn, game.State())
	}
}

func TestGameRandomFullPlayThrough(t *testing.T) {
	game := NewGame("full01")
	rng := rand.New(rand.NewSource(42))
	if err := game.Setup(NewRandomPlacer(rng, DefaultMaxRandomAttempts), NewRandomPlacer(rng, DefaultMaxRandomAttempts)); err != nil {
		t.Fatal(err)
	}

	for _, p := range []Player{PlayerOne, PlayerTwo} {
		if cells := game.BoardView(p).Count(PositionStateShip); cells != 14 {
			t.Fatalf("expected 14 ship cells for %s\tgot: %d", p, cells)
		}
	}

	// both players sweep the grid in order; player one gets there first
	sweep := make([]Coordinates, 0, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			sweep = append(sweep, NewCoordinates(row, col))
		}
	}
	source := &scriptedSource{targets: map[Player][]Coordinates{PlayerOne: sweep, PlayerTwo: sweep}}

	winner, err := game.Play(source)
	if err != nil {
		t.Fatal(err)
	}
	if winner == PlayerNone || winner != game.Winner() {
		t.Fatalf("unexpected winner: %s", winner)
	}
	if !game.IsOver() || game.ActivePlayer() != PlayerNone {
		t.Fatal("game should be over")
	}
	if game.BoardView(winner.Opponent()).Count(PositionStateShip) != 0 {
		t.Fatal("loser fleet should be destroyed")
	}
	if game.TrackingView(winner).Count(PositionStateHit) != 14 {
		t.Fatalf("winner should have 14 hits\tgot: %d", game.TrackingView(winner).Count(PositionStateHit))
	}
}

func TestGameSetupTwice(t *testing.T) {
	game := newSmallGame(t)
	if err := game.Setup(fixedPlacer{}, fixedPlacer{}); err == nil {
		t.Fatal("second setup must fail")
	}
}

func TestGameSetupPlacementError(t *testing.T) {
	game := NewGame("err001", WithFleet(Fleet{2}))
	p1 := fixedPlacer{NewShip(NewCoordinates(0, 9), 2, OrientationHorizontal)}

	err := game.Setup(p1, fixedPlacer{})
	if !errors.Is(err, cerr.ErrOutOfBoundsPlacement) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrOutOfBoundsPlacement, err)
	}
	if game.State() != GameStateSetup {
		t.Fatalf("expected state: %s\tgot: %s", GameStateSetup, game.State())
	}
}
