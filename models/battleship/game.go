package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type GameState uint8

const (
	GameStateSetup GameState = iota
	GameStateAwaitingPlayer1Turn
	GameStateAwaitingPlayer2Turn
	GameStateOver
)

func (gs GameState) String() string {
	switch gs {
	case GameStateSetup:
		return "setup"
	case GameStateAwaitingPlayer1Turn:
		return "awaiting_player_1_turn"
	case GameStateAwaitingPlayer2Turn:
		return "awaiting_player_2_turn"
	case GameStateOver:
		return "game_over"
	default:
		return "invalid"
	}
}

type EventKind uint8

const (
	EventGameStarted EventKind = iota
	EventShot
	EventAlreadyAttacked
	EventGameOver
)

type ShotReport struct {
	Attacker Player      `json:"attacker"`
	Target   Coordinates `json:"target"`
	Outcome  ShotOutcome `json:"outcome"`
	Turn     int         `json:"turn"`
}

// Err reports a repeated target as cerr.ErrAlreadyAttacked so
// outer layers can surface it as a recoverable error.
func (sr ShotReport) Err() error {
	if sr.Outcome == ShotOutcomeAlreadyAttacked {
		return cerr.ErrAttackPositionAlreadyFilled(sr.Target.Row, sr.Target.Col)
	}
	return nil
}

type Event struct {
	Kind     EventKind
	GameUuid string
	State    GameState
	Shot     ShotReport
	Winner   Player
}

// Observers are notified synchronously, in registration order,
// from the goroutine driving the game.
type Observer interface {
	Observe(game *Game, event Event)
}

// A CoordinateSource supplies the next target for player.
// view is the player's own tracking grid.
type CoordinateSource interface {
	RequestCoordinate(player Player, view Grid) (Coordinates, error)
}

// Game owns both boards and both tracking grids. It is driven
// from a single goroutine and is not safe for concurrent use.
type Game struct {
	uuid      string
	state     GameState
	winner    Player
	fleet     Fleet
	turn      int
	boards    [2]*Board
	trackings [2]*TrackingGrid
	repeats   [2]int
	observers []Observer
}

type GameOption func(*Game)

func WithFleet(fleet Fleet) GameOption {
	return func(g *Game) {
		g.fleet = fleet
	}
}

func WithObserver(observer Observer) GameOption {
	return func(g *Game) {
		g.observers = append(g.observers, observer)
	}
}

func NewGame(uuid string, opts ...GameOption) *Game {
	game := &Game{
		uuid:      uuid,
		state:     GameStateSetup,
		winner:    PlayerNone,
		fleet:     NewReferenceFleet(),
		boards:    [2]*Board{NewBoard(), NewBoard()},
		trackings: [2]*TrackingGrid{NewTrackingGrid(), NewTrackingGrid()},
	}
	for _, opt := range opts {
		opt(game)
	}
	return game
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) Fleet() Fleet {
	return g.fleet
}

func (g *Game) Winner() Player {
	return g.winner
}

func (g *Game) IsOver() bool {
	return g.state == GameStateOver
}

// Number of resolved shots so far.
func (g *Game) Turn() int {
	return g.turn
}

func (g *Game) AddObserver(observer Observer) {
	g.observers = append(g.observers, observer)
}

// ActivePlayer is the player expected to fire next, PlayerNone
// outside of play.
func (g *Game) ActivePlayer() Player {
	switch g.state {
	case GameStateAwaitingPlayer1Turn:
		return PlayerOne
	case GameStateAwaitingPlayer2Turn:
		return PlayerTwo
	default:
		return PlayerNone
	}
}

func (g *Game) TrackingView(p Player) Grid {
	if !p.valid() {
		return NewGrid(PositionStateUnknown)
	}
	return g.trackings[p.index()].Snapshot()
}

func (g *Game) BoardView(p Player) Grid {
	if !p.valid() {
		return NewGrid(PositionStateWater)
	}
	return g.boards[p.index()].Snapshot()
}

func (g *Game) Stats(p Player) PlayerStats {
	if !p.valid() {
		return PlayerStats{}
	}
	return newPlayerStats(g.trackings[p.index()], g.repeats[p.index()])
}

// Setup populates player one's board with p1 and player two's
// with p2, then hands the first turn to player one.
func (g *Game) Setup(p1, p2 ShipPlacer) error {
	if g.state != GameStateSetup {
		return cerr.ErrGameAlreadySetUp(g.uuid)
	}
	if err := g.fleet.Validate(); err != nil {
		return err
	}

	for i, placer := range []ShipPlacer{p1, p2} {
		g.boards[i].Initialize()
		g.trackings[i].Initialize()
		if err := placer.PlaceFleet(g.boards[i], g.fleet); err != nil {
			g.boards[i].Initialize()
			return err
		}
	}

	g.state = GameStateAwaitingPlayer1Turn
	g.notify(Event{Kind: EventGameStarted})
	return nil
}

// Fire resolves a shot by the active player. An already attacked
// target leaves the turn with the same player.
func (g *Game) Fire(target Coordinates) (ShotReport, error) {
	attacker := g.ActivePlayer()
	if attacker == PlayerNone {
		return ShotReport{}, cerr.ErrGameState(g.state.String())
	}
	if !target.InBounds() {
		return ShotReport{}, cerr.ErrCoordinateOutOfGrid(target.String())
	}

	defender := attacker.Opponent()
	outcome := ResolveShot(target, g.boards[defender.index()], g.trackings[attacker.index()])

	report := ShotReport{
		Attacker: attacker,
		Target:   target,
		Outcome:  outcome,
		Turn:     g.turn,
	}

	if outcome == ShotOutcomeAlreadyAttacked {
		g.repeats[attacker.index()]++
		g.notify(Event{Kind: EventAlreadyAttacked, Shot: report})
		return report, nil
	}

	g.turn++
	switch {
	case outcome == ShotOutcomeHit && g.boards[defender.index()].IsFleetDestroyed():
		g.state = GameStateOver
		g.winner = attacker

	case attacker == PlayerOne:
		g.state = GameStateAwaitingPlayer2Turn

	default:
		g.state = GameStateAwaitingPlayer1Turn
	}

	g.notify(Event{Kind: EventShot, Shot: report})
	if g.state == GameStateOver {
		g.notify(Event{Kind: EventGameOver, Winner: g.winner})
	}
	return report, nil
}

// FireAt parses raw text before firing.
func (g *Game) FireAt(raw string) (ShotReport, error) {
	target, err := ParseCoordinates(raw)
	if err != nil {
		return ShotReport{}, err
	}
	return g.Fire(target)
}

// Play runs turns until a fleet is destroyed and returns the winner.
// Errors from source end the game loop early.
func (g *Game) Play(source CoordinateSource) (Player, error) {
	for !g.IsOver() {
		attacker := g.ActivePlayer()
		if attacker == PlayerNone {
			return PlayerNone, cerr.ErrGameState(g.state.String())
		}

		target, err := source.RequestCoordinate(attacker, g.TrackingView(attacker))
		if err != nil {
			return PlayerNone, err
		}

		if _, err := g.Fire(target); err != nil {
			return PlayerNone, err
		}
	}
	return g.winner, nil
}

func (g *Game) notify(event Event) {
	event.GameUuid = g.uuid
	event.State = g.state
	for _, observer := range g.observers {
		observer.Observe(g, event)
	}
}
