package api

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

const (
	promptFireAt        = "Enter a cell to fire at (e.g., A5):"
	promptInvalidCell   = "Invalid input. Please enter a valid cell (e.g., A5):"
	msgAlreadyAttacked  = "This cell has already been attacked. Please enter another one!"
	msgHit              = "Hit!"
	msgMiss             = "Miss!"
	msgGameOver         = "Game Over!"
	promptShipOrigin    = "Enter the starting cell for your ship of size %d (e.g., A5):"
	promptOrientation   = "Enter the orientation, H for horizontal or V for vertical:"
	msgInvalidPlacement = "Invalid placement: %s"
)

// Console drives a game over line oriented text streams. It reads
// targets and ship declarations and reports every game event.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

var (
	_ mb.CoordinateSource = (*Console)(nil)
	_ mb.ShipSpecProvider = (*Console)(nil)
	_ mb.Observer         = (*Console)(nil)
)

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// RequestCoordinate shows the player's tracking grid and reads lines
// until one parses as a cell. Already attacked cells are reported by
// the game through Observe.
func (c *Console) RequestCoordinate(player mb.Player, view mb.Grid) (mb.Coordinates, error) {
	c.println(player.String() + "'s turn:")
	if err := RenderGrid(c.out, view); err != nil {
		return mb.Coordinates{}, err
	}
	c.println(promptFireAt)

	for {
		line, err := c.readLine()
		if err != nil {
			return mb.Coordinates{}, err
		}

		target, err := mb.ParseCoordinates(line)
		if err != nil {
			c.println(promptInvalidCell)
			continue
		}
		return target, nil
	}
}

// RequestShipSpec reads an origin and an orientation for a ship of
// the given size. lastErr is the reason the previous declaration
// was rejected.
func (c *Console) RequestShipSpec(size int, lastErr error) (mb.ShipSpec, error) {
	if lastErr != nil {
		c.printf(msgInvalidPlacement+"\n", lastErr)
	}

	for {
		c.printf(promptShipOrigin+"\n", size)
		rawOrigin, err := c.readLine()
		if err != nil {
			return mb.ShipSpec{}, err
		}

		c.println(promptOrientation)
		rawOrientation, err := c.readLine()
		if err != nil {
			return mb.ShipSpec{}, err
		}

		spec, err := mb.ParseShipSpec(size, rawOrigin, rawOrientation)
		if err != nil {
			c.printf(msgInvalidPlacement+"\n", err)
			continue
		}
		return spec, nil
	}
}

// ShipSpecProvider returns a provider that announces which player
// is placing before every declaration.
func (c *Console) ShipSpecProvider(player mb.Player) mb.ShipSpecProvider {
	return playerShipSpecs{console: c, player: player}
}

func (c *Console) Observe(game *mb.Game, event mb.Event) {
	switch event.Kind {
	case mb.EventShot:
		if event.Shot.Outcome == mb.ShotOutcomeHit {
			c.println(msgHit)
		} else {
			c.println(msgMiss)
		}

	case mb.EventAlreadyAttacked:
		c.println(msgAlreadyAttacked)

	case mb.EventGameOver:
		c.println(event.Winner.String() + " wins!")
		c.println(msgGameOver)
	}
}

func (c *Console) readLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *Console) println(line string) {
	fmt.Fprintln(c.out, line)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

type playerShipSpecs struct {
	console *Console
	player  mb.Player
}

func (p playerShipSpecs) RequestShipSpec(size int, lastErr error) (mb.ShipSpec, error) {
	if lastErr == nil {
		p.console.println(p.player.String() + "'s placement:")
	}
	return p.console.RequestShipSpec(size, lastErr)
}
