package battleship

import (
	"github.com/dariubs/percent"
)

type Player uint8

const (
	PlayerNone Player = iota
	PlayerOne
	PlayerTwo
)

func (p Player) Opponent() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return PlayerNone
	}
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "Player 1"
	case PlayerTwo:
		return "Player 2"
	default:
		return "nobody"
	}
}

// index into the game's per-player arrays
func (p Player) index() int {
	return int(p) - 1
}

func (p Player) valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

type PlayerStats struct {
	Shots    int     `json:"shots"`
	Hits     int     `json:"hits"`
	Misses   int     `json:"misses"`
	Repeats  int     `json:"repeats"`
	Accuracy float64 `json:"accuracy"`
}

func newPlayerStats(tracking *TrackingGrid, repeats int) PlayerStats {
	stats := PlayerStats{
		Hits:    tracking.Hits(),
		Misses:  tracking.Misses(),
		Repeats: repeats,
	}
	stats.Shots = stats.Hits + stats.Misses

	if stats.Shots > 0 {
		stats.Accuracy = percent.PercentOf(stats.Hits, stats.Shots)
	}
	return stats
}
