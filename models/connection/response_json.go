package connection

import (
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
	GameUuid  string `json:"game_uuid"`
}

// RespSnapshot is the read-only spectator view of a game. Grids
// are rows of canonical symbols, row A first.
type RespSnapshot struct {
	GameUuid      string   `json:"game_uuid"`
	State         string   `json:"state"`
	ActivePlayer  uint8    `json:"active_player"`
	Turn          int      `json:"turn"`
	TrackingGrid1 []string `json:"tracking_grid_1"`
	TrackingGrid2 []string `json:"tracking_grid_2"`
}

func NewRespSnapshot(game *mb.Game) RespSnapshot {
	return RespSnapshot{
		GameUuid:      game.Uuid(),
		State:         game.State().String(),
		ActivePlayer:  uint8(game.ActivePlayer()),
		Turn:          game.Turn(),
		TrackingGrid1: game.TrackingView(mb.PlayerOne).Symbols(),
		TrackingGrid2: game.TrackingView(mb.PlayerTwo).Symbols(),
	}
}

type RespShot struct {
	Attacker uint8        `json:"attacker"`
	Target   string       `json:"target"`
	Outcome  string       `json:"outcome"`
	Snapshot RespSnapshot `json:"snapshot"`
}

func NewRespShot(report mb.ShotReport, snapshot RespSnapshot) RespShot {
	return RespShot{
		Attacker: uint8(report.Attacker),
		Target:   report.Target.String(),
		Outcome:  report.Outcome.String(),
		Snapshot: snapshot,
	}
}

type RespEndGame struct {
	Winner      uint8          `json:"winner"`
	WinnerStats mb.PlayerStats `json:"winner_stats"`
	LoserStats  mb.PlayerStats `json:"loser_stats"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
