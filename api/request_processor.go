package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-engine/internal"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	mc "github.com/saeidalz13/battleship-engine/models/connection"
)

const (
	URLQueryGameUuidKeyword string = "gameUuid"
)

func newUpgrader(stage string) websocket.Upgrader {
	upgrader := websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// snapshots are two 10x10 grids, this is plenty
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
	}

	// nil CheckOrigin makes gorilla reject cross origin requests
	if stage != internal.StageProd {
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return upgrader
}

// RequestProcessor serves read-only spectator connections.
// Games are single goroutine values, so spectators are only ever
// served snapshots cached by Observe, never the live game.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	upgrader       websocket.Upgrader

	mu        sync.RWMutex
	snapshots map[string]mc.RespSnapshot
}

var (
	_ http.Handler = (*RequestProcessor)(nil)
	_ mb.Observer  = (*RequestProcessor)(nil)
)

func NewRequestProcessor(sessionManager mc.SessionManager, gameManager mb.GameManager, stage string) *RequestProcessor {
	return &RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		upgrader:       newUpgrader(stage),
		snapshots:      make(map[string]mc.RespSnapshot, 4),
	}
}

// Track caches the current snapshot of game and subscribes to its
// events. Call it from the goroutine driving the game.
func (rp *RequestProcessor) Track(game *mb.Game) {
	rp.storeSnapshot(mc.NewRespSnapshot(game))
	game.AddObserver(rp)
}

func (rp *RequestProcessor) Snapshot(gameUuid string) (mc.RespSnapshot, bool) {
	rp.mu.RLock()
	defer rp.mu.RUnlock()

	snapshot, prs := rp.snapshots[gameUuid]
	return snapshot, prs
}

func (rp *RequestProcessor) storeSnapshot(snapshot mc.RespSnapshot) {
	rp.mu.Lock()
	rp.snapshots[snapshot.GameUuid] = snapshot
	rp.mu.Unlock()
}

// Observe refreshes the cached snapshot and pushes the event to every
// spectator of the game.
func (rp *RequestProcessor) Observe(game *mb.Game, event mb.Event) {
	snapshot := mc.NewRespSnapshot(game)
	rp.storeSnapshot(snapshot)

	switch event.Kind {
	case mb.EventGameStarted:
		rp.sessionManager.Broadcast(event.GameUuid, mc.NewPayloadMessage(mc.CodeSnapshot, snapshot))

	case mb.EventShot:
		rp.sessionManager.Broadcast(event.GameUuid, mc.NewPayloadMessage(mc.CodeShot, mc.NewRespShot(event.Shot, snapshot)))

	case mb.EventAlreadyAttacked:
		msg := mc.NewPayloadMessage(mc.CodeAlreadyAttacked, mc.NewRespShot(event.Shot, snapshot))
		msg.AddError(event.Shot.Err().Error(), "the attacker must pick another cell")
		rp.sessionManager.Broadcast(event.GameUuid, msg)

	case mb.EventGameOver:
		respEndGame := mc.RespEndGame{
			Winner:      uint8(event.Winner),
			WinnerStats: game.Stats(event.Winner),
			LoserStats:  game.Stats(event.Winner.Opponent()),
		}
		delivered := rp.sessionManager.Broadcast(event.GameUuid, mc.NewPayloadMessage(mc.CodeEndGame, respEndGame))
		log.Printf("game %s over; end game sent to %d spectator(s)\n", event.GameUuid, delivered)
	}
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	gameUuid := r.URL.Query().Get(URLQueryGameUuidKeyword)
	if _, err := rp.gameManager.GetGame(gameUuid); err != nil {
		msg := mc.NewErrorMessage(mc.CodeInvalidGameUuid, err.Error(), "no game to spectate")
		_ = conn.SetWriteDeadline(time.Now().Add(time.Second * 5))
		if err := conn.WriteJSON(msg); err != nil {
			log.Println(err)
		}
		conn.Close()
		return
	}

	log.Println("a new spectator connected\tRemote Addr: ", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn, gameUuid))
}

func (rp *RequestProcessor) currentSnapshot(gameUuid string) mc.RespSnapshot {
	snapshot, prs := rp.Snapshot(gameUuid)
	if !prs {
		// game exists but nothing drives it yet
		return mc.RespSnapshot{GameUuid: gameUuid, State: mb.GameStateSetup.String()}
	}
	return snapshot
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	defer rp.sessionManager.TerminateSession(session.Id())

	respSessionId := mc.NewPayloadMessage(mc.CodeSessionID, mc.RespSessionId{
		SessionID: session.Id(),
		GameUuid:  session.GameUuid(),
	})
	if err := rp.sessionManager.WriteToSessionConn(session, respSessionId, mc.MessageTypeJSON); err != nil {
		return
	}

	respSnapshot := mc.NewPayloadMessage(mc.CodeSnapshot, rp.currentSnapshot(session.GameUuid()))
	if err := rp.sessionManager.WriteToSessionConn(session, respSnapshot, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// the connection could not be recovered after retries
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewErrorMessage(mc.CodeSignalAbsent, err.Error(), "incoming req payload must contain 'code' field")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeSnapshot:
			msg := mc.NewPayloadMessage(mc.CodeSnapshot, rp.currentSnapshot(session.GameUuid()))
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			msg := mc.NewErrorMessage(mc.CodeInvalidSignal, "", "spectators may only request snapshots")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}
