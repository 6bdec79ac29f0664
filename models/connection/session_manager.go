package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const defaultCleanupInterval time.Duration = time.Minute * 20

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn, gameUuid string) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, bool)
	TerminateSession(sessionId string)
	Broadcast(gameUuid string, msg interface{}) int
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	CountSessions(gameUuid string) int
}

type SpectatorSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*SpectatorSessionManager)(nil)

func NewSpectatorSessionManager(cleanupInterval time.Duration) *SpectatorSessionManager {
	initMapSize := 10
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	return &SpectatorSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: cleanupInterval,
	}
}

func (ssm *SpectatorSessionManager) GenerateNewSession(conn *websocket.Conn, gameUuid string) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, gameUuid, conn)

	ssm.mu.Lock()
	ssm.sessions[sessionId] = session
	ssm.mu.Unlock()

	return session
}

func (ssm *SpectatorSessionManager) FindSession(sessionId string) (*Session, bool) {
	ssm.mu.RLock()
	defer ssm.mu.RUnlock()

	session, prs := ssm.sessions[sessionId]
	return session, prs
}

// TerminateSession closes the connection and forgets the session.
func (ssm *SpectatorSessionManager) TerminateSession(sessionId string) {
	ssm.mu.Lock()
	session, prs := ssm.sessions[sessionId]
	delete(ssm.sessions, sessionId)
	ssm.mu.Unlock()

	if prs && session.conn != nil {
		_ = session.conn.Close()
		log.Printf("spectator session terminated: %s\n", sessionId)
	}
}

// Broadcast writes msg to every spectator of the game and returns
// how many received it. Broken sessions are terminated.
func (ssm *SpectatorSessionManager) Broadcast(gameUuid string, msg interface{}) int {
	ssm.mu.RLock()
	receivers := make([]*Session, 0, len(ssm.sessions))
	for _, session := range ssm.sessions {
		if session.gameUuid == gameUuid {
			receivers = append(receivers, session)
		}
	}
	ssm.mu.RUnlock()

	var delivered int
	for _, session := range receivers {
		if err := ssm.WriteToSessionConn(session, msg, MessageTypeJSON); err != nil {
			log.Println(err)
			ssm.TerminateSession(session.id)
			continue
		}
		delivered++
	}
	return delivered
}

func (ssm *SpectatorSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConnWithRetry(msg, msgType)
}

func (ssm *SpectatorSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		default:
			return -1, []byte{}, NewConnErr(ConnLoopBreak, session.id).AddDesc(err.Error())
		}
	}
}

func (ssm *SpectatorSessionManager) CountSessions(gameUuid string) int {
	ssm.mu.RLock()
	defer ssm.mu.RUnlock()

	var count int
	for _, session := range ssm.sessions {
		if session.gameUuid == gameUuid {
			count++
		}
	}
	return count
}

// To ensure that there is no dangling connections,
// spectator sessions older than the cleanup interval
// are terminated.
func (ssm *SpectatorSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(ssm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			ssm.mu.RLock()
			toDelete := make([]string, 0, len(ssm.sessions))
			for ID, session := range ssm.sessions {
				if time.Since(session.createdAt) > ssm.cleanupInterval {
					toDelete = append(toDelete, ID)
				}
			}
			ssm.mu.RUnlock()

			if len(toDelete) > 0 {
				log.Println("Clean up spectator sessions:")
			}
			for _, ID := range toDelete {
				ssm.TerminateSession(ID)
			}
		}
	}
}

var errSignalAbsent = errors.New("incoming payload must contain 'code' field")

func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return randomInvalidCode, errSignalAbsent
	}

	return *signal.Code, nil
}
