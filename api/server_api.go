package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/saeidalz13/battleship-engine/internal"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	mc "github.com/saeidalz13/battleship-engine/models/connection"
)

const (
	SpectatePath = "/spectate"

	defaultPort         int           = 8000
	readHeaderTimeout   time.Duration = time.Second * 5
	sessionCleanupEvery time.Duration = time.Minute * 20
)

// Server publishes spectator websockets next to a console game.
type Server struct {
	port  int
	stage string

	SessionManager   *mc.SpectatorSessionManager
	RequestProcessor *RequestProcessor
	httpServer       *http.Server
}

type Option func(*Server) error

func NewServer(gameManager mb.GameManager, optFuncs ...Option) (*Server, error) {
	server := Server{
		port:  defaultPort,
		stage: internal.StageDev,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}

	server.SessionManager = mc.NewSpectatorSessionManager(sessionCleanupEvery)
	server.RequestProcessor = NewRequestProcessor(server.SessionManager, gameManager, server.stage)

	server.httpServer = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(server.port)),
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return &server, nil
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != internal.StageProd && stage != internal.StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func (s *Server) Port() int {
	return s.port
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+SpectatePath, s.RequestProcessor)
	return mux
}

// Run serves until ctx is done, cleaning up stale sessions meanwhile.
func (s *Server) Run(ctx context.Context) error {
	go s.SessionManager.CleanupPeriodically(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Println(err)
		}
	}()

	log.Printf("spectators can connect on port %d at %s\n", s.port, SpectatePath)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
