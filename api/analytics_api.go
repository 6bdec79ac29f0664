package api

import (
	"context"
	"log"

	"github.com/saeidalz13/battleship-engine/db/sqlc"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

// AnalyticsCounter is the slice of the analytics manager the
// observer writes to.
type AnalyticsCounter interface {
	IncrementGamesCreatedCount(ctx context.Context) error
	IncrementGamesFinishedCount(ctx context.Context) error
	IncrementShotsFiredCount(ctx context.Context) error
}

var _ AnalyticsCounter = (*sqlc.AnalyticsManager)(nil)

// AnalyticsObserver counts games and shots for this server. Failing
// writes are logged and never interrupt the game.
type AnalyticsObserver struct {
	counter AnalyticsCounter
}

var _ mb.Observer = (*AnalyticsObserver)(nil)

func NewAnalyticsObserver(counter AnalyticsCounter) *AnalyticsObserver {
	return &AnalyticsObserver{counter: counter}
}

func (ao *AnalyticsObserver) Observe(game *mb.Game, event mb.Event) {
	var increment func(ctx context.Context) error

	switch event.Kind {
	case mb.EventGameStarted:
		increment = ao.counter.IncrementGamesCreatedCount
	case mb.EventShot:
		increment = ao.counter.IncrementShotsFiredCount
	case mb.EventGameOver:
		increment = ao.counter.IncrementGamesFinishedCount
	default:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := increment(ctx); err != nil {
		// for now not killing the game for it
		log.Println(err)
	}
}
