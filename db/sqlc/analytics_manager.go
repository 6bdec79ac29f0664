package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager keeps aggregate counters per server. It never
// stores the state of a game.
type AnalyticsManager struct {
	queries     Querier
	serverIpNet pqtype.Inet
}

func NewAnalyticsManager(queries Querier, serverIpNet pqtype.Inet) *AnalyticsManager {
	return &AnalyticsManager{queries: queries, serverIpNet: serverIpNet}
}

func (a *AnalyticsManager) ServerIpNet() pqtype.Inet {
	return a.serverIpNet
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context) error {
	return a.queries.IncrementGamesCreatedCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) IncrementGamesFinishedCount(ctx context.Context) error {
	return a.queries.IncrementGamesFinishedCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) IncrementShotsFiredCount(ctx context.Context) error {
	return a.queries.IncrementShotsFiredCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context) (int64, error) {
	return a.queries.GetGamesCreatedCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) GetGamesFinishedCount(ctx context.Context) (int64, error) {
	return a.queries.GetGamesFinishedCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) GetShotsFiredCount(ctx context.Context) (int64, error) {
	return a.queries.GetShotsFiredCount(ctx, a.serverIpNet)
}
