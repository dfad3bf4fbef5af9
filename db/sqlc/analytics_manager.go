package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager groups the per server counters
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementBoardsCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementBoardsCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementShotsFiredCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementShotsFiredCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementShipsSunkCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementShipsSunkCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetBoardsCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetBoardsCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetShotsFiredCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetShotsFiredCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetShipsSunkCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetShipsSunkCount(ctx, serverIpNet)
}
