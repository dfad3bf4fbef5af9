package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager is what the request processor records through.
// A nil *DbManager means the server runs without a database.
type DbManager struct {
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) *DbManager {
	return &DbManager{
		Analytics: NewAnalyticsManager(queries),
	}
}

// Enabled reports whether there is a database behind the manager.
func (dm *DbManager) Enabled() bool {
	return dm != nil && dm.Analytics != nil
}
