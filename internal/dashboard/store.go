package dashboard

import (
	"logmon/internal/feature"
	"logmon/internal/state"
	"logmon/internal/types"
)

// CounterSource exposes cumulative counters to the API
type CounterSource interface {
	Snapshot() types.Counts
	TopAddresses(limit int) []feature.AddressCount
}

// AlertHistory exposes persisted alerts to the API
type AlertHistory interface {
	RecentAlerts(limit int) ([]state.AlertEntry, error)
}

// Stats represents the cumulative totals served by /api/v1/stats
type Stats struct {
	FailedLogins int64                  `json:"failed_logins"`
	Errors       int64                  `json:"errors"`
	Criticals    int64                  `json:"criticals"`
	TopAttackers []feature.AddressCount `json:"top_attackers"`
}

const topAttackers = 5

func buildStats(src CounterSource) Stats {
	snap := src.Snapshot()
	return Stats{
		FailedLogins: snap.FailedLogins,
		Errors:       snap.Errors,
		Criticals:    snap.Criticals,
		TopAttackers: src.TopAddresses(topAttackers),
	}
}
