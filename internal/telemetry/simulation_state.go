package telemetry

import "time"

// SimulationStateRow captures per-tick simulator state metrics.
type SimulationStateRow struct {
	ClusterID     string    `json:"cluster_id"`
	Swarms        int       `json:"swarms"`
	LiveUnits     int       `json:"live_units"`
	TargetTracked bool      `json:"target_tracked"`
	TickSeconds   float64   `json:"tick_seconds"`
	Timestamp     time.Time `json:"ts"`
}
