// Telemetry rows emitted by the swarm simulator.
package telemetry

import (
	"os"
	"time"
)

// SwarmRow represents one per-tick swarm record for GreptimeDB.
type SwarmRow struct {
	ClusterID string    `json:"cluster_id"` // TAG
	SwarmID   string    `json:"swarm_id"`   // TAG
	X         float64   `json:"x"`          // FIELD
	Y         float64   `json:"y"`          // FIELD
	Z         float64   `json:"z"`          // FIELD
	State     string    `json:"state"`      // FIELD
	Formation string    `json:"formation"`  // FIELD
	Blend     float64   `json:"blend"`      // FIELD
	Health    float64   `json:"health"`     // FIELD
	Units     int       `json:"units"`      // FIELD
	Ambushing bool      `json:"ambushing"`  // FIELD
	Timestamp time.Time `json:"ts"`         // TIME INDEX
}

// SwarmTableName holds the table name used when writing to GreptimeDB.
// It defaults to "swarm_telemetry" but can be overridden via the
// SWARMSIM_TABLE environment variable.
var SwarmTableName = func() string {
	if env := os.Getenv("SWARMSIM_TABLE"); env != "" {
		return env
	}
	return "swarm_telemetry"
}()

func (SwarmRow) TableName() string {
	return SwarmTableName
}
