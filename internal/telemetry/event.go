package telemetry

import "time"

// EventRow represents a discrete swarm event (attack attempt, cross-swarm
// alert, state or formation change, removal).
type EventRow struct {
	ClusterID string    `json:"cluster_id"`
	SwarmID   string    `json:"swarm_id"`
	Kind      string    `json:"kind"`
	State     string    `json:"state,omitempty"`
	Formation string    `json:"formation,omitempty"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Z         float64   `json:"z"`
	PeerIDs   []string  `json:"peer_ids,omitempty"`
	Timestamp time.Time `json:"ts"`
}
