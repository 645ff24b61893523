// Simulator orchestrating swarm updates and telemetry ticks.
package sim

import (
	"sync"
	"time"

	"swarmsim/internal/config"
	"swarmsim/internal/geom"
	"swarmsim/internal/swarm"
	"swarmsim/internal/target"
	"swarmsim/internal/telemetry"
)

// SwarmWriter is an interface to support different output writers.
type SwarmWriter interface {
	Write(telemetry.SwarmRow) error
}

// Optional: writers can also support batch mode.
type batchSwarmWriter interface {
	WriteBatch([]telemetry.SwarmRow) error
}

// EventWriter handles discrete swarm events.
type EventWriter interface {
	WriteEvent(telemetry.EventRow) error
}

// Optional: event writers may support batch mode.
type batchEventWriter interface {
	WriteEvents([]telemetry.EventRow) error
}

// StateWriter handles simulation state rows.
type StateWriter interface {
	WriteState(telemetry.SimulationStateRow) error
}

// Simulator owns the swarm registry, the scripted target vessel, and the
// configured writers. All mutation happens under mu in tick order.
type Simulator struct {
	clusterID    string
	registry     *swarm.Registry
	vessel       *target.Vessel
	writer       SwarmWriter
	eventWriter  EventWriter
	tickInterval time.Duration
	cfg          *config.SimulationConfig
	now          func() time.Time
	mu           sync.Mutex
}

// NewSimulator builds the registry from config, spawns the configured
// clusters, and wires the tracked target.
func NewSimulator(clusterID string, cfg *config.SimulationConfig, writer SwarmWriter, eventWriter EventWriter, tickInterval time.Duration) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	reg := swarm.NewRegistry(cfg.SwarmConfig(), seed)

	s := &Simulator{
		clusterID:    clusterID,
		registry:     reg,
		writer:       writer,
		eventWriter:  eventWriter,
		tickInterval: tickInterval,
		cfg:          cfg,
		now:          time.Now,
	}

	for _, grp := range cfg.Spawns {
		count := grp.Count
		if count <= 0 {
			count = 1
		}
		reg.SpawnCluster(grp.Center.Vec3(), count)
	}

	if cfg.Target != nil {
		wps := make([]geom.Vec3, len(cfg.Target.Waypoints))
		for i, p := range cfg.Target.Waypoints {
			wps[i] = p.Vec3()
		}
		s.vessel = target.NewVessel(cfg.Target.Start.Vec3(), cfg.Target.Speed, wps)
		reg.SetTarget(s.vessel)
	}

	return s
}

// Registry exposes the underlying swarm registry for tests and the admin UI.
func (s *Simulator) Registry() *swarm.Registry { return s.registry }

// GetConfig returns the simulation configuration.
func (s *Simulator) GetConfig() *config.SimulationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SpawnCluster adds swarms around a center point at runtime.
func (s *Simulator) SpawnCluster(center geom.Vec3, count int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	spawned := s.registry.SpawnCluster(center, count)
	ids := make([]string, len(spawned))
	for i, sw := range spawned {
		ids[i] = sw.ID
	}
	return ids
}

// MoveTarget relocates the tracked vessel, if one is configured.
func (s *Simulator) MoveTarget(p geom.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vessel != nil {
		s.vessel.Teleport(p)
	}
}

// Damage applies damage to one swarm.
func (s *Simulator) Damage(id string, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.Damage(id, amount)
}

// SwarmHealth summarizes one swarm for the admin UI.
type SwarmHealth struct {
	ID        string  `json:"id"`
	State     string  `json:"state"`
	Formation string  `json:"formation"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	Units     int     `json:"units"`
}

// Health returns aggregated health information for all swarms.
func (s *Simulator) Health() []SwarmHealth {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []SwarmHealth
	for _, sw := range s.registry.Swarms() {
		result = append(result, SwarmHealth{
			ID:        sw.ID,
			State:     string(sw.State),
			Formation: string(sw.Formation),
			Health:    sw.Health,
			MaxHealth: sw.MaxHealth,
			Units:     sw.UnitCount(),
		})
	}
	return result
}

// Snapshot returns the latest telemetry rows for all swarms.
func (s *Simulator) Snapshot() []telemetry.SwarmRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulator) snapshotLocked() []telemetry.SwarmRow {
	var rows []telemetry.SwarmRow
	ts := s.now().UTC()
	for _, sw := range s.registry.Swarms() {
		rows = append(rows, telemetry.SwarmRow{
			ClusterID: s.clusterID,
			SwarmID:   sw.ID,
			X:         sw.GroupPosition.X,
			Y:         sw.GroupPosition.Y,
			Z:         sw.GroupPosition.Z,
			State:     string(sw.State),
			Formation: string(sw.Formation),
			Blend:     sw.FormationBlend,
			Health:    sw.Health,
			Units:     sw.UnitCount(),
			Ambushing: sw.IsAmbushing,
			Timestamp: ts,
		})
	}
	return rows
}

func (s *Simulator) eventRow(e swarm.Event) telemetry.EventRow {
	return telemetry.EventRow{
		ClusterID: s.clusterID,
		SwarmID:   e.SwarmID,
		Kind:      string(e.Kind),
		State:     string(e.State),
		Formation: string(e.Formation),
		X:         e.Position.X,
		Y:         e.Position.Y,
		Z:         e.Position.Z,
		PeerIDs:   e.PeerIDs,
		Timestamp: s.now().UTC(),
	}
}
