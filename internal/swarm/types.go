// Core data model for simulated creature swarms.
package swarm

import (
	"swarmsim/internal/geom"
)

// State is the macro behavioral state of one swarm.
type State string

const (
	StateDormant     State = "dormant"
	StateGathering   State = "gathering"
	StateSearching   State = "searching"
	StatePursuing    State = "pursuing"
	StateAttacking   State = "attacking"
	StateReforming   State = "reforming"
	StateFleeing     State = "fleeing"
	StateDissipating State = "dissipating"
)

// Formation is the geometric arrangement the units converge toward.
type Formation string

const (
	FormationCloud  Formation = "cloud"
	FormationSphere Formation = "sphere"
	FormationVortex Formation = "vortex"
	FormationWave   Formation = "wave"
	FormationFunnel Formation = "funnel"
	FormationWall   Formation = "wall"
	FormationSpiral Formation = "spiral"
	FormationNet    Formation = "net"
)

// Role is assigned per unit at spawn time and exported for rendering.
type Role uint8

const (
	RoleScout Role = iota
	RoleAttacker
	RoleSupport
	RoleDisruptor
)

func (r Role) String() string {
	switch r {
	case RoleScout:
		return "scout"
	case RoleAttacker:
		return "attacker"
	case RoleSupport:
		return "support"
	case RoleDisruptor:
		return "disruptor"
	}
	return "unknown"
}

// Units holds the per-unit buffers of one swarm as parallel slices.
// Length is fixed at spawn; buffers are recycled through the registry arena.
type Units struct {
	Positions  []geom.Vec3
	Velocities []geom.Vec3
	Rotations  []float64
	Roles      []Role
}

// Count returns the number of units in the buffers.
func (u *Units) Count() int { return len(u.Positions) }

// Target is the tracked entity swarms hunt. Position is required; targets
// that also move expose a velocity for prediction.
type Target interface {
	Position() geom.Vec3
}

// MovingTarget is an optional extension of Target for predictive aiming.
type MovingTarget interface {
	Target
	Velocity() geom.Vec3
}

// Swarm is one cluster of units with a shared transform and group brain.
// Units are simulated relative to GroupPosition.
type Swarm struct {
	ID            string
	GroupPosition geom.Vec3
	GroupVelocity geom.Vec3

	Units Units

	Health    float64
	MaxHealth float64

	State         State
	PreviousState State
	StateTimer    float64

	Formation       Formation
	TargetFormation Formation
	FormationBlend  float64

	TargetPosition geom.Vec3
	IsAmbushing    bool

	LastAttackTime       float64
	LastAlertTime        float64
	FormationChangeTimer float64

	// elapsed drives time-parametrized formations; dissipateTimer counts
	// down the terminal fade window; wanderPhase de-synchronizes the
	// wander of swarms spawned in the same batch.
	elapsed        float64
	dissipateTimer float64
	wanderPhase    float64
}

// UnitCount returns the fixed agent count of the swarm.
func (s *Swarm) UnitCount() int { return s.Units.Count() }

// Alive reports whether the swarm is still in a live (non-terminal) state.
func (s *Swarm) Alive() bool { return s.State != StateDissipating }
