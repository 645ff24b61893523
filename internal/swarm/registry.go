// Registry owning swarm lifecycle and the per-frame update pipeline.
package swarm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"swarmsim/internal/geom"
)

// Registry owns every live swarm and advances them in insertion order. All
// randomness flows through a single seeded source so runs are reproducible.
// The model is strictly sequential: one Update call per external frame, no
// internal goroutines.
type Registry struct {
	cfg    Config
	swarms []*Swarm
	index  map[string]*Swarm
	target Target
	rng    *rand.Rand

	events  []Event
	spawned int

	// arena of recycled unit buffers; spawn after cull reuses them.
	freeUnits []Units
	scratch   []geom.Vec3
}

// NewRegistry creates an empty registry with the given tuning and seed.
func NewRegistry(cfg Config, seed int64) *Registry {
	cfg.Normalize()
	return &Registry{
		cfg:     cfg,
		index:   make(map[string]*Swarm),
		rng:     rand.New(rand.NewSource(seed)),
		scratch: make([]geom.Vec3, cfg.UnitCount),
	}
}

// Config returns the normalized tuning in effect.
func (r *Registry) Config() Config { return r.cfg }

// Reset removes all swarms and pending events. The random source keeps its
// sequence; reseed by constructing a new registry.
func (r *Registry) Reset() {
	for _, s := range r.swarms {
		r.freeUnits = append(r.freeUnits, s.Units)
	}
	r.swarms = nil
	r.index = make(map[string]*Swarm)
	r.events = nil
	r.target = nil
}

// SetTarget registers the tracked entity. A nil target disables targeting
// and all range-dependent transitions for subsequent ticks.
func (r *Registry) SetTarget(t Target) { r.target = t }

// Target returns the tracked entity, if any.
func (r *Registry) Target() Target { return r.target }

// Spawn creates one swarm at the given world position.
func (r *Registry) Spawn(pos geom.Vec3) *Swarm {
	units := r.takeUnits()
	n := units.Count()
	for i := 0; i < n; i++ {
		units.Positions[i] = geom.Vec3{
			X: (r.rng.Float64()*2 - 1) * r.cfg.FormationRadius,
			Y: (r.rng.Float64()*2 - 1) * r.cfg.FormationRadius,
			Z: (r.rng.Float64()*2 - 1) * r.cfg.FormationRadius,
		}
		units.Velocities[i] = geom.Vec3{
			X: r.rng.Float64()*2 - 1,
			Y: r.rng.Float64()*2 - 1,
			Z: r.rng.Float64()*2 - 1,
		}
		units.Rotations[i] = r.rng.Float64() * 2 * math.Pi
		units.Roles[i] = Role(i * 4 / n)
	}

	r.spawned++
	s := &Swarm{
		ID:              fmt.Sprintf("swarm-%d-%s", r.spawned, uuid.New().String()),
		GroupPosition:   pos,
		Units:           units,
		Health:          r.cfg.MaxHealth,
		MaxHealth:       r.cfg.MaxHealth,
		State:           StateDormant,
		PreviousState:   StateDormant,
		Formation:       FormationCloud,
		TargetFormation: FormationCloud,
		FormationBlend:  1,
		TargetPosition:  pos,
		wanderPhase:     r.rng.Float64() * 2 * math.Pi,
	}
	s.StateTimer = r.stateDuration(StateDormant)
	s.FormationChangeTimer = 4 + r.rng.Float64()*4

	r.swarms = append(r.swarms, s)
	r.index[s.ID] = s
	return s
}

// SpawnCluster creates count swarms jittered around a center point.
func (r *Registry) SpawnCluster(center geom.Vec3, count int) []*Swarm {
	if count <= 0 {
		return nil
	}
	out := make([]*Swarm, 0, count)
	for i := 0; i < count; i++ {
		jitter := geom.Vec3{
			X: (r.rng.Float64()*2 - 1) * r.cfg.ClusterJitter,
			Y: (r.rng.Float64()*2 - 1) * r.cfg.ClusterJitter * 0.3,
			Z: (r.rng.Float64()*2 - 1) * r.cfg.ClusterJitter,
		}
		out = append(out, r.Spawn(center.Add(jitter)))
	}
	return out
}

// Update advances every swarm by one tick. Invalid dt values are replaced
// by the configured default so a bad frame can never stall the loop.
func (r *Registry) Update(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		dt = r.cfg.DefaultTick
	}

	for _, s := range r.swarms {
		r.stepTargeting(s, dt)
		r.stepState(s, dt)

		s.GroupPosition = s.GroupPosition.Add(s.GroupVelocity.Scale(dt))

		var toTarget geom.Vec3
		if r.target != nil {
			toTarget = r.target.Position().Sub(s.GroupPosition)
		}
		formationTargets(s, toTarget, r.scratch, &r.cfg)
		stepFlock(s, r.scratch, dt, &r.cfg)

		stepBlend(s, dt)
		r.clampToWorld(s)
		s.elapsed += dt
	}

	r.cull()
}

// Damage applies damage to one swarm. Lethal damage forces the terminal
// Dissipating state on the same call; significant but survivable damage
// interrupts into Reforming.
func (r *Registry) Damage(id string, amount float64) {
	s, ok := r.index[id]
	if !ok || amount <= 0 || s.State == StateDissipating {
		return
	}
	s.Health -= amount
	if s.Health <= 0 {
		s.Health = 0
		r.kill(s)
		return
	}
	if amount >= s.MaxHealth*r.cfg.SignificantDamage && s.State != StateReforming {
		r.enterState(s, StateReforming)
	}
}

// kill moves a swarm into the irreversible Dissipating fade.
func (r *Registry) kill(s *Swarm) {
	s.PreviousState = s.State
	s.State = StateDissipating
	s.dissipateTimer = r.cfg.FadeSeconds
	s.IsAmbushing = false
	r.emit(Event{Kind: EventStateChange, SwarmID: s.ID, Position: s.GroupPosition, State: StateDissipating, Formation: s.Formation})
}

// cull removes swarms whose dissipation window has fully elapsed, returning
// their unit buffers to the arena.
func (r *Registry) cull() {
	kept := r.swarms[:0]
	for _, s := range r.swarms {
		if s.State == StateDissipating && s.Health <= 0 && s.dissipateTimer <= 0 {
			r.emit(Event{Kind: EventDissipated, SwarmID: s.ID, Position: s.GroupPosition, State: s.State, Formation: s.Formation})
			delete(r.index, s.ID)
			r.freeUnits = append(r.freeUnits, s.Units)
			continue
		}
		kept = append(kept, s)
	}
	r.swarms = kept
}

// Swarms returns the live swarm list in insertion order. Callers must treat
// the swarms and their unit buffers as read-only; the renderer consumes
// them after Update returns.
func (r *Registry) Swarms() []*Swarm {
	out := make([]*Swarm, len(r.swarms))
	copy(out, r.swarms)
	return out
}

// Lookup returns a swarm by id.
func (r *Registry) Lookup(id string) (*Swarm, bool) {
	s, ok := r.index[id]
	return s, ok
}

// State returns the state of a swarm by id.
func (r *Registry) State(id string) (State, bool) {
	if s, ok := r.index[id]; ok {
		return s.State, true
	}
	return "", false
}

// Formation returns the settled formation of a swarm by id.
func (r *Registry) Formation(id string) (Formation, bool) {
	if s, ok := r.index[id]; ok {
		return s.Formation, true
	}
	return "", false
}

// DrainEvents returns and clears the pending event queue.
func (r *Registry) DrainEvents() []Event {
	ev := r.events
	r.events = nil
	return ev
}

func (r *Registry) emit(e Event) { r.events = append(r.events, e) }

// takeUnits reuses a recycled buffer set when available.
func (r *Registry) takeUnits() Units {
	if n := len(r.freeUnits); n > 0 {
		u := r.freeUnits[n-1]
		r.freeUnits = r.freeUnits[:n-1]
		return u
	}
	n := r.cfg.UnitCount
	return Units{
		Positions:  make([]geom.Vec3, n),
		Velocities: make([]geom.Vec3, n),
		Rotations:  make([]float64, n),
		Roles:      make([]Role, n),
	}
}
