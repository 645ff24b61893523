package swarm

import (
	"math"

	"swarmsim/internal/geom"
)

const (
	fleeHealthFraction = 0.3
	fleeChancePerSec   = 0.2
	disengageFactor    = 1.2
	loseTargetFactor   = 1.5
	reformHealFraction = 0.3
	blendDuration      = 2.0
	dissipateDecay     = 0.95
	dissipateSpread    = 1.015
)

// formationPool lists the formations each state prefers when re-rolling.
var formationPool = map[State][]Formation{
	StateDormant:   {FormationCloud},
	StateGathering: {FormationSphere},
	StateSearching: {FormationCloud, FormationWave, FormationSphere},
	StatePursuing:  {FormationVortex, FormationFunnel, FormationSpiral},
	StateAttacking: {FormationFunnel, FormationVortex, FormationSpiral, FormationNet},
	StateReforming: {FormationSphere},
	StateFleeing:   {FormationCloud, FormationSphere},
}

// AggressiveFormations is the pool the coordination bus draws from when it
// diversifies alerted swarms.
var AggressiveFormations = []Formation{FormationFunnel, FormationVortex, FormationSpiral, FormationNet}

// stepState evaluates the transition table for one swarm, then applies the
// state's group velocity policy. Runs before unit movement each tick.
func (r *Registry) stepState(s *Swarm, dt float64) {
	if s.State == StateDissipating {
		r.stepDissipating(s, dt)
		return
	}

	s.StateTimer -= dt
	s.FormationChangeTimer -= dt
	if s.FormationChangeTimer <= 0 {
		r.rollFormation(s)
		s.FormationChangeTimer = 4 + r.rng.Float64()*4
	}

	dist, hasTarget := r.targetDistance(s)

	switch s.State {
	case StateDormant:
		if s.StateTimer <= 0 || (hasTarget && dist <= r.cfg.DetectionRange) {
			r.enterState(s, StateGathering)
		}
	case StateGathering:
		if s.StateTimer <= 0 {
			r.enterState(s, StateSearching)
		}
	case StateSearching:
		if hasTarget && dist <= r.cfg.DetectionRange {
			r.enterState(s, StatePursuing)
		} else if s.StateTimer <= 0 {
			r.enterState(s, StateDormant)
		}
	case StatePursuing:
		if !hasTarget || dist > r.cfg.DetectionRange*loseTargetFactor {
			r.enterState(s, StateSearching)
		} else if dist <= r.cfg.AttackRange {
			r.enterState(s, StateAttacking)
		}
	case StateAttacking:
		if !hasTarget || dist > r.cfg.AttackRange*disengageFactor {
			r.enterState(s, StatePursuing)
		} else {
			if s.Health < s.MaxHealth*fleeHealthFraction && r.rng.Float64() < fleeChancePerSec*dt {
				r.enterState(s, StateFleeing)
				break
			}
			r.tryStrike(s, dist)
		}
	case StateReforming:
		s.Health = math.Min(s.MaxHealth, s.Health+r.cfg.RegenRate*s.MaxHealth*dt)
		if s.StateTimer <= 0 {
			r.exitReforming(s, dist, hasTarget)
		}
	case StateFleeing:
		if s.StateTimer <= 0 {
			r.enterState(s, StateReforming)
		}
	}

	r.applyVelocityPolicy(s, dt)
}

// enterState transitions the swarm, records the interrupted state, assigns
// a fresh timer, and re-rolls the preferred formation.
func (r *Registry) enterState(s *Swarm, next State) {
	if s.State == StateDissipating {
		return
	}
	s.PreviousState = s.State
	s.State = next
	s.StateTimer = r.stateDuration(next)

	if next == StateReforming && s.PreviousState == StateFleeing {
		s.Health = math.Min(s.MaxHealth, s.Health+s.MaxHealth*reformHealFraction)
	}
	if next != StateAttacking && next != StateGathering {
		s.IsAmbushing = false
	}

	r.rollFormation(s)
	r.emit(Event{Kind: EventStateChange, SwarmID: s.ID, Position: s.GroupPosition, State: next, Formation: s.TargetFormation})
}

func (r *Registry) stateDuration(st State) float64 {
	jitter := 0.5 + r.rng.Float64()
	switch st {
	case StateDormant:
		return r.cfg.DormantTime * jitter
	case StateGathering:
		return r.cfg.GatherTime * jitter
	case StateSearching:
		return r.cfg.SearchTime * jitter
	case StateFleeing:
		return r.cfg.FleeTime * jitter
	case StateReforming:
		return r.cfg.ReformTime * jitter
	}
	return 0
}

// rollFormation picks a target formation from the state's pool.
func (r *Registry) rollFormation(s *Swarm) {
	pool := formationPool[s.State]
	if len(pool) == 0 {
		return
	}
	f := pool[r.rng.Intn(len(pool))]
	r.setTargetFormation(s, f)
}

// setTargetFormation begins a formation transition unless f already holds.
func (r *Registry) setTargetFormation(s *Swarm, f Formation) {
	if f == s.Formation && f == s.TargetFormation {
		return
	}
	if f == s.TargetFormation {
		return
	}
	s.TargetFormation = f
	s.FormationBlend = 0
	r.emit(Event{Kind: EventFormationChange, SwarmID: s.ID, Position: s.GroupPosition, State: s.State, Formation: f})
}

// stepBlend advances formation blend; the label commits once settled.
func stepBlend(s *Swarm, dt float64) {
	if s.Formation == s.TargetFormation {
		s.FormationBlend = 1
		return
	}
	s.FormationBlend = math.Min(1, s.FormationBlend+dt/blendDuration)
	if s.FormationBlend >= 1 {
		s.Formation = s.TargetFormation
	}
}

// tryStrike emits a damage-attempt event when the target is inside strike
// distance and the attack cooldown has elapsed.
func (r *Registry) tryStrike(s *Swarm, dist float64) {
	if dist > r.cfg.StrikeRange {
		return
	}
	if s.elapsed-s.LastAttackTime < r.cfg.AttackCooldown {
		return
	}
	s.LastAttackTime = s.elapsed
	r.emit(Event{Kind: EventAttack, SwarmID: s.ID, Position: s.GroupPosition, State: s.State, Formation: s.Formation})
}

// exitReforming resumes the interrupted state when the target is still in
// its range, otherwise falls back to Searching.
func (r *Registry) exitReforming(s *Swarm, dist float64, hasTarget bool) {
	if hasTarget {
		switch s.PreviousState {
		case StateAttacking:
			if dist <= r.cfg.AttackRange*disengageFactor {
				r.enterState(s, StateAttacking)
				return
			}
		case StatePursuing:
			if dist <= r.cfg.DetectionRange {
				r.enterState(s, StatePursuing)
				return
			}
		}
	}
	r.enterState(s, StateSearching)
}

// applyVelocityPolicy computes the desired group velocity for the current
// state and eases the swarm toward it.
func (r *Registry) applyVelocityPolicy(s *Swarm, dt float64) {
	base := r.cfg.MaxSpeed * 0.6
	var desired geom.Vec3
	toTarget := s.TargetPosition.Sub(s.GroupPosition)

	switch s.State {
	case StateDormant:
		desired = geom.Vec3{
			X: math.Sin(s.elapsed*0.2 + s.wanderPhase),
			Z: math.Cos(s.elapsed*0.17 + s.wanderPhase),
		}.Scale(base * 0.1)
	case StateGathering:
		desired = toTarget.Normalize().Scale(base * 0.3)
	case StateSearching:
		desired = geom.Vec3{
			X: math.Sin(s.elapsed*0.35 + s.wanderPhase),
			Y: math.Sin(s.elapsed*0.11+s.wanderPhase) * 0.2,
			Z: math.Cos(s.elapsed*0.27 + s.wanderPhase*1.7),
		}.Scale(base * 0.7)
	case StatePursuing:
		desired = toTarget.Normalize().Scale(base * 1.4)
	case StateAttacking:
		desired = r.attackVelocity(s, toTarget, base)
	case StateReforming:
		desired = s.GroupVelocity.Scale(0.2)
	case StateFleeing:
		if r.target != nil {
			away := s.GroupPosition.Sub(r.target.Position()).Normalize()
			desired = away.Scale(base * 1.8)
		} else {
			desired = geom.Vec3{
				X: math.Sin(s.wanderPhase * 13),
				Y: 0.1,
				Z: math.Cos(s.wanderPhase * 7),
			}.Normalize().Scale(base * 1.8)
		}
	}

	ease := math.Min(1, dt*2)
	s.GroupVelocity = s.GroupVelocity.Add(desired.Sub(s.GroupVelocity).Scale(ease))
}

// attackVelocity selects the formation-specific attack pattern.
func (r *Registry) attackVelocity(s *Swarm, toTarget geom.Vec3, base float64) geom.Vec3 {
	dist := toTarget.Length()
	dir := toTarget.Normalize()
	switch s.Formation {
	case FormationFunnel:
		// Spear rush straight through the target.
		return dir.Scale(base * 1.6)
	case FormationVortex:
		// Orbit: mostly tangential with a slight inward pull.
		tangent := geom.Vec3{X: -dir.Z, Y: 0, Z: dir.X}
		return tangent.Scale(base * 1.2).Add(dir.Scale(base * 0.2))
	case FormationNet:
		// Surround first, strike once the net has closed.
		if dist > r.cfg.AttackRange*0.6 {
			return dir.Scale(base * 0.5)
		}
		return dir.Scale(base * 1.5)
	case FormationSpiral:
		// Alternate rush and circle phases.
		if math.Sin(s.elapsed*0.8) > 0 {
			return dir.Scale(base * 1.5)
		}
		tangent := geom.Vec3{X: -dir.Z, Y: 0, Z: dir.X}
		return tangent.Scale(base * 1.1)
	}
	return dir.Scale(base)
}

// stepDissipating runs the terminal fade: forward motion decays, units
// drift outward, and the swarm is flagged for removal once the window ends.
func (r *Registry) stepDissipating(s *Swarm, dt float64) {
	s.GroupVelocity = s.GroupVelocity.Scale(dissipateDecay)
	for i := range s.Units.Positions {
		s.Units.Positions[i] = s.Units.Positions[i].Scale(dissipateSpread)
		s.Units.Velocities[i] = s.Units.Velocities[i].Scale(dissipateDecay)
	}
	s.Health = math.Max(0, s.Health-s.MaxHealth*dt/r.cfg.FadeSeconds)
	s.dissipateTimer -= dt
}
