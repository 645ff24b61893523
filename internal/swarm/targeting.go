package swarm

import (
	"swarmsim/internal/geom"
)

const (
	predictionJitter = 3.0
	flankMinDist     = 20.0
	flankSpread      = 30.0
	interceptLead    = 1.5
	ambushTrigger    = 1.5 // multiple of attack range that springs an ambush
	ambushChance     = 0.15
)

// stepTargeting recomputes the swarm's tactical aim point. The whole layer
// is gated by a soft Poisson check scaled by the intelligence level, so
// smarter swarms re-aim more often but never deterministically every tick.
func (r *Registry) stepTargeting(s *Swarm, dt float64) {
	if r.target == nil || s.State == StateDissipating {
		return
	}

	r.stepAmbush(s, dt)

	if r.rng.Float64() >= r.cfg.Intelligence*dt {
		return
	}

	tpos := r.target.Position()
	aim := tpos
	if mt, ok := r.target.(MovingTarget); ok {
		aim = tpos.Add(mt.Velocity().Scale(r.cfg.PredictionHorizon))
	}
	aim = aim.Add(geom.Vec3{
		X: (r.rng.Float64()*2 - 1) * predictionJitter,
		Y: (r.rng.Float64()*2 - 1) * predictionJitter * 0.3,
		Z: (r.rng.Float64()*2 - 1) * predictionJitter,
	})

	switch s.State {
	case StatePursuing:
		// Occasional flank: offset perpendicular to the approach line,
		// randomly left or right.
		if r.rng.Float64() < 0.4 {
			dir := tpos.Sub(s.GroupPosition).Normalize()
			perp := geom.Vec3{X: -dir.Z, Y: 0, Z: dir.X}
			side := 1.0
			if r.rng.Float64() < 0.5 {
				side = -1
			}
			flank := flankMinDist + r.rng.Float64()*flankSpread
			aim = aim.Add(perp.Scale(side * flank))
		}
	case StateAttacking:
		// Occasional interception ahead of the target's motion.
		if mt, ok := r.target.(MovingTarget); ok && r.rng.Float64() < 0.3 {
			vel := mt.Velocity()
			aim = tpos.Add(vel.Scale(r.cfg.PredictionHorizon * interceptLead))
		}
	}

	s.TargetPosition = aim
}

// stepAmbush primes a dormant swarm when the target lingers inside the
// ambush band, and springs the trap once it closes within striking reach.
func (r *Registry) stepAmbush(s *Swarm, dt float64) {
	tpos := r.target.Position()
	dist := tpos.Sub(s.GroupPosition).Length()

	if s.State == StateDormant && !s.IsAmbushing {
		if dist > r.cfg.DetectionRange && dist >= r.cfg.AmbushNear && dist <= r.cfg.AmbushFar {
			if r.rng.Float64() < ambushChance*dt {
				r.enterState(s, StateGathering)
				s.TargetPosition = tpos
				s.IsAmbushing = true
			}
		}
		return
	}

	if s.IsAmbushing && dist <= r.cfg.AttackRange*ambushTrigger {
		s.IsAmbushing = false
		r.enterState(s, StateAttacking)
		r.notifyNearby(s)
	}
}

// targetDistance returns the distance to the tracked target, if any.
func (r *Registry) targetDistance(s *Swarm) (float64, bool) {
	if r.target == nil {
		return 0, false
	}
	return r.target.Position().Sub(s.GroupPosition).Length(), true
}
