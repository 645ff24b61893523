package swarm

import (
	"math"

	"swarmsim/internal/geom"
)

// facingEpsilon is the minimum speed before a unit's facing angle follows
// its velocity; below it the angle holds to avoid jitter.
const facingEpsilon = 0.05

// stepFlock advances every unit of s by one tick toward its formation
// offset. Classic boid rules: cohesion toward the assigned offset,
// separation from close neighbors, alignment with the local average
// heading. The neighbor scan is O(n^2) per swarm; a spatial bucket could
// replace it without changing behavior.
func stepFlock(s *Swarm, targets []geom.Vec3, dt float64, cfg *Config) {
	n := s.Units.Count()
	sepRadius := cfg.NeighborRadius
	aliRadius := cfg.NeighborRadius * 2

	for i := 0; i < n; i++ {
		pos := s.Units.Positions[i]

		// Cohesion: steer toward the formation slot.
		cohesion := targets[i].Sub(pos).Scale(cfg.CohesionGain)

		// Separation and alignment over the neighborhood.
		var sep, ali geom.Vec3
		sepCount, aliCount := 0, 0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			delta := pos.Sub(s.Units.Positions[j])
			dist := delta.Length()
			if dist < sepRadius {
				if dist < 0.01 {
					dist = 0.01
				}
				sep = sep.Add(delta.Scale(1 / dist / dist))
				sepCount++
			}
			if dist < aliRadius {
				ali = ali.Add(s.Units.Velocities[j])
				aliCount++
			}
		}
		if sepCount > 0 {
			sep = sep.Scale(1 / float64(sepCount)).Scale(cfg.SeparationGain)
		}
		if aliCount > 0 {
			ali = ali.Scale(1 / float64(aliCount)).Normalize().Scale(cfg.AlignmentGain)
		}

		accel := cohesion.Add(sep).Add(ali).ClampLength(cfg.MaxForce)

		vel := s.Units.Velocities[i].Add(accel.Scale(dt)).ClampLength(cfg.MaxSpeed)
		s.Units.Velocities[i] = vel
		s.Units.Positions[i] = pos.Add(vel.Scale(dt))

		if speed := vel.Length(); speed > facingEpsilon {
			s.Units.Rotations[i] = math.Atan2(vel.X, vel.Z)
		}
	}
}

// formationTargets fills dst with the current per-unit formation offsets.
// While a transition is in flight the offsets come from the target
// formation; the flock's own approach dynamics produce the visible blend.
func formationTargets(s *Swarm, toTarget geom.Vec3, dst []geom.Vec3, cfg *Config) {
	kind := s.Formation
	if s.Formation != s.TargetFormation {
		kind = s.TargetFormation
	}
	n := s.Units.Count()
	for i := 0; i < n; i++ {
		dst[i] = FormationOffset(kind, i, n, s.elapsed, toTarget, cfg)
	}
}
