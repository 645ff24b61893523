package swarm

// boundaryDamping inverts and damps the velocity component of a clamped
// axis, so swarms bounce softly off the world edge.
const boundaryDamping = -0.5

// clampToWorld keeps the swarm inside the horizontal extent and the
// vertical band. Any axis clamp bounces the velocity and forces Reforming,
// recording the interrupted state.
func (r *Registry) clampToWorld(s *Swarm) {
	hit := false
	ext := r.cfg.WorldExtent

	if s.GroupPosition.X > ext {
		s.GroupPosition.X = ext
		s.GroupVelocity.X *= boundaryDamping
		hit = true
	} else if s.GroupPosition.X < -ext {
		s.GroupPosition.X = -ext
		s.GroupVelocity.X *= boundaryDamping
		hit = true
	}
	if s.GroupPosition.Z > ext {
		s.GroupPosition.Z = ext
		s.GroupVelocity.Z *= boundaryDamping
		hit = true
	} else if s.GroupPosition.Z < -ext {
		s.GroupPosition.Z = -ext
		s.GroupVelocity.Z *= boundaryDamping
		hit = true
	}
	if s.GroupPosition.Y > r.cfg.WorldCeiling {
		s.GroupPosition.Y = r.cfg.WorldCeiling
		s.GroupVelocity.Y *= boundaryDamping
		hit = true
	} else if s.GroupPosition.Y < r.cfg.WorldFloor {
		s.GroupPosition.Y = r.cfg.WorldFloor
		s.GroupVelocity.Y *= boundaryDamping
		hit = true
	}

	if hit && s.State != StateDissipating && s.State != StateReforming {
		r.enterState(s, StateReforming)
	}
}
