package swarm

// notifyNearby propagates an engage alert from origin to every live swarm
// inside the coordination radius. Alerted swarms escalate to Attacking or
// Pursuing depending on their own range to the target, and each draws an
// aggressive formation different from the origin's to diversify the pack.
func (r *Registry) notifyNearby(origin *Swarm) {
	if origin.elapsed-origin.LastAlertTime < r.cfg.AlertCooldown && origin.LastAlertTime > 0 {
		return
	}
	origin.LastAlertTime = origin.elapsed

	var alerted []string
	for _, peer := range r.swarms {
		if peer == origin || !peer.Alive() {
			continue
		}
		if peer.GroupPosition.Sub(origin.GroupPosition).Length() > r.cfg.CoordinationRadius {
			continue
		}
		if peer.State == StateAttacking {
			continue
		}

		if r.target != nil {
			peer.TargetPosition = r.target.Position()
		}
		dist, hasTarget := r.targetDistance(peer)
		if hasTarget && dist <= r.cfg.AttackRange {
			r.enterState(peer, StateAttacking)
		} else {
			r.enterState(peer, StatePursuing)
		}
		r.setTargetFormation(peer, r.pickAggressiveFormation(origin.TargetFormation))
		alerted = append(alerted, peer.ID)
	}

	if len(alerted) > 0 {
		r.emit(Event{
			Kind:      EventAlert,
			SwarmID:   origin.ID,
			Position:  origin.GroupPosition,
			State:     origin.State,
			Formation: origin.TargetFormation,
			PeerIDs:   alerted,
		})
	}
}

// pickAggressiveFormation draws from the aggressive pool, avoiding the
// origin's current choice.
func (r *Registry) pickAggressiveFormation(avoid Formation) Formation {
	for tries := 0; tries < 8; tries++ {
		f := AggressiveFormations[r.rng.Intn(len(AggressiveFormations))]
		if f != avoid {
			return f
		}
	}
	return AggressiveFormations[0]
}
