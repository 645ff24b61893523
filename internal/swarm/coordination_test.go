package swarm

import (
	"testing"

	"swarmsim/internal/geom"
)

func TestNotifyNearby_AlertsPeersInRadius(t *testing.T) {
	r := newTestRegistry(t)
	origin := r.Spawn(geom.Vec3{})
	near := r.Spawn(geom.Vec3{X: r.cfg.CoordinationRadius * 0.5})
	far := r.Spawn(geom.Vec3{X: r.cfg.CoordinationRadius * 3})
	r.SetTarget(&fixedTarget{pos: geom.Vec3{X: r.cfg.AttackRange * 0.5}})
	origin.State = StateAttacking
	r.DrainEvents()

	r.notifyNearby(origin)

	if near.State != StateAttacking && near.State != StatePursuing {
		t.Fatalf("expected nearby peer escalated, got %s", near.State)
	}
	if far.State != StateDormant {
		t.Fatalf("peer outside radius should stay dormant, got %s", far.State)
	}

	var alert *Event
	for _, e := range r.DrainEvents() {
		if e.Kind == EventAlert {
			ev := e
			alert = &ev
		}
	}
	if alert == nil {
		t.Fatalf("expected alert event")
	}
	if len(alert.PeerIDs) != 1 || alert.PeerIDs[0] != near.ID {
		t.Fatalf("unexpected peer list: %v", alert.PeerIDs)
	}
}

func TestNotifyNearby_EscalationDependsOnRange(t *testing.T) {
	r := newTestRegistry(t)
	origin := r.Spawn(geom.Vec3{})
	adjacent := r.Spawn(geom.Vec3{X: 10})
	distant := r.Spawn(geom.Vec3{X: r.cfg.CoordinationRadius * 0.9})
	r.SetTarget(&fixedTarget{pos: geom.Vec3{X: 10}})

	r.notifyNearby(origin)

	if adjacent.State != StateAttacking {
		t.Fatalf("peer within attack range should attack, got %s", adjacent.State)
	}
	if distant.State != StatePursuing {
		t.Fatalf("peer out of attack range should pursue, got %s", distant.State)
	}
}

func TestNotifyNearby_DiversifiesFormations(t *testing.T) {
	r := newTestRegistry(t)
	origin := r.Spawn(geom.Vec3{})
	origin.TargetFormation = FormationFunnel
	peer := r.Spawn(geom.Vec3{X: 20})
	r.SetTarget(&fixedTarget{pos: geom.Vec3{X: 10}})

	r.notifyNearby(origin)

	if peer.TargetFormation == FormationFunnel {
		t.Fatalf("alerted peer should avoid the origin's formation")
	}
	found := false
	for _, f := range AggressiveFormations {
		if peer.TargetFormation == f {
			found = true
		}
	}
	if !found {
		t.Fatalf("alerted peer formation %s not in aggressive pool", peer.TargetFormation)
	}
}

func TestNotifyNearby_CooldownSuppressesRepeat(t *testing.T) {
	r := newTestRegistry(t)
	origin := r.Spawn(geom.Vec3{})
	origin.elapsed = 100
	peer := r.Spawn(geom.Vec3{X: 20})
	r.SetTarget(&fixedTarget{pos: geom.Vec3{X: 10}})

	r.notifyNearby(origin)
	peer.State = StateDormant
	r.DrainEvents()

	// Inside the cooldown window the second alert is dropped.
	origin.elapsed += r.cfg.AlertCooldown * 0.5
	r.notifyNearby(origin)
	if peer.State != StateDormant {
		t.Fatalf("expected cooldown to suppress the repeat alert")
	}

	origin.elapsed += r.cfg.AlertCooldown
	r.notifyNearby(origin)
	if peer.State == StateDormant {
		t.Fatalf("expected alert after cooldown expiry")
	}
}

func TestNotifyNearby_SkipsDissipatingPeers(t *testing.T) {
	r := newTestRegistry(t)
	origin := r.Spawn(geom.Vec3{})
	peer := r.Spawn(geom.Vec3{X: 20})
	r.SetTarget(&fixedTarget{pos: geom.Vec3{X: 10}})
	r.kill(peer)

	r.notifyNearby(origin)
	if peer.State != StateDissipating {
		t.Fatalf("dissipating peer must not be revived, got %s", peer.State)
	}
}
