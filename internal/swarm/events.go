package swarm

import "swarmsim/internal/geom"

// EventKind labels a discrete simulation event.
type EventKind string

const (
	EventAttack          EventKind = "attack"
	EventAlert           EventKind = "alert"
	EventStateChange     EventKind = "state_change"
	EventFormationChange EventKind = "formation_change"
	EventDissipated      EventKind = "dissipated"
)

// Event is emitted by the state machine and coordination bus instead of
// self-scheduling callbacks; consumers drain the registry queue each frame.
type Event struct {
	Kind      EventKind
	SwarmID   string
	Position  geom.Vec3
	State     State
	Formation Formation
	PeerIDs   []string
}
