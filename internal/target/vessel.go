// Scripted target entity driven by the simulation loop.
package target

import (
	"math"

	"swarmsim/internal/geom"
)

// Vessel is the tracked entity swarms hunt. The game loop is its only
// writer; swarms read position and velocity, never mutate.
type Vessel struct {
	pos       geom.Vec3
	vel       geom.Vec3
	speed     float64
	waypoints []geom.Vec3
	wpIndex   int

	// patrol fallback when no waypoints are set
	center      geom.Vec3
	orbitRadius float64
	orbitAngle  float64
}

// NewVessel creates a vessel following the given waypoints at speed.
// With no waypoints it patrols a circle around start.
func NewVessel(start geom.Vec3, speed float64, waypoints []geom.Vec3) *Vessel {
	if speed <= 0 {
		speed = 8
	}
	return &Vessel{
		pos:         start,
		speed:       speed,
		waypoints:   waypoints,
		center:      start,
		orbitRadius: 120,
	}
}

// Step advances the vessel by dt seconds.
func (v *Vessel) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if len(v.waypoints) == 0 {
		v.orbit(dt)
		return
	}

	wp := v.waypoints[v.wpIndex]
	to := wp.Sub(v.pos)
	dist := to.Length()
	if dist < v.speed*dt*2 {
		v.wpIndex = (v.wpIndex + 1) % len(v.waypoints)
		wp = v.waypoints[v.wpIndex]
		to = wp.Sub(v.pos)
	}
	v.vel = to.Normalize().Scale(v.speed)
	v.pos = v.pos.Add(v.vel.Scale(dt))
}

func (v *Vessel) orbit(dt float64) {
	v.orbitAngle += v.speed / v.orbitRadius * dt
	next := v.center.Add(geom.Vec3{
		X: math.Cos(v.orbitAngle) * v.orbitRadius,
		Z: math.Sin(v.orbitAngle) * v.orbitRadius,
	})
	v.vel = next.Sub(v.pos).Scale(1 / dt)
	v.pos = next
}

// Position implements swarm.Target.
func (v *Vessel) Position() geom.Vec3 { return v.pos }

// Velocity implements swarm.MovingTarget.
func (v *Vessel) Velocity() geom.Vec3 { return v.vel }

// Teleport moves the vessel instantly, zeroing its velocity.
func (v *Vessel) Teleport(pos geom.Vec3) {
	v.pos = pos
	v.vel = geom.Vec3{}
	v.center = pos
}
