package swarm

import (
	"math"

	"swarmsim/internal/geom"
)

// Formation geometry constants. The grid tile width matches the classic
// 100-column layout so Wave and Wall stay square for typical unit counts.
const (
	gridColumns    = 100
	spiralArms     = 5
	goldenAngle    = 2.399963229728653 // pi * (3 - sqrt(5))
	cloudBoilRate  = 1.4               // cloud re-sample buckets per second
	vortexBandRise = 2.0
)

// FormationOffset maps (formation kind, unit index, elapsed time) to the
// unit's target offset from the swarm origin. toTarget is the vector from
// the swarm to the tracked target; only Net consumes it, and a zero vector
// means no hole is carved. The function is deterministic in its inputs so
// seeded runs reproduce exactly.
func FormationOffset(kind Formation, i, n int, elapsed float64, toTarget geom.Vec3, cfg *Config) geom.Vec3 {
	if n <= 0 {
		return geom.Vec3{}
	}
	r := cfg.FormationRadius
	frac := float64(i) / float64(n)

	switch kind {
	case FormationCloud:
		// Re-sampled over time on purpose: the bucket advances with
		// elapsed so the cloud boils instead of freezing.
		bucket := math.Floor(elapsed * cloudBoilRate)
		return hashVec(i, bucket).Scale(r)

	case FormationSphere:
		return sphereOffset(i, n).Scale(r)

	case FormationVortex:
		angle := frac*2*math.Pi*6 + elapsed
		radius := r * 0.7 * (1 + 0.3*math.Sin(elapsed*0.5+frac*4))
		height := (frac - 0.5) * r * vortexBandRise
		return geom.Vec3{
			X: math.Cos(angle) * radius,
			Y: height,
			Z: math.Sin(angle) * radius,
		}

	case FormationWave:
		col := float64(i % gridColumns)
		row := float64(i / gridColumns)
		spacing := r * 2 / gridColumns * 8
		x := (col - gridColumns/2) * spacing
		z := (row - float64(n/gridColumns)/2) * spacing
		y := math.Sin(x*0.15+elapsed*2) * math.Sin(z*0.15+elapsed*1.3) * r * 0.25
		return geom.Vec3{X: x, Y: y, Z: z}

	case FormationFunnel:
		angle := frac*2*math.Pi*4 + elapsed*1.5
		radius := r * (1 - frac*0.85)
		height := (frac - 0.3) * r * 1.6
		return geom.Vec3{
			X: math.Cos(angle) * radius,
			Y: height,
			Z: math.Sin(angle) * radius,
		}

	case FormationWall:
		col := float64(i % gridColumns)
		row := float64(i / gridColumns)
		spacing := r * 2 / gridColumns * 8
		x := (col - gridColumns/2) * spacing
		y := (row - float64(n/gridColumns)/2) * spacing
		z := math.Sin(x*0.3+elapsed) * r * 0.08
		return geom.Vec3{X: x, Y: y, Z: z}

	case FormationSpiral:
		arm := i % spiralArms
		radius := r * 0.15 * math.Sqrt(float64(i/spiralArms)+1)
		angle := radius*0.35 + elapsed + float64(arm)/spiralArms*2*math.Pi
		return geom.Vec3{
			X: math.Cos(angle) * radius,
			Y: math.Sin(elapsed*0.8+frac*3) * r * 0.15,
			Z: math.Sin(angle) * radius,
		}

	case FormationNet:
		offset := sphereOffset(i, n)
		dir := toTarget.Normalize()
		if dir == (geom.Vec3{}) {
			return offset.Scale(r)
		}
		dot := offset.Dot(dir)
		if dot > cfg.NetHoleThreshold {
			// Pull units facing the target radially inward so the net
			// opens toward it; the pull grows past the threshold.
			pull := (dot - cfg.NetHoleThreshold) / (1 - cfg.NetHoleThreshold)
			return offset.Scale(r * (1 - 0.8*pull))
		}
		return offset.Scale(r)
	}

	return geom.Vec3{}
}

// sphereOffset places unit i of n evenly on the unit sphere via the
// golden-angle spiral.
func sphereOffset(i, n int) geom.Vec3 {
	y := 1 - 2*(float64(i)+0.5)/float64(n)
	ring := math.Sqrt(1 - y*y)
	angle := goldenAngle * float64(i)
	return geom.Vec3{
		X: math.Cos(angle) * ring,
		Y: y,
		Z: math.Sin(angle) * ring,
	}
}

// hashVec derives a deterministic pseudo-random point in [-1,1]^3 from a
// unit index and a time bucket.
func hashVec(i int, bucket float64) geom.Vec3 {
	return geom.Vec3{
		X: hash01(float64(i)*127.1+bucket*311.7)*2 - 1,
		Y: hash01(float64(i)*269.5+bucket*183.3)*2 - 1,
		Z: hash01(float64(i)*419.2+bucket*371.9)*2 - 1,
	}
}

func hash01(seed float64) float64 {
	x := math.Sin(seed) * 43758.5453
	return x - math.Floor(x)
}
