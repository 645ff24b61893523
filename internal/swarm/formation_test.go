package swarm

import (
	"math"
	"testing"

	"swarmsim/internal/geom"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.UnitCount = 4
	return cfg
}

func TestSphereOffsets_DistinctAndEquidistant(t *testing.T) {
	cfg := testConfig()
	n := 4
	points := make([]geom.Vec3, n)
	for i := 0; i < n; i++ {
		points[i] = FormationOffset(FormationSphere, i, n, 0, geom.Vec3{}, &cfg)
		if math.Abs(points[i].Length()-cfg.FormationRadius) > 1e-6 {
			t.Fatalf("point %d not on sphere: length %f", i, points[i].Length())
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if points[i].Sub(points[j]).Length() < 1e-6 {
				t.Fatalf("points %d and %d coincide", i, j)
			}
		}
	}
}

func TestCloudOffsets_DeterministicPerBucket(t *testing.T) {
	cfg := testConfig()
	a := FormationOffset(FormationCloud, 3, 10, 0.1, geom.Vec3{}, &cfg)
	b := FormationOffset(FormationCloud, 3, 10, 0.2, geom.Vec3{}, &cfg)
	if a != b {
		t.Fatalf("same bucket should be identical: %+v vs %+v", a, b)
	}
	later := FormationOffset(FormationCloud, 3, 10, 5, geom.Vec3{}, &cfg)
	if a == later {
		t.Fatalf("cloud should re-sample across buckets")
	}
	if a.Length() > cfg.FormationRadius*math.Sqrt(3)+1e-9 {
		t.Fatalf("cloud offset out of bounds: %f", a.Length())
	}
}

func TestNetOffsets_HoleFacesTarget(t *testing.T) {
	cfg := testConfig()
	n := 200
	toTarget := geom.Vec3{X: 1, Y: 0, Z: 0}
	pulled := 0
	for i := 0; i < n; i++ {
		off := FormationOffset(FormationNet, i, n, 0, toTarget, &cfg)
		unit := sphereOffset(i, n)
		if unit.Dot(toTarget) > cfg.NetHoleThreshold {
			if off.Length() >= cfg.FormationRadius-1e-9 {
				t.Fatalf("unit %d faces target but was not pulled inward", i)
			}
			pulled++
		} else if math.Abs(off.Length()-cfg.FormationRadius) > 1e-6 {
			t.Fatalf("unit %d off the shell: %f", i, off.Length())
		}
	}
	if pulled == 0 {
		t.Fatalf("expected some units inside the hole cone")
	}
}

func TestNetOffsets_NoTargetNoHole(t *testing.T) {
	cfg := testConfig()
	for i := 0; i < 50; i++ {
		off := FormationOffset(FormationNet, i, 50, 0, geom.Vec3{}, &cfg)
		if math.Abs(off.Length()-cfg.FormationRadius) > 1e-6 {
			t.Fatalf("expected full shell without target, unit %d at %f", i, off.Length())
		}
	}
}

func TestFormationOffset_ZeroUnits(t *testing.T) {
	cfg := testConfig()
	if got := FormationOffset(FormationVortex, 0, 0, 1, geom.Vec3{}, &cfg); got != (geom.Vec3{}) {
		t.Fatalf("expected zero offset for empty swarm, got %+v", got)
	}
}

func TestSpiralOffsets_ArmsAscendOutward(t *testing.T) {
	cfg := testConfig()
	inner := FormationOffset(FormationSpiral, 0, 100, 0, geom.Vec3{}, &cfg)
	outer := FormationOffset(FormationSpiral, 95, 100, 0, geom.Vec3{}, &cfg)
	ri := math.Hypot(inner.X, inner.Z)
	ro := math.Hypot(outer.X, outer.Z)
	if ro <= ri {
		t.Fatalf("expected later indices farther out: inner %f outer %f", ri, ro)
	}
}
