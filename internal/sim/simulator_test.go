package sim

import (
	"context"
	"testing"
	"time"

	"swarmsim/internal/config"
	"swarmsim/internal/geom"
	"swarmsim/internal/swarm"
	"swarmsim/internal/telemetry"
)

// MockWriter collects swarm rows for validation.
type MockWriter struct {
	Rows   []telemetry.SwarmRow
	States []telemetry.SimulationStateRow
}

func (w *MockWriter) Write(row telemetry.SwarmRow) error {
	w.Rows = append(w.Rows, row)
	return nil
}

func (w *MockWriter) WriteState(row telemetry.SimulationStateRow) error {
	w.States = append(w.States, row)
	return nil
}

type MockEventWriter struct {
	Events []telemetry.EventRow
}

func (w *MockEventWriter) WriteEvent(e telemetry.EventRow) error {
	w.Events = append(w.Events, e)
	return nil
}

func testSimConfig() *config.SimulationConfig {
	return &config.SimulationConfig{
		Seed:  7,
		Swarm: config.SwarmTuning{UnitCount: 4},
		Spawns: []config.SpawnGroup{
			{Name: "wave-a", Center: config.Point{X: -100, Y: -60, Z: 0}, Count: 2},
		},
		Target: &config.TargetConfig{
			Start:     config.Point{X: 50, Y: -40, Z: 0},
			Speed:     8,
			Waypoints: []config.Point{{X: 200, Y: -40, Z: 0}, {X: -200, Y: -40, Z: 0}},
		},
	}
}

func TestSimulator_TickGeneratesTelemetry(t *testing.T) {
	writer := &MockWriter{}
	events := &MockEventWriter{}
	sim := NewSimulator("cluster-test", testSimConfig(), writer, events, time.Second)

	sim.tick(context.Background(), 1.0/30)

	if len(writer.Rows) != 2 {
		t.Fatalf("expected telemetry for 2 swarms, got %d", len(writer.Rows))
	}
	for _, row := range writer.Rows {
		if row.SwarmID == "" || row.ClusterID != "cluster-test" {
			t.Fatalf("telemetry row has bad ids: %+v", row)
		}
		if row.State == "" || row.Formation == "" {
			t.Fatalf("telemetry row missing state: %+v", row)
		}
		if row.Units != 4 {
			t.Fatalf("expected 4 units, got %d", row.Units)
		}
	}
}

func TestSimulator_TickWritesStateRow(t *testing.T) {
	writer := &MockWriter{}
	sim := NewSimulator("cluster-test", testSimConfig(), writer, nil, time.Second)

	sim.tick(context.Background(), 1.0/30)

	if len(writer.States) != 1 {
		t.Fatalf("expected one state row, got %d", len(writer.States))
	}
	st := writer.States[0]
	if st.Swarms != 2 || st.LiveUnits != 8 {
		t.Fatalf("unexpected state aggregation: %+v", st)
	}
	if !st.TargetTracked {
		t.Fatalf("expected target tracked")
	}
}

func TestSimulator_EventsAreForwarded(t *testing.T) {
	writer := &MockWriter{}
	events := &MockEventWriter{}
	sim := NewSimulator("cluster-test", testSimConfig(), writer, events, time.Second)

	ids := sim.SpawnCluster(geom.Vec3{X: 0, Y: -60, Z: 0}, 1)
	if len(ids) != 1 {
		t.Fatalf("expected one spawned id")
	}
	sim.Damage(ids[0], 1000)
	sim.tick(context.Background(), 1.0/30)

	found := false
	for _, e := range events.Events {
		if e.Kind == string(swarm.EventStateChange) && e.SwarmID == ids[0] {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected state change event for killed swarm")
	}
}

func TestSimulator_DamageInterrupts(t *testing.T) {
	writer := &MockWriter{}
	sim := NewSimulator("cluster-test", testSimConfig(), writer, nil, time.Second)

	swarms := sim.Registry().Swarms()
	cfg := sim.Registry().Config()
	sim.Damage(swarms[0].ID, cfg.MaxHealth*cfg.SignificantDamage)

	if swarms[0].State != swarm.StateReforming {
		t.Fatalf("expected reforming after significant damage, got %s", swarms[0].State)
	}
}

func TestSimulator_HealthSummary(t *testing.T) {
	writer := &MockWriter{}
	sim := NewSimulator("cluster-test", testSimConfig(), writer, nil, time.Second)

	health := sim.Health()
	if len(health) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(health))
	}
	for _, h := range health {
		if h.Health != h.MaxHealth {
			t.Fatalf("expected full health at spawn: %+v", h)
		}
		if h.Units != 4 {
			t.Fatalf("expected 4 units, got %d", h.Units)
		}
	}
}

func TestSimulator_MoveTarget(t *testing.T) {
	writer := &MockWriter{}
	sim := NewSimulator("cluster-test", testSimConfig(), writer, nil, time.Second)

	dest := geom.Vec3{X: 900, Y: -90, Z: 0}
	sim.MoveTarget(dest)
	if got := sim.Registry().Target().Position(); got != dest {
		t.Fatalf("expected target at %+v, got %+v", dest, got)
	}
}

func TestSimulator_DeterministicWithSeed(t *testing.T) {
	run := func() []telemetry.SwarmRow {
		w := &MockWriter{}
		s := NewSimulator("cluster-test", testSimConfig(), w, nil, time.Second)
		s.now = func() time.Time { return time.Unix(0, 0) }
		for i := 0; i < 60; i++ {
			s.tick(context.Background(), 1.0/30)
		}
		return w.Rows[len(w.Rows)-2:]
	}
	a, b := run(), run()
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y || a[i].Z != b[i].Z || a[i].State != b[i].State {
			t.Fatalf("seeded runs diverged: %+v vs %+v", a[i], b[i])
		}
	}
}
