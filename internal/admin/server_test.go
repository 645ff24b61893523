package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"swarmsim/internal/config"
	"swarmsim/internal/sim"
	"swarmsim/internal/telemetry"
)

type nullWriter struct{}

func (nullWriter) Write(telemetry.SwarmRow) error { return nil }

func newTestServer(t *testing.T) (*Server, *sim.Simulator) {
	t.Helper()
	cfg := &config.SimulationConfig{
		Seed:  1,
		Swarm: config.SwarmTuning{UnitCount: 4},
		Spawns: []config.SpawnGroup{
			{Name: "alpha", Center: config.Point{X: 0, Y: -60, Z: 0}, Count: 2},
		},
	}
	simulator := sim.NewSimulator("cluster-test", cfg, nullWriter{}, nil, time.Second)
	return NewServer(simulator), simulator
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var health []sim.SwarmHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(health) != 2 {
		t.Fatalf("expected 2 swarms, got %d", len(health))
	}
}

func TestServer_Spawn(t *testing.T) {
	srv, simulator := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/spawn?x=100&y=-50&z=0&count=3")
	if err != nil {
		t.Fatalf("GET /spawn: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Spawned []string `json:"spawned"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Spawned) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(body.Spawned))
	}
	if len(simulator.Health()) != 5 {
		t.Fatalf("expected 5 swarms total")
	}
}

func TestServer_DamageRequiresID(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/damage")
	if err != nil {
		t.Fatalf("GET /damage: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without id, got %d", resp.StatusCode)
	}
}

func TestServer_DamageAppliesToSwarm(t *testing.T) {
	srv, simulator := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	target := simulator.Health()[0]
	resp, err := http.Get(ts.URL + "/damage?id=" + target.ID + "&amount=20")
	if err != nil {
		t.Fatalf("GET /damage: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	for _, h := range simulator.Health() {
		if h.ID == target.ID && h.Health >= target.Health {
			t.Fatalf("expected health reduced, got %f", h.Health)
		}
	}
}

func TestServer_Target(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/target?x=10&y=-40&z=5")
	if err != nil {
		t.Fatalf("GET /target: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/target?x=10")
	if err != nil {
		t.Fatalf("GET /target: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without full coordinates, got %d", resp.StatusCode)
	}
}

func TestServer_Index(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestServer_Swarms(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/swarms")
	if err != nil {
		t.Fatalf("GET /swarms: %v", err)
	}
	defer resp.Body.Close()
	var rows []telemetry.SwarmRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}
