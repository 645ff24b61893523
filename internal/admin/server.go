package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"swarmsim/internal/geom"
	"swarmsim/internal/sim"
)

// Server exposes a minimal operator UI and JSON endpoints over a running
// simulator.
type Server struct {
	Sim *sim.Simulator
	tpl *template.Template
	mux *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

func NewServer(simulator *sim.Simulator) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	s := &Server{Sim: simulator, tpl: tpl, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/swarms", s.handleSwarms)
	s.mux.HandleFunc("/spawn", s.handleSpawn)
	s.mux.HandleFunc("/damage", s.handleDamage)
	s.mux.HandleFunc("/target", s.handleTarget)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the configured mux, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Swarms []sim.SwarmHealth
		Seed   int64
	}{
		Swarms: s.Sim.Health(),
		Seed:   s.Sim.GetConfig().Seed,
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleSwarms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Snapshot())
}

func (s *Server) handleSpawn(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, _ := strconv.ParseFloat(q.Get("x"), 64)
	y, _ := strconv.ParseFloat(q.Get("y"), 64)
	z, _ := strconv.ParseFloat(q.Get("z"), 64)
	count, _ := strconv.Atoi(q.Get("count"))
	if count <= 0 {
		count = 1
	}
	ids := s.Sim.SpawnCluster(geom.Vec3{X: x, Y: y, Z: z}, count)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"spawned": ids})
}

func (s *Server) handleDamage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil || amount <= 0 {
		amount = 10
	}
	s.Sim.Damage(id, amount)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	z, errZ := strconv.ParseFloat(q.Get("z"), 64)
	if errX != nil || errY != nil || errZ != nil {
		http.Error(w, "x, y, z required", http.StatusBadRequest)
		return
	}
	s.Sim.MoveTarget(geom.Vec3{X: x, Y: y, Z: z})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Health())
}
