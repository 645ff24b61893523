package scenario

import (
	"context"
	"sync"
	"time"

	"swarmsim/internal/geom"
	"swarmsim/internal/logging"
	"swarmsim/internal/telemetry"
)

// Director is the slice of the simulator the runner drives. The
// simulator satisfies it directly.
type Director interface {
	SpawnCluster(center geom.Vec3, count int) []string
	MoveTarget(p geom.Vec3)
}

// Runner advances a scenario against a running simulator. It consumes
// simulation events as an event writer and accumulates elapsed time via
// Tick.
type Runner struct {
	mu      sync.Mutex
	sc      *Scenario
	dir     Director
	phase   string
	elapsed float64
	counts  map[string]int
	done    bool
}

// NewRunner creates a runner positioned before the first phase. Start
// enters it. dir may be nil until WithDirector is called.
func NewRunner(sc *Scenario, dir Director) *Runner {
	return &Runner{sc: sc, dir: dir, counts: make(map[string]int)}
}

// WithDirector attaches the simulator after construction; the runner is
// usually built before the simulator because the simulator takes the
// runner as an event writer.
func (r *Runner) WithDirector(dir Director) *Runner {
	r.mu.Lock()
	r.dir = dir
	r.mu.Unlock()
	return r
}

// Start enters the first phase and begins the wall-clock ticker. It
// returns when the context is done or the scenario reaches a terminal
// phase.
func (r *Runner) Start(ctx context.Context) {
	log := logging.FromContext(ctx)
	if len(r.sc.Phases) == 0 {
		return
	}
	r.enter(ctx, r.sc.Phases[0].Name)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if r.Tick(ctx, 1) {
				log.Info("scenario complete", "scenario", r.sc.Name)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Tick accumulates elapsed seconds and evaluates time triggers. It
// reports whether the scenario has finished.
func (r *Runner) Tick(ctx context.Context, dt float64) bool {
	r.mu.Lock()
	r.elapsed += dt
	v := int(r.elapsed)
	r.mu.Unlock()
	r.feed(ctx, Event{Type: "time_elapsed", Value: v})
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Phase returns the current phase name.
func (r *Runner) Phase() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// WriteEvent lets the runner observe simulation events as an event
// writer; kinds are counted and matched against phase triggers.
func (r *Runner) WriteEvent(e telemetry.EventRow) error {
	r.mu.Lock()
	r.counts[e.Kind]++
	v := r.counts[e.Kind]
	r.mu.Unlock()
	r.feed(context.Background(), Event{Type: e.Kind, Value: v})
	return nil
}

func (r *Runner) feed(ctx context.Context, ev Event) {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return
	}
	next, ok := r.sc.NextPhase(r.phase, ev)
	r.mu.Unlock()
	if ok {
		r.enter(ctx, next)
	}
}

// enter applies the phase's waves and target move, then marks the
// scenario done if the phase has no outgoing triggers.
func (r *Runner) enter(ctx context.Context, name string) {
	log := logging.FromContext(ctx)
	p := r.sc.Phase(name)
	if p == nil {
		return
	}

	r.mu.Lock()
	r.phase = name
	r.elapsed = 0
	for k := range r.counts {
		delete(r.counts, k)
	}
	if len(p.Triggers) == 0 {
		r.done = true
	}
	dir := r.dir
	r.mu.Unlock()

	log.Info("scenario phase", "scenario", r.sc.Name, "phase", name)
	if dir == nil {
		return
	}
	for _, w := range p.Waves {
		count := w.Count
		if count <= 0 {
			count = 1
		}
		dir.SpawnCluster(w.Center.Vec3(), count)
	}
	if p.MoveTarget != nil {
		dir.MoveTarget(p.MoveTarget.Vec3())
	}
}
