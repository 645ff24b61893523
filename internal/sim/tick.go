package sim

import (
	"context"
	"time"

	"swarmsim/internal/logging"
	"swarmsim/internal/telemetry"
)

// Run starts the simulation loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx, s.tickInterval.Seconds())
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// tick advances the world by dt seconds and writes telemetry.
func (s *Simulator) tick(ctx context.Context, dt float64) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vessel != nil {
		s.vessel.Step(dt)
	}
	s.registry.Update(dt)

	batch := s.snapshotLocked()
	events := s.registry.DrainEvents()

	// Batch support if writer implements WriteBatch
	if bw, ok := s.writer.(batchSwarmWriter); ok {
		if err := bw.WriteBatch(batch); err != nil {
			log.Error("batch write failed", "err", err)
		}
	} else {
		for _, row := range batch {
			if err := s.writer.Write(row); err != nil {
				log.Error("write failed", "swarm_id", row.SwarmID, "err", err)
			}
		}
	}

	if len(events) > 0 && s.eventWriter != nil {
		rows := make([]telemetry.EventRow, len(events))
		for i, e := range events {
			rows[i] = s.eventRow(e)
		}
		if bw, ok := s.eventWriter.(batchEventWriter); ok {
			if err := bw.WriteEvents(rows); err != nil {
				log.Error("event batch write failed", "err", err)
			}
		} else {
			for _, r := range rows {
				if err := s.eventWriter.WriteEvent(r); err != nil {
					log.Error("event write failed", "err", err)
				}
			}
		}
	}

	if sw, ok := s.writer.(StateWriter); ok {
		liveUnits := 0
		for _, h := range batch {
			liveUnits += h.Units
		}
		row := telemetry.SimulationStateRow{
			ClusterID:     s.clusterID,
			Swarms:        len(batch),
			LiveUnits:     liveUnits,
			TargetTracked: s.registry.Target() != nil,
			TickSeconds:   dt,
			Timestamp:     s.now().UTC(),
		}
		if err := sw.WriteState(row); err != nil {
			log.Error("state write failed", "err", err)
		}
	}
}
