package sim

import (
	"swarmsim/internal/telemetry"
)

// MultiWriter fan-outs swarm rows and events to multiple writers.
type MultiWriter struct {
	swarmWriters []SwarmWriter
	eventWriters []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(sws []SwarmWriter, ews []EventWriter) *MultiWriter {
	return &MultiWriter{swarmWriters: sws, eventWriters: ews}
}

// Write sends a swarm row to all writers.
func (mw *MultiWriter) Write(row telemetry.SwarmRow) error {
	for _, w := range mw.swarmWriters {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple swarm rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(rows []telemetry.SwarmRow) error {
	for _, w := range mw.swarmWriters {
		if bw, ok := w.(batchSwarmWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteEvent sends an event row to all event writers.
func (mw *MultiWriter) WriteEvent(row telemetry.EventRow) error {
	for _, w := range mw.eventWriters {
		if err := w.WriteEvent(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents sends multiple events to all event writers, using batch if supported.
func (mw *MultiWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, w := range mw.eventWriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteEvents(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteEvent(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteState forwards a state row to every swarm writer that accepts one.
func (mw *MultiWriter) WriteState(row telemetry.SimulationStateRow) error {
	for _, w := range mw.swarmWriters {
		if sw, ok := w.(StateWriter); ok {
			if err := sw.WriteState(row); err != nil {
				return err
			}
		}
	}
	return nil
}
