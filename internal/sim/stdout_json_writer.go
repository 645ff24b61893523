package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"swarmsim/internal/telemetry"
)

// JSONStdoutWriter prints swarm rows, events, and state as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// Write outputs a swarm row in JSON format.
func (w *JSONStdoutWriter) Write(row telemetry.SwarmRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteBatch outputs multiple swarm rows in JSON format.
func (w *JSONStdoutWriter) WriteBatch(rows []telemetry.SwarmRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteEvent outputs a swarm event in JSON format.
func (w *JSONStdoutWriter) WriteEvent(e telemetry.EventRow) error {
	data, _ := json.Marshal(e)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteEvents outputs multiple swarm events in JSON format.
func (w *JSONStdoutWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, r := range rows {
		_ = w.WriteEvent(r)
	}
	return nil
}

// WriteState outputs a simulation state row in JSON format.
func (w *JSONStdoutWriter) WriteState(row telemetry.SimulationStateRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}
