package sim

import (
	"encoding/json"
	"os"

	"swarmsim/internal/telemetry"
)

// FileWriter writes swarm telemetry, events, and state to JSONL files.
type FileWriter struct {
	teleFile  *os.File
	eventFile *os.File
	stateFile *os.File
	teleEnc   *json.Encoder
	eventEnc  *json.Encoder
	stateEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. eventPath or statePath may be empty
// to skip those logs.
func NewFileWriter(telemetryPath, eventPath, statePath string) (*FileWriter, error) {
	tf, err := os.Create(telemetryPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{teleFile: tf, teleEnc: json.NewEncoder(tf)}
	if eventPath != "" {
		ef, err := os.Create(eventPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.eventFile = ef
		fw.eventEnc = json.NewEncoder(ef)
	}
	if statePath != "" {
		sf, err := os.Create(statePath)
		if err != nil {
			if fw.eventFile != nil {
				fw.eventFile.Close()
			}
			tf.Close()
			return nil, err
		}
		fw.stateFile = sf
		fw.stateEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// Write logs a single swarm row.
func (f *FileWriter) Write(row telemetry.SwarmRow) error {
	return f.teleEnc.Encode(row)
}

// WriteBatch logs multiple swarm rows.
func (f *FileWriter) WriteBatch(rows []telemetry.SwarmRow) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvent logs a single event row, if enabled.
func (f *FileWriter) WriteEvent(e telemetry.EventRow) error {
	if f.eventEnc == nil {
		return nil
	}
	return f.eventEnc.Encode(e)
}

// WriteEvents logs multiple event rows.
func (f *FileWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, e := range rows {
		if err := f.WriteEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteState logs a simulation state row, if enabled.
func (f *FileWriter) WriteState(row telemetry.SimulationStateRow) error {
	if f.stateEnc == nil {
		return nil
	}
	return f.stateEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.teleFile != nil {
		if e := f.teleFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.eventFile != nil {
		if e := f.eventFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.stateFile != nil {
		if e := f.stateFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
