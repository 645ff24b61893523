package main

import (
	"os"

	"swarmsim/internal/config"
	"swarmsim/internal/sim"
	"swarmsim/internal/telemetry"
)

// newWriters sets up swarm and event writers based on flags and env vars.
// It returns the writers and a cleanup function to close any resources.
func newWriters(cfg *config.SimulationConfig, printOnly, noTUI bool, logFile string) (sim.SwarmWriter, sim.EventWriter, func(), error) {
	cleanup := func() {}

	writer, eventWriter, closer, err := baseWriters(cfg, printOnly, noTUI)
	if err != nil {
		return nil, nil, nil, err
	}
	if closer != nil {
		cleanup = closer
	}
	if logFile == "" {
		return writer, eventWriter, cleanup, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".events", logFile+".state")
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	mw := sim.NewMultiWriter(
		[]sim.SwarmWriter{writer, fw},
		[]sim.EventWriter{eventWriter, fw},
	)
	base := cleanup
	cleanup = func() {
		fw.Close()
		base()
	}
	return mw, mw, cleanup, nil
}

// baseWriters chooses the underlying writers based on flags and env vars.
func baseWriters(cfg *config.SimulationConfig, printOnly, noTUI bool) (sim.SwarmWriter, sim.EventWriter, func(), error) {
	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" && !printOnly {
		table := os.Getenv("GREPTIMEDB_TABLE")
		eventTable := os.Getenv("SWARM_EVENT_TABLE")
		if table == "" {
			table = telemetry.SwarmTableName
		}
		if eventTable == "" {
			eventTable = "swarm_events"
		}
		w, err := sim.NewGreptimeDBWriter(endpoint, "public", table, eventTable)
		if err != nil {
			return nil, nil, nil, err
		}
		return w, w, nil, nil
	}

	if printOnly || noTUI {
		w := sim.NewJSONStdoutWriter()
		return w, w, nil, nil
	}

	tui := sim.NewTUIWriter(cfg)
	return tui, tui, func() { tui.Close() }, nil
}
