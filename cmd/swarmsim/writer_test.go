package main

import (
	"os"
	"path/filepath"
	"testing"

	"swarmsim/internal/config"
	"swarmsim/internal/sim"
)

func TestNewWriters_PrintOnly(t *testing.T) {
	cfg := &config.SimulationConfig{}
	w, ew, cleanup, err := newWriters(cfg, true, false, "")
	if err != nil {
		t.Fatalf("newWriters: %v", err)
	}
	defer cleanup()

	if _, ok := w.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected JSON stdout writer, got %T", w)
	}
	if _, ok := ew.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected JSON stdout event writer, got %T", ew)
	}
}

func TestNewWriters_LogFileAddsFanOut(t *testing.T) {
	cfg := &config.SimulationConfig{}
	logFile := filepath.Join(t.TempDir(), "run.jsonl")
	w, _, cleanup, err := newWriters(cfg, true, false, logFile)
	if err != nil {
		t.Fatalf("newWriters: %v", err)
	}
	defer cleanup()

	if _, ok := w.(*sim.MultiWriter); !ok {
		t.Fatalf("expected multi writer with log file, got %T", w)
	}
	for _, path := range []string{logFile, logFile + ".events", logFile + ".state"} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected log file %s created: %v", path, err)
		}
	}
}

func TestLoadScenario_BuiltInAndUnknown(t *testing.T) {
	sc, err := loadScenario("gauntlet")
	if err != nil {
		t.Fatalf("expected built-in arc: %v", err)
	}
	if sc.Name != "Gauntlet" {
		t.Fatalf("unexpected arc %s", sc.Name)
	}
	if _, err := loadScenario("no-such-arc"); err == nil {
		t.Fatalf("expected error for unknown scenario")
	}
}
