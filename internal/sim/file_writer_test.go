package sim

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"swarmsim/internal/telemetry"
)

func TestFileWriter_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	telePath := filepath.Join(dir, "swarms.jsonl")
	eventPath := filepath.Join(dir, "events.jsonl")
	statePath := filepath.Join(dir, "state.jsonl")

	fw, err := NewFileWriter(telePath, eventPath, statePath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}

	row := telemetry.SwarmRow{ClusterID: "c1", SwarmID: "s1", State: "searching", Formation: "cloud", Units: 4, Timestamp: time.Unix(100, 0).UTC()}
	if err := fw.Write(row); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := fw.WriteBatch([]telemetry.SwarmRow{row, row}); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if err := fw.WriteEvent(telemetry.EventRow{ClusterID: "c1", SwarmID: "s1", Kind: "attack"}); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if err := fw.WriteState(telemetry.SimulationStateRow{ClusterID: "c1", Swarms: 1}); err != nil {
		t.Fatalf("WriteState: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := countLines(t, telePath); got != 3 {
		t.Fatalf("expected 3 telemetry lines, got %d", got)
	}
	if got := countLines(t, eventPath); got != 1 {
		t.Fatalf("expected 1 event line, got %d", got)
	}
	if got := countLines(t, statePath); got != 1 {
		t.Fatalf("expected 1 state line, got %d", got)
	}

	f, err := os.Open(telePath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	var back telemetry.SwarmRow
	if err := json.NewDecoder(f).Decode(&back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.SwarmID != "s1" || back.State != "searching" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestFileWriter_OptionalStreams(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(filepath.Join(dir, "swarms.jsonl"), "", "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()

	if err := fw.WriteEvent(telemetry.EventRow{Kind: "attack"}); err != nil {
		t.Fatalf("disabled event stream should be a no-op, got %v", err)
	}
	if err := fw.WriteState(telemetry.SimulationStateRow{}); err != nil {
		t.Fatalf("disabled state stream should be a no-op, got %v", err)
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n
}
