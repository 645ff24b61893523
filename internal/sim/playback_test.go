package sim

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"swarmsim/internal/telemetry"
)

func TestReplayLog(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	base := time.Unix(1000, 0).UTC()
	for i := 0; i < 3; i++ {
		enc.Encode(telemetry.SwarmRow{
			SwarmID:   "s1",
			State:     "pursuing",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	writer := &MockWriter{}
	if err := ReplayLog(&buf, writer, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(writer.Rows) != 3 {
		t.Fatalf("expected 3 replayed rows, got %d", len(writer.Rows))
	}
	if writer.Rows[2].Timestamp.Sub(writer.Rows[0].Timestamp) != 2*time.Second {
		t.Fatalf("timestamps not preserved")
	}
}

func TestReplayLog_BadInput(t *testing.T) {
	buf := bytes.NewBufferString("not json\n")
	if err := ReplayLog(buf, &MockWriter{}, 0); err == nil {
		t.Fatalf("expected error for malformed input")
	}
}

func TestReplayLogFile_Missing(t *testing.T) {
	if err := ReplayLogFile("does-not-exist.jsonl", &MockWriter{}, 0); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
