package profiler

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PlakarLabs/hoard/logging"
)

// TestRecordEvent tests the RecordEvent function
func TestRecordEvent(t *testing.T) {
	Reset()

	testCases := []struct {
		event    string
		duration time.Duration
	}{
		{"save.step", 100 * time.Millisecond},
		{"save.step", 200 * time.Millisecond},
		{"load.blob", 150 * time.Millisecond},
		{"save.step", 50 * time.Millisecond},
		{"load.blob", 300 * time.Millisecond},
	}

	for _, tc := range testCases {
		RecordEvent(tc.event, tc.duration)
	}

	if count := Count("save.step"); count != 3 {
		t.Errorf("Expected save.step count to be 3, got %d", count)
	}
	if count := Count("load.blob"); count != 2 {
		t.Errorf("Expected load.blob count to be 2, got %d", count)
	}

	profilerSingleton.muProfiler.Lock()
	defer profilerSingleton.muProfiler.Unlock()

	if total := profilerSingleton.eventDurations["save.step"]; total != 350*time.Millisecond {
		t.Errorf("Expected save.step total duration to be 350ms, got %v", total)
	}
	if min := profilerSingleton.eventDurationsMin["save.step"]; min != 50*time.Millisecond {
		t.Errorf("Expected save.step min duration to be 50ms, got %v", min)
	}
	if max := profilerSingleton.eventDurationsMax["load.blob"]; max != 300*time.Millisecond {
		t.Errorf("Expected load.blob max duration to be 300ms, got %v", max)
	}
}

func TestDisplay(t *testing.T) {
	Reset()
	RecordEvent("pile.append", 10*time.Millisecond)
	RecordEvent("pile.append", 30*time.Millisecond)

	var stderr bytes.Buffer
	Display(logging.NewLogger(&bytes.Buffer{}, &stderr))

	out := stderr.String()
	if !strings.Contains(out, "pile.append: calls=2") {
		t.Errorf("missing event line in %q", out)
	}
	if !strings.Contains(out, "avg=20ms") {
		t.Errorf("missing average in %q", out)
	}
}
