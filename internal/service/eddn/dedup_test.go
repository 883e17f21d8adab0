package eddn

import (
	"testing"
	"time"
)

func TestDedupGate_ParseTimestamp(t *testing.T) {
	fallback := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	gate := NewDedupGate()
	gate.now = func() time.Time { return fallback }

	want := time.Date(2024, 9, 1, 14, 3, 55, 0, time.UTC).Unix()

	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"zulu suffix", "2024-09-01T14:03:55Z", want},
		{"explicit offset", "2024-09-01T14:03:55+00:00", want},
		{"no timezone treated as utc", "2024-09-01T14:03:55", want},
		{"fractional seconds", "2024-09-01T14:03:55.123456Z", want},
		{"fractional no timezone", "2024-09-01T14:03:55.5", want},
		{"garbage falls back to wall clock", "not-a-timestamp", fallback.Unix()},
		{"empty falls back to wall clock", "", fallback.Unix()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.ParseTimestamp(tt.in); got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDedupGate_Acceptance(t *testing.T) {
	gate := NewDedupGate()

	// A station never seen this run is always accepted, however old the
	// timestamp is.
	if !gate.ShouldAccept(42, 1) {
		t.Fatal("first message for a station must be accepted")
	}

	gate.RecordAccepted(42, 100)

	if gate.ShouldAccept(42, 100) {
		t.Error("equal timestamp must be rejected")
	}
	if gate.ShouldAccept(42, 99) {
		t.Error("older timestamp must be rejected")
	}
	if !gate.ShouldAccept(42, 101) {
		t.Error("newer timestamp must be accepted")
	}

	// Other stations are tracked independently.
	if !gate.ShouldAccept(43, 1) {
		t.Error("unrelated station must not be affected")
	}
}

func TestDedupGate_NotAdvancedWithoutRecord(t *testing.T) {
	gate := NewDedupGate()

	gate.RecordAccepted(7, 200)

	// ShouldAccept alone never advances the clock; a rejected or
	// zero-row message leaves the gate unchanged.
	gate.ShouldAccept(7, 300)
	if gate.ShouldAccept(7, 250) != true {
		t.Error("clock must not advance on ShouldAccept")
	}
}
