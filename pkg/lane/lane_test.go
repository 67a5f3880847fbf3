package lane

import (
	"errors"
	"slices"
	"testing"
)

func TestSpan(t *testing.T) {
	tests := []struct {
		name     string
		lanes    int
		from, to int
		want     []int
	}{
		{"Forward", 4, 0, 2, []int{0, 1, 2}},
		{"Wraps", 4, 2, 0, []int{2, 3, 0}},
		{"Adjacent", 4, 3, 0, []int{3, 0}},
		{"FullCircle", 5, 1, 0, []int{1, 2, 3, 4, 0}},
		{"Degenerate", 4, 1, 1, []int{1}},
		{"SingleLane", 1, 0, 0, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ring{Lanes: tt.lanes}.Span(tt.from, tt.to)
			if err != nil {
				t.Fatalf("Span(%d, %d) error: %v", tt.from, tt.to, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Span(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSpanOutOfRange(t *testing.T) {
	ring := Ring{Lanes: 4}
	for _, r := range []Route{{0, 4}, {4, 0}, {-1, 2}, {2, -3}} {
		if _, err := ring.EntranceSpan(r); !errors.Is(err, ErrLaneOutOfRange) {
			t.Errorf("EntranceSpan(%v) error = %v, want ErrLaneOutOfRange", r, err)
		}
	}

	if _, err := (Ring{}).Span(0, 0); !errors.Is(err, ErrEmptyRing) {
		t.Errorf("empty ring error = %v, want ErrEmptyRing", err)
	}
}

func TestEntranceExitSpans(t *testing.T) {
	ring := Ring{Lanes: 4}
	r := Route{Entrance: 0, Exit: 2}

	ent, _ := ring.EntranceSpan(r)
	if !slices.Equal(ent, []int{0, 1, 2}) {
		t.Errorf("EntranceSpan = %v, want [0 1 2]", ent)
	}
	ext, _ := ring.ExitSpan(r)
	if !slices.Equal(ext, []int{2, 3, 0}) {
		t.Errorf("ExitSpan = %v, want [2 3 0]", ext)
	}
}

// Every span property is checked over all routes on several ring sizes.
func TestSpanProperties(t *testing.T) {
	for lanes := 2; lanes <= 9; lanes++ {
		ring := Ring{Lanes: lanes}
		for a := 0; a < lanes; a++ {
			for b := 0; b < lanes; b++ {
				if a == b {
					continue
				}
				r := Route{Entrance: a, Exit: b}
				span, err := ring.EntranceSpan(r)
				if err != nil {
					t.Fatalf("EntranceSpan(%v) on %d lanes: %v", r, lanes, err)
				}
				if span[0] != a || span[len(span)-1] != b {
					t.Errorf("span %v of %v does not run from %d to %d", span, r, a, b)
				}
				if len(span) > lanes {
					t.Errorf("span %v of %v longer than %d lanes", span, r, lanes)
				}
				for i := 1; i < len(span); i++ {
					if span[i] != (span[i-1]+1)%lanes {
						t.Errorf("span %v of %v steps from %d to %d", span, r, span[i-1], span[i])
					}
				}

				rev, _ := ring.ExitSpan(r.Reverse())
				if !slices.Equal(span, rev) {
					t.Errorf("EntranceSpan(%v) = %v, ExitSpan(reverse) = %v", r, span, rev)
				}
			}
		}
	}
}

func TestRoute(t *testing.T) {
	r := Route{Entrance: 1, Exit: 3}
	if got := r.Reverse(); got != (Route{Entrance: 3, Exit: 1}) {
		t.Errorf("Reverse() = %v", got)
	}
	if r.Degenerate() {
		t.Error("1->3 should not be degenerate")
	}
	if !(Route{Entrance: 2, Exit: 2}).Degenerate() {
		t.Error("2->2 should be degenerate")
	}
	if r.String() != "1->3" {
		t.Errorf("String() = %q, want %q", r.String(), "1->3")
	}
}

func TestRingContains(t *testing.T) {
	ring := Ring{Lanes: 3}
	if !ring.ContainsRoute(Route{0, 2}) {
		t.Error("0->2 should be on a 3-lane ring")
	}
	if ring.ContainsRoute(Route{0, 3}) {
		t.Error("0->3 should not be on a 3-lane ring")
	}
	if ring.Next(2) != 0 {
		t.Errorf("Next(2) = %d, want 0", ring.Next(2))
	}
}
