package models

import (
	"errors"
	"testing"
)

func TestPositionString(t *testing.T) {
	if got := (Position{3, 1}).String(); got != "(3,1)" {
		t.Errorf("got %q", got)
	}
}

func TestPositionAsMapKey(t *testing.T) {
	m := map[Position]int{{1, 2}: 7}
	if m[Position{X: 1, Y: 2}] != 7 {
		t.Error("equal positions should hash to the same key")
	}
}

func TestParseDirections(t *testing.T) {
	dirs, err := ParseDirections("rD l\tU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Direction{Right, Down, Left, Up}
	if len(dirs) != len(want) {
		t.Fatalf("got %d directions, want %d", len(dirs), len(want))
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("direction %d: got %s want %s", i, dirs[i], want[i])
		}
	}
	if got := FormatDirections(dirs); got != "RDLU" {
		t.Errorf("FormatDirections = %q", got)
	}
}

func TestParseDirectionsEmpty(t *testing.T) {
	dirs, err := ParseDirections("")
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 0 {
		t.Errorf("expected no directions, got %v", dirs)
	}
}

func TestParseDirectionsRejectsUnknown(t *testing.T) {
	for _, in := range []string{"RDX", "N", "R,D", "1"} {
		_, err := ParseDirections(in)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%q: expected ValidationError, got %v", in, err)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%q: error should wrap ErrInvalidInput", in)
		}
	}
}

func TestDirectionDeltas(t *testing.T) {
	tests := []struct {
		d      Direction
		dx, dy int
		name   string
	}{
		{Up, 0, -1, "Up"},
		{Down, 0, 1, "Down"},
		{Left, -1, 0, "Left"},
		{Right, 1, 0, "Right"},
	}
	for _, tt := range tests {
		dx, dy := tt.d.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%s: delta (%d,%d), want (%d,%d)", tt.name, dx, dy, tt.dx, tt.dy)
		}
		if tt.d.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", tt.d.Name(), tt.name)
		}
	}
}

func TestZombieAdvance(t *testing.T) {
	w, _ := NewWorld(4)
	z := NewZombie(0, Position{3, 1}, []Direction{Right, Down})
	if z.Done() || z.Remaining() != 2 {
		t.Fatalf("fresh zombie should have 2 moves left")
	}
	if got := z.Advance(w); got != (Position{0, 1}) {
		t.Errorf("first move: got %v", got)
	}
	if got := z.Advance(w); got != (Position{0, 2}) {
		t.Errorf("second move: got %v", got)
	}
	if !z.Done() {
		t.Error("zombie should be done")
	}
	if z.String() != "zombie 0" {
		t.Errorf("String() = %q", z.String())
	}
}

func TestEventRecordRoundTrip(t *testing.T) {
	rec := NewEventRecord(CreatureInfected{ZombieID: 0, CreatureID: 2, Position: Position{1, 1}, NewZombieID: 3})
	if rec.Kind != EventCreatureInfected || rec.CreatureID == nil || *rec.CreatureID != 2 || *rec.NewZombieID != 3 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.String() != "zombie 0 infected creature at (1,1)" {
		t.Errorf("String() = %q", rec.String())
	}
	moved := NewEventRecord(ZombieMoved{ZombieID: 1, Position: Position{2, 0}})
	if moved.CreatureID != nil || moved.String() != "zombie 1 moved to (2,0)" {
		t.Errorf("unexpected moved record: %+v", moved)
	}
}
