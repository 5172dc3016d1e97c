package services

import (
	"bytes"
	"errors"
	"testing"

	"zombie-outbreak/server/models"
)

func TestEventLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	_, _ = runSim(t, 4, SimulationParams{
		InitialZombie: pos(0, 0),
		Creatures:     []models.Position{pos(1, 0)},
		Moves:         "R",
		Handler:       NewEventLogger(&buf),
	})

	want := "zombie 0 moved to (1,0)\n" +
		"zombie 0 infected creature at (1,0)\n" +
		"zombie 1 moved to (2,0)\n"
	if buf.String() != want {
		t.Errorf("log mismatch:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestMultiHandlerStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var second int
	h := MultiHandler(
		nil,
		models.EventHandlerFunc(func(models.Event) error { return boom }),
		models.EventHandlerFunc(func(models.Event) error { second++; return nil }),
	)
	if err := h.HandleEvent(models.ZombieMoved{}); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if second != 0 {
		t.Error("handlers after a failure must not run")
	}
}

func TestEventRecorderRecords(t *testing.T) {
	r := &EventRecorder{}
	_ = r.HandleEvent(models.ZombieMoved{ZombieID: 0, Position: pos(1, 0)})
	_ = r.HandleEvent(models.CreatureInfected{ZombieID: 0, CreatureID: 0, Position: pos(1, 0), NewZombieID: 1})

	recs := r.Records()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Kind != models.EventZombieMoved || recs[1].Kind != models.EventCreatureInfected {
		t.Errorf("unexpected kinds: %v %v", recs[0].Kind, recs[1].Kind)
	}
	if recs[1].NewZombieID == nil || *recs[1].NewZombieID != 1 {
		t.Errorf("new zombie id not kept: %+v", recs[1])
	}
}
