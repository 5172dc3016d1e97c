package services

import (
	"errors"
	"testing"

	"zombie-outbreak/server/models"
)

func TestEntityTrackerRemoval(t *testing.T) {
	et := NewEntityTracker()
	for i, p := range []models.Position{pos(1, 1), pos(1, 1), pos(2, 2)} {
		if err := et.AddCreature(models.NewBasicCreature(i, p)); err != nil {
			t.Fatal(err)
		}
	}

	if got := len(et.CreaturesAt(pos(1, 1))); got != 2 {
		t.Fatalf("expected 2 creatures at (1,1), got %d", got)
	}
	if err := et.RemoveCreature(0); err != nil {
		t.Fatal(err)
	}
	at := et.CreaturesAt(pos(1, 1))
	if len(at) != 1 || at[0].GetID() != 1 {
		t.Errorf("expected only creature 1 left at (1,1), got %v", at)
	}
	if err := et.RemoveCreature(0); err == nil {
		t.Error("removing twice should fail")
	}
	if err := et.RemoveCreature(42); err == nil {
		t.Error("removing an unknown creature should fail")
	}

	living := et.LivingCreatures()
	if len(living) != 2 || living[0].GetID() != 1 || living[1].GetID() != 2 {
		t.Errorf("unexpected living creatures %v", living)
	}
}

func TestEntityTrackerDuplicateID(t *testing.T) {
	et := NewEntityTracker()
	if err := et.AddCreature(models.NewBasicCreature(3, pos(0, 0))); err != nil {
		t.Fatal(err)
	}
	err := et.AddCreature(models.NewBasicCreature(3, pos(1, 0)))
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestEntityTrackerZombieIDs(t *testing.T) {
	et := NewEntityTracker()
	a := et.CreateZombieAt(pos(0, 0), nil)
	b := et.CreateZombieAt(pos(1, 0), nil)
	if a.ID != 0 || b.ID != 1 || et.ZombieCount() != 2 {
		t.Errorf("zombie ids should follow creation order: %d %d", a.ID, b.ID)
	}
}
