package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"zombie-outbreak/server/models"
	"zombie-outbreak/server/persistence"
)

// ErrNoStorage is returned by history lookups on a service without storage.
var ErrNoStorage = errors.New("run storage not configured")

// RunService executes simulation configs and keeps a record of each run
type RunService struct {
	db  persistence.Storage
	now func() time.Time
}

// NewRunService creates a run service. db may be nil, in which case runs are
// executed but not stored.
func NewRunService(db persistence.Storage) *RunService {
	return &RunService{
		db:  db,
		now: time.Now,
	}
}

// Execute runs cfg to completion. Every event is forwarded to observer (which
// may be nil) as it happens.
func (rs *RunService) Execute(cfg *models.SimulationConfig, observer models.EventHandler) (*models.RunRecord, *SimulationResult, error) {
	world, err := models.NewWorld(cfg.GridSize)
	if err != nil {
		return nil, nil, err
	}

	recorder := &EventRecorder{}
	sim, err := NewSimulation(world, SimulationParams{
		InitialZombie: cfg.ZombieStart,
		Creatures:     cfg.Creatures,
		Moves:         cfg.Moves,
		Handler:       MultiHandler(recorder, observer),
	})
	if err != nil {
		return nil, nil, err
	}

	result, err := sim.Run()
	if err != nil {
		return nil, nil, err
	}

	run := &models.RunRecord{
		ID:        ulid.Make().String(),
		Config:    *cfg,
		Zombies:   result.Zombies,
		Survivors: result.Creatures,
		Events:    recorder.Records(),
		CreatedAt: rs.now().UTC(),
	}

	if rs.db != nil {
		if err := rs.db.SaveRun(run); err != nil {
			return nil, nil, fmt.Errorf("failed to store run %s: %w", run.ID, err)
		}
		log.Printf("Stored run %s (%d zombies, %d survivors)", run.ID, len(run.Zombies), len(run.Survivors))
	}

	return run, result, nil
}

// GetRun loads a stored run
func (rs *RunService) GetRun(runID string) (*models.RunRecord, error) {
	if rs.db == nil {
		return nil, ErrNoStorage
	}
	return rs.db.LoadRun(runID)
}

// ListRuns returns every stored run, oldest first
func (rs *RunService) ListRuns() ([]*models.RunRecord, error) {
	if rs.db == nil {
		return nil, ErrNoStorage
	}
	return rs.db.ListRuns()
}

// ResultFromRecord rebuilds the result of a stored run.
func ResultFromRecord(run *models.RunRecord) *SimulationResult {
	infections := run.Infections()
	return &SimulationResult{
		Zombies:    run.Zombies,
		Creatures:  run.Survivors,
		Moves:      len(run.Events) - infections,
		Infections: infections,
	}
}
