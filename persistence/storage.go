package persistence

import (
	"errors"
	"fmt"
	"log"

	"zombie-outbreak/server/config"
	"zombie-outbreak/server/models"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// Storage defines the interface for run persistence
type Storage interface {
	SaveRun(run *models.RunRecord) error
	LoadRun(runID string) (*models.RunRecord, error)
	ListRuns() ([]*models.RunRecord, error)
	Close() error
}

// Open returns the store selected by cfg.DBType
func Open(cfg *config.Config) (Storage, error) {
	switch cfg.DBType {
	case "postgres":
		store, err := NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Println("Using PostgreSQL persistence")
		return store, nil
	case "json", "":
		store, err := NewJSONStore(cfg.DBFile)
		if err != nil {
			return nil, err
		}
		log.Println("Using JSON persistence")
		return store, nil
	}
	return nil, fmt.Errorf("unknown db type %q", cfg.DBType)
}
