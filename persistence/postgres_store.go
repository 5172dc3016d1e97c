package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"zombie-outbreak/server/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore handles run persistence using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		grid_size INTEGER NOT NULL,
		zombie_start JSONB NOT NULL,
		creatures JSONB NOT NULL,
		moves TEXT NOT NULL,
		zombies JSONB NOT NULL,
		survivors JSONB NOT NULL,
		events JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveRun saves a run to the database
func (ps *PostgresStore) SaveRun(run *models.RunRecord) error {
	cols, err := marshalColumns(
		run.Config.ZombieStart,
		run.Config.Creatures,
		run.Zombies,
		run.Survivors,
		run.Events,
	)
	if err != nil {
		return fmt.Errorf("failed to marshal run %s: %w", run.ID, err)
	}

	query := `
	INSERT INTO runs (id, grid_size, zombie_start, creatures, moves, zombies, survivors, events, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id)
	DO UPDATE SET
		zombies = $6, survivors = $7, events = $8
	`

	_, err = ps.db.Exec(query,
		run.ID, run.Config.GridSize, cols[0], cols[1], run.Config.Moves,
		cols[2], cols[3], cols[4], run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

const selectRun = `SELECT id, grid_size, zombie_start, creatures, moves, zombies, survivors, events, created_at FROM runs`

// LoadRun loads a run from the database by ID
func (ps *PostgresStore) LoadRun(runID string) (*models.RunRecord, error) {
	run, err := scanRun(ps.db.QueryRow(selectRun+` WHERE id = $1`, runID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run with ID %s: %w", runID, ErrRunNotFound)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return run, nil
}

// ListRuns returns every stored run, oldest first
func (ps *PostgresStore) ListRuns() ([]*models.RunRecord, error) {
	rows, err := ps.db.Query(selectRun + ` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.RunRecord, error) {
	var run models.RunRecord
	var zombieStart, creatures, zombies, survivors, events string

	err := row.Scan(
		&run.ID, &run.Config.GridSize, &zombieStart, &creatures, &run.Config.Moves,
		&zombies, &survivors, &events, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	targets := []struct {
		raw  string
		dest any
	}{
		{zombieStart, &run.Config.ZombieStart},
		{creatures, &run.Config.Creatures},
		{zombies, &run.Zombies},
		{survivors, &run.Survivors},
		{events, &run.Events},
	}
	for _, t := range targets {
		if err := json.Unmarshal([]byte(t.raw), t.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run %s: %w", run.ID, err)
		}
	}
	return &run, nil
}

func marshalColumns(values ...any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[i] = string(data)
	}
	return out, nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return ps.db.Close()
}
