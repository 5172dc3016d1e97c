package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"zombie-outbreak/server/models"
)

// JSONStore handles run persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Runs map[string]*models.RunRecord `json:"runs"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Runs: make(map[string]*models.RunRecord),
		},
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.writeFileLocked(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Runs == nil {
		js.data.Runs = make(map[string]*models.RunRecord)
	}
	return nil
}

// writeFileLocked saves data to the JSON file. The caller must hold the write
// lock.
func (js *JSONStore) writeFileLocked() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	tmp := js.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, js.filePath)
}

// SaveRun saves a run to the store
func (js *JSONStore) SaveRun(run *models.RunRecord) error {
	if run.ID == "" {
		return fmt.Errorf("failed to save run: missing id")
	}

	js.mutex.Lock()
	defer js.mutex.Unlock()

	js.data.Runs[run.ID] = run
	if err := js.writeFileLocked(); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadRun loads a run by ID
func (js *JSONStore) LoadRun(runID string) (*models.RunRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	run, exists := js.data.Runs[runID]
	if !exists {
		return nil, fmt.Errorf("run with ID %s: %w", runID, ErrRunNotFound)
	}

	return run, nil
}

// ListRuns returns every stored run, oldest first
func (js *JSONStore) ListRuns() ([]*models.RunRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	runs := make([]*models.RunRecord, 0, len(js.data.Runs))
	for _, run := range js.data.Runs {
		runs = append(runs, run)
	}
	// ULIDs sort by creation time
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
