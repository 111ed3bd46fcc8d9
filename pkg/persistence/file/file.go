// Package file provides file-based persistence for program runs.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spritelang/spritec/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface using the
// file system. Each run is one JSON document under <root>/runs.
type Persistence struct {
	root string
}

// NewPersistence creates a new instance of Persistence with the specified root directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{root: cleanRoot}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck checks if the persistence layer is healthy by verifying the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Runs returns all stored runs, newest first.
func (fp *Persistence) Runs(ctx context.Context) ([]*persistence.RunRecord, error) {
	root := os.DirFS(fp.runsDir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list run files: %w", err)
	}

	records := make([]*persistence.RunRecord, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		runID := file[:len(file)-5] // Remove .json extension

		record, err := fp.RunByID(ctx, runID)
		if err != nil {
			if persistence.IsRunNotFound(err) {
				continue
			}

			return nil, err
		}

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// SaveRun writes a run record to the file system.
func (fp *Persistence) SaveRun(_ context.Context, record *persistence.RunRecord) error {
	err := os.MkdirAll(fp.runsDir(), 0750)
	if err != nil {
		return persistence.NewRunError("SaveRun", record.ID, fmt.Errorf("failed to create runs directory: %w", err))
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return persistence.NewRunError("SaveRun", record.ID, err)
	}

	filePath := path.Join(fp.runsDir(), record.ID+".json")

	return os.WriteFile(filePath, data, 0600)
}

// RunByID fetches a run record by its ID.
func (fp *Persistence) RunByID(_ context.Context, id string) (*persistence.RunRecord, error) {
	filePath := filepath.Clean(path.Join(fp.runsDir(), id+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewRunError("RunByID", id, persistence.ErrRunNotFound)
		}

		return nil, persistence.NewRunError("RunByID", id, err)
	}

	var record persistence.RunRecord

	err = json.Unmarshal(body, &record)
	if err != nil {
		return nil, persistence.NewRunError("RunByID", id, fmt.Errorf("%w: %w", persistence.ErrInvalidRecord, err))
	}

	return &record, nil
}

// DeleteRun removes a run by its ID. Deleting a missing run is not an error.
func (fp *Persistence) DeleteRun(_ context.Context, id string) error {
	filePath := path.Join(fp.runsDir(), id+".json")

	err := os.Remove(filePath)
	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return persistence.NewRunError("DeleteRun", id, err)
	}

	return nil
}

func (fp *Persistence) runsDir() string {
	return path.Join(fp.root, "runs")
}
