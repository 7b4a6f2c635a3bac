package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest summarizes one batch run.
type Manifest struct {
	RunID    string    `json:"run_id"`
	Created  time.Time `json:"created"`
	Rendered int       `json:"rendered"`
	Failed   int       `json:"failed"`
	Entries  []Result  `json:"entries"`
}

// NewManifest stamps results with a fresh run id.
func NewManifest(results []Result) Manifest {
	m := Manifest{
		RunID:   uuid.NewString(),
		Created: time.Now().UTC(),
		Entries: results,
	}
	for _, r := range results {
		if r.Success {
			m.Rendered++
		} else {
			m.Failed++
		}
	}
	return m
}

// WriteManifest writes manifest.json describing results to path.
func WriteManifest(path string, results []Result) (Manifest, error) {
	m := NewManifest(results)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return m, fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return m, fmt.Errorf("batch: write %s: %w", path, err)
	}
	return m, nil
}
