package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/gallery/internal/model"
)

// Snapshot is a one-shot export of the items of a category as fetched.
type Snapshot struct {
	Category  string       `json:"category"`
	SourceURL string       `json:"sourceUrl"`
	FetchedAt time.Time    `json:"fetchedAt"`
	Items     []model.Item `json:"items"`
}

// SnapshotWriter writes snapshots to some export format.
type SnapshotWriter interface {
	Write(snapshot Snapshot) error
}

// JSONSnapshotWriter writes a snapshot as an indented JSON file.
type JSONSnapshotWriter struct {
	path string
}

// NewJSONSnapshotWriter creates a JSONSnapshotWriter for the given file path.
func NewJSONSnapshotWriter(path string) *JSONSnapshotWriter {
	return &JSONSnapshotWriter{path: path}
}

// Write writes the snapshot, creating the directory if needed.
func (w *JSONSnapshotWriter) Write(snapshot Snapshot) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if snapshot.Items == nil {
		snapshot.Items = []model.Item{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(w.path, data, 0644)
}

// ReadJSONSnapshot reads a snapshot written by JSONSnapshotWriter.
func ReadJSONSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	if snapshot.Items == nil {
		snapshot.Items = []model.Item{}
	}
	return &snapshot, nil
}
