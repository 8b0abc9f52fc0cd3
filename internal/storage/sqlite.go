package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/gallery/internal/model"
)

const currentSchemaVersion = 1

// SQLiteSnapshotWriter writes snapshots into a SQLite database file.
// Each category occupies its own rows; writing a category replaces them.
type SQLiteSnapshotWriter struct {
	db *sql.DB
}

// NewSQLiteSnapshotWriter opens (or creates) the database at path.
func NewSQLiteSnapshotWriter(path string) (*SQLiteSnapshotWriter, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	w := &SQLiteSnapshotWriter{db: db}
	if err := w.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// Close closes the database connection.
func (w *SQLiteSnapshotWriter) Close() error {
	return w.db.Close()
}

// migrate runs database migrations.
func (w *SQLiteSnapshotWriter) migrate() error {
	var version int
	err := w.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < currentSchemaVersion {
		return w.migrateV1()
	}
	return nil
}

// migrateV1 creates the initial schema.
func (w *SQLiteSnapshotWriter) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS snapshots (
			category TEXT PRIMARY KEY NOT NULL,
			source_url TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS items (
			category TEXT NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL,
			PRIMARY KEY (category, position),
			FOREIGN KEY (category) REFERENCES snapshots(category) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_items_id ON items(id);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := w.db.Exec(schema)
	return err
}

// Write replaces the stored rows of the snapshot's category.
// Uses a transaction for atomicity - all or nothing.
func (w *SQLiteSnapshotWriter) Write(snapshot Snapshot) error {
	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items WHERE category = ?", snapshot.Category); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO snapshots (category, source_url, fetched_at)
		VALUES (?, ?, ?)
	`, snapshot.Category, snapshot.SourceURL, snapshot.FetchedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	itemStmt, err := tx.Prepare(`
		INSERT INTO items (category, position, id, title, description, image_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer itemStmt.Close()

	for i, item := range snapshot.Items {
		if _, err := itemStmt.Exec(
			snapshot.Category, i, item.ID.String(), item.Title, item.Description, item.ImageURL,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Read loads the snapshot of a category. Returns sql.ErrNoRows when the
// category was never written.
func (w *SQLiteSnapshotWriter) Read(category string) (*Snapshot, error) {
	snapshot := &Snapshot{Category: category, Items: []model.Item{}}

	var fetchedAt string
	err := w.db.QueryRow(`
		SELECT source_url, fetched_at FROM snapshots WHERE category = ?
	`, category).Scan(&snapshot.SourceURL, &fetchedAt)
	if err != nil {
		return nil, err
	}
	snapshot.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)

	rows, err := w.db.Query(`
		SELECT id, title, description, image_url
		FROM items
		WHERE category = ?
		ORDER BY position
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.Item
		var id string
		if err := rows.Scan(&id, &item.Title, &item.Description, &item.ImageURL); err != nil {
			return nil, err
		}
		item.ID = model.ItemID(id)
		snapshot.Items = append(snapshot.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
