// Package store provides a SQLite-backed cache of computed feature vectors,
// keyed by input content hash and descriptor set, so repeated runs over the
// same inputs skip recomputation.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/crestlab/featurize/internal/feature"
)

// DB wraps a SQLite feature cache.
type DB struct {
	db *sql.DB
}

// Open opens or creates a feature cache at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the cache schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS features (
			input_hash TEXT NOT NULL,
			descriptor_set TEXT NOT NULL,
			dims INTEGER NOT NULL,
			vector_json TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (input_hash, descriptor_set)
		);
	`

	_, err := db.Exec(schema)
	return err
}

// HashInput computes the cache key for a raw input representation.
func HashInput(raw string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// Get looks up a cached vector. The second return value reports whether the
// entry was present.
func (d *DB) Get(inputHash, descriptorSet string) (feature.Vector, bool, error) {
	var vectorJSON string
	err := d.db.QueryRow(
		"SELECT vector_json FROM features WHERE input_hash = ? AND descriptor_set = ?",
		inputHash, descriptorSet,
	).Scan(&vectorJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache: %w", err)
	}

	var vec feature.Vector
	if err := json.Unmarshal([]byte(vectorJSON), &vec); err != nil {
		return nil, false, fmt.Errorf("decoding cached vector: %w", err)
	}
	return vec, true, nil
}

// Put stores a vector in the cache, replacing any existing entry for the
// same input and descriptor set.
func (d *DB) Put(inputHash, descriptorSet string, vec feature.Vector) error {
	vectorJSON, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("encoding vector: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO features (input_hash, descriptor_set, dims, vector_json, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		inputHash, descriptorSet, vec.Dimensions(), string(vectorJSON), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("storing vector: %w", err)
	}
	return nil
}

// Stats describes the cache contents.
type Stats struct {
	Entries        int      `json:"entries"`
	DescriptorSets []string `json:"descriptor_sets"`
}

// Stats returns statistics about the cache contents.
func (d *DB) Stats() (Stats, error) {
	var stats Stats
	if err := d.db.QueryRow("SELECT COUNT(*) FROM features").Scan(&stats.Entries); err != nil {
		return Stats{}, fmt.Errorf("counting entries: %w", err)
	}

	rows, err := d.db.Query("SELECT DISTINCT descriptor_set FROM features ORDER BY descriptor_set")
	if err != nil {
		return Stats{}, fmt.Errorf("listing descriptor sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var set string
		if err := rows.Scan(&set); err != nil {
			return Stats{}, fmt.Errorf("scanning descriptor set: %w", err)
		}
		stats.DescriptorSets = append(stats.DescriptorSets, set)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterating descriptor sets: %w", err)
	}

	return stats, nil
}

// Clear removes all cached vectors.
func (d *DB) Clear() error {
	if _, err := d.db.Exec("DELETE FROM features"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
