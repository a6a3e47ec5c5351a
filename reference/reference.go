// Package reference stores confirmed (reference id, cluster id) pairs in
// SQLite so a repeated confirm pass over the same taxonomy/cluster
// combination can check its species against the earlier run's. It
// mirrors a simple one-to-one relation table lookup; with an unchanged
// taxonomy, confirm's result is identical with or without it.
package reference

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bioaodp/oligosig/internal/apperr"
)

// Cache wraps a SQLite-backed confirm table.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) a cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("reference: open %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS confirmed (
		reference_id TEXT NOT NULL,
		cluster_id   INTEGER NOT NULL,
		species      TEXT NOT NULL,
		PRIMARY KEY (reference_id, cluster_id)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("reference: init schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Lookup returns the cached species for (referenceID, clusterID), if any
// confirm pass has already recorded one.
func (c *Cache) Lookup(referenceID string, clusterID int) (species string, ok bool, err error) {
	row := c.db.QueryRow(`SELECT species FROM confirmed WHERE reference_id = ? AND cluster_id = ?`, referenceID, clusterID)
	err = row.Scan(&species)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reference: lookup: %w", err)
	}
	return species, true, nil
}

// Store records a confirmed (referenceID, clusterID) -> species mapping.
func (c *Cache) Store(referenceID string, clusterID int, species string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO confirmed(reference_id, cluster_id, species) VALUES (?, ?, ?)`,
		referenceID, clusterID, species,
	)
	if err != nil {
		return fmt.Errorf("reference: store: %w", err)
	}
	return nil
}

// MustOpen is a convenience for CLI wiring: it wraps Open's error in an
// apperr with apperr.Internal kind, since a file open or parse failure
// here is always fatal.
func MustOpen(path string) (*Cache, error) {
	c, err := Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "opening reference database %s", path)
	}
	return c, nil
}
