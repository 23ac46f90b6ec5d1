package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akaday/clspv/internal/manifest"
)

// Run is one recorded generation run.
type Run struct {
	ID               string `json:"id"`
	Seq              int64  `json:"seq"`
	OutDir           string `json:"out_dir"`
	Ext              string `json:"ext"`
	ManifestDigest   string `json:"manifest_digest"`
	FixtureCount     int    `json:"fixture_count"`
	GeneratorVersion string `json:"generator_version"`
}

// FixtureRecord is a fixture written by a run.
type FixtureRecord struct {
	Name   string `json:"name"`
	File   string `json:"file"`
	Digest string `json:"digest"`
}

// RecordRun stores a run and its manifest entries in one transaction and
// returns the stored run with its assigned seq.
//
// The seq is one more than the highest seq recorded so far. Recording the
// same run id twice is a no-op that returns the existing run.
func (s *Store) RecordRun(ctx context.Context, runID, outDir, ext string, m *manifest.Manifest) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := readRun(ctx, tx, runID)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	run := Run{
		ID:               runID,
		Seq:              seq,
		OutDir:           outDir,
		Ext:              ext,
		ManifestDigest:   m.Digest,
		FixtureCount:     len(m.Entries),
		GeneratorVersion: m.GeneratorVersion,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, out_dir, ext, manifest_digest, fixture_count, generator_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.OutDir,
		run.Ext,
		run.ManifestDigest,
		run.FixtureCount,
		run.GeneratorVersion,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	for _, e := range m.Entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO fixtures (run_id, name, file, digest)
			VALUES (?, ?, ?, ?)
		`, run.ID, e.Name, e.File, e.Digest)
		if err != nil {
			return Run{}, fmt.Errorf("record fixture %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}

	return run, nil
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readRun(ctx context.Context, q queryRower, runID string) (Run, error) {
	var run Run
	err := q.QueryRowContext(ctx, `
		SELECT id, seq, out_dir, ext, manifest_digest, fixture_count, generator_version
		FROM runs
		WHERE id = ?
	`, runID).Scan(
		&run.ID,
		&run.Seq,
		&run.OutDir,
		&run.Ext,
		&run.ManifestDigest,
		&run.FixtureCount,
		&run.GeneratorVersion,
	)
	return run, err
}

// GetRun returns a single run. The boolean is false if no run has that id.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, bool, error) {
	run, err := readRun(ctx, s.db, runID)
	if err == sql.ErrNoRows {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("get run: %w", err)
	}
	return run, true, nil
}

// ListRuns returns every recorded run ordered by seq.
// Returns an empty slice (not nil) if the ledger is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, out_dir, ext, manifest_digest, fixture_count, generator_version
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID,
			&run.Seq,
			&run.OutDir,
			&run.Ext,
			&run.ManifestDigest,
			&run.FixtureCount,
			&run.GeneratorVersion,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunFixtures returns the fixtures recorded for a run ordered by name.
func (s *Store) RunFixtures(ctx context.Context, runID string) ([]FixtureRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, file, digest
		FROM fixtures
		WHERE run_id = ?
		ORDER BY name COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query fixtures: %w", err)
	}
	defer rows.Close()

	records := []FixtureRecord{}
	for rows.Next() {
		var r FixtureRecord
		if err := rows.Scan(&r.Name, &r.File, &r.Digest); err != nil {
			return nil, fmt.Errorf("scan fixture: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixtures: %w", err)
	}
	return records, nil
}
