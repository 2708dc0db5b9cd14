package storage

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/san-kum/sortlab/internal/trace"
)

//go:embed schema.sql
var schema string

// Archive stores runs in a single SQLite database.
type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// OpenArchive opens or creates the database at path. Use ":memory:" in tests.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// One connection so an in-memory database is shared by every query.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Archive{db: db, now: time.Now}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (a *Archive) Close() error { return a.db.Close() }

func (a *Archive) Save(tr *trace.Trace, seed int64) (string, error) {
	runID := NewRunID(tr.Algorithm)
	meta := newMetadata(runID, tr, seed, a.now())

	input, err := json.Marshal(meta.Input)
	if err != nil {
		return "", err
	}
	perm, err := json.Marshal(meta.Permutation)
	if err != nil {
		return "", err
	}

	tx, err := a.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, algorithm, created_at, seed, size, steps, comparisons, swaps, stable, input, permutation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		meta.ID, meta.Algorithm, meta.Timestamp.UnixNano(), meta.Seed, meta.Size,
		meta.Steps, meta.Comparisons, meta.Swaps, meta.Stable, string(input), string(perm))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO steps
		(run_id, idx, kind, indices, snapshot, comparisons, swaps, counted, gap)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, idx) DO NOTHING`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, s := range tr.Steps {
		indices, err := json.Marshal(s.Indices)
		if err != nil {
			return "", err
		}
		snap, err := json.Marshal(s.Snapshot)
		if err != nil {
			return "", err
		}
		if _, err := stmt.Exec(runID, i, string(s.Kind), string(indices), string(snap),
			s.Comparisons, s.Swaps, int(s.Counted), s.Gap); err != nil {
			return "", fmt.Errorf("insert step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

const runColumns = `id, algorithm, created_at, seed, size, steps, comparisons, swaps, stable, input, permutation`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunMetadata, error) {
	var (
		meta        RunMetadata
		created     int64
		input, perm string
	)
	err := row.Scan(&meta.ID, &meta.Algorithm, &created, &meta.Seed, &meta.Size,
		&meta.Steps, &meta.Comparisons, &meta.Swaps, &meta.Stable, &input, &perm)
	if err != nil {
		return nil, err
	}
	meta.Timestamp = time.Unix(0, created)
	if err := json.Unmarshal([]byte(input), &meta.Input); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	if err := json.Unmarshal([]byte(perm), &meta.Permutation); err != nil {
		return nil, fmt.Errorf("decode permutation: %w", err)
	}
	return &meta, nil
}

func (a *Archive) List() ([]RunMetadata, error) {
	rows, err := a.db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *meta)
	}
	return runs, rows.Err()
}

func (a *Archive) Load(runID string) (*RunMetadata, error) {
	row := a.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	meta, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return meta, err
}

func (a *Archive) LoadTrace(runID string) (*trace.Trace, error) {
	meta, err := a.Load(runID)
	if err != nil {
		return nil, err
	}

	rows, err := a.db.Query(`SELECT kind, indices, snapshot, comparisons, swaps, counted, gap
		FROM steps WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]trace.Step, 0, meta.Steps)
	for rows.Next() {
		var (
			s             trace.Step
			kind          string
			indices, snap string
			counted       int
		)
		if err := rows.Scan(&kind, &indices, &snap, &s.Comparisons, &s.Swaps, &counted, &s.Gap); err != nil {
			return nil, err
		}
		s.Kind = trace.Kind(kind)
		s.Counted = trace.Counter(counted)
		if err := json.Unmarshal([]byte(indices), &s.Indices); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(snap), &s.Snapshot); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assemble(meta, steps), nil
}
