package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"plotsort/internal/application"
	"plotsort/internal/domain"
	"plotsort/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// ErrRunNotFound is returned when a run ID is not in the journal
var ErrRunNotFound = errors.New("run not found")

// History implements ports.RunHistory using SQLite
type History struct {
	db     *sql.DB
	dbPath string
}

// Ensure History implements RunHistory
var _ ports.RunHistory = (*History)(nil)

// NewHistory creates a new SQLite run journal
func NewHistory() *History {
	return &History{}
}

// Open initializes the journal at dbPath, or at the default location when empty
func (h *History) Open(dbPath string) error {
	if dbPath == "" {
		dbPath = DefaultPath()
	}
	dbPath, err := application.ResolveHome(dbPath)
	if err != nil {
		return err
	}
	h.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(h.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", h.dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	h.db = db

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source_dir TEXT NOT NULL,
			spreadsheet TEXT NOT NULL DEFAULT '',
			started_at INTEGER NOT NULL,
			finished_at INTEGER,
			status TEXT NOT NULL,
			files_moved INTEGER NOT NULL DEFAULT 0,
			files_skipped INTEGER NOT NULL DEFAULT 0,
			folders_moved INTEGER NOT NULL DEFAULT 0,
			folders_not_found INTEGER NOT NULL DEFAULT 0,
			remaining INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			phase TEXT NOT NULL,
			name TEXT NOT NULL,
			destination TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
		CREATE INDEX IF NOT EXISTS idx_moves_run ON moves(run_id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (h *History) Path() string {
	return h.dbPath
}

// DefaultPath returns the journal location under the XDG data directory
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "plotsort", "history.db")
}

// StartRun inserts a new run
func (h *History) StartRun(run *domain.RunRecord) error {
	_, err := h.db.Exec(`
		INSERT INTO runs (id, source_dir, spreadsheet, started_at, status)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.SourceDir, run.Spreadsheet, run.StartedAt.UnixMilli(), string(run.Status))
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun stores the final status and counters of a run
func (h *History) FinishRun(run *domain.RunRecord) error {
	res, err := h.db.Exec(`
		UPDATE runs
		SET finished_at = ?, status = ?, files_moved = ?, files_skipped = ?,
			folders_moved = ?, folders_not_found = ?, remaining = ?, error = ?
		WHERE id = ?
	`, nullTime(run.FinishedAt), string(run.Status), run.FilesMoved, run.FilesSkipped,
		run.FoldersMoved, run.FoldersNotFound, run.Remaining, run.Error, run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", run.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", run.ID, ErrRunNotFound)
	}
	return nil
}

// RecordMoves appends moves in a single transaction
func (h *History) RecordMoves(moves []domain.MoveRecord) error {
	if len(moves) == 0 {
		return nil
	}

	tx, err := h.beginTx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range moves {
		if err := tx.InsertMove(&moves[i]); err != nil {
			return fmt.Errorf("failed to record move of %s: %w", moves[i].Name, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns up to limit runs, newest first
func (h *History) ListRuns(limit int) ([]domain.RunRecord, error) {
	rows, err := h.db.Query(`
		SELECT `+runColumns+`
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// GetRun retrieves a run by ID
func (h *History) GetRun(id string) (*domain.RunRecord, error) {
	run, err := scanRun(h.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListMoves returns the moves of a run in the order they happened
func (h *History) ListMoves(runID string) ([]domain.MoveRecord, error) {
	rows, err := h.db.Query(`
		SELECT run_id, phase, name, destination
		FROM moves WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []domain.MoveRecord
	for rows.Next() {
		var m domain.MoveRecord
		var phase string
		if err := rows.Scan(&m.RunID, &phase, &m.Name, &m.Destination); err != nil {
			return nil, err
		}
		m.Phase = domain.Phase(phase)
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

const runColumns = `id, source_dir, spreadsheet, started_at, finished_at, status,
	files_moved, files_skipped, folders_moved, folders_not_found, remaining, error`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.RunRecord, error) {
	var run domain.RunRecord
	var started int64
	var finished sql.NullInt64
	var status string

	err := row.Scan(&run.ID, &run.SourceDir, &run.Spreadsheet, &started, &finished, &status,
		&run.FilesMoved, &run.FilesSkipped, &run.FoldersMoved, &run.FoldersNotFound, &run.Remaining, &run.Error)
	if err != nil {
		return nil, err
	}

	run.StartedAt = time.UnixMilli(started)
	if finished.Valid {
		run.FinishedAt = time.UnixMilli(finished.Int64)
	}
	run.Status = domain.RunStatus(status)
	return &run, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}
