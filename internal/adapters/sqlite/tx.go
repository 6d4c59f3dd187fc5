package sqlite

import (
	"database/sql"
	"fmt"

	"plotsort/internal/domain"
)

// historyTx batches journal writes
type historyTx struct {
	tx *sql.Tx
}

func (h *History) beginTx() (*historyTx, error) {
	tx, err := h.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &historyTx{tx: tx}, nil
}

// InsertMove adds a move to its run
func (t *historyTx) InsertMove(move *domain.MoveRecord) error {
	_, err := t.tx.Exec(`
		INSERT INTO moves (run_id, phase, name, destination)
		VALUES (?, ?, ?, ?)
	`, move.RunID, string(move.Phase), move.Name, move.Destination)
	return err
}

// Commit commits the transaction
func (t *historyTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *historyTx) Rollback() error {
	return t.tx.Rollback()
}
