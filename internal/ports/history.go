package ports

import "plotsort/internal/domain"

// RunHistory persists a journal of runs and the moves they performed
type RunHistory interface {
	// Lifecycle
	Open(dbPath string) error
	Close() error

	// Recording
	StartRun(run *domain.RunRecord) error
	FinishRun(run *domain.RunRecord) error
	RecordMoves(moves []domain.MoveRecord) error

	// Queries
	ListRuns(limit int) ([]domain.RunRecord, error)
	GetRun(id string) (*domain.RunRecord, error)
	ListMoves(runID string) ([]domain.MoveRecord, error)
}

// RunLocker guards a source directory against overlapping runs
type RunLocker interface {
	// TryLock acquires the lock for dir, returning false if another run holds it
	TryLock(dir string) (bool, error)
	// Unlock releases a lock acquired with TryLock
	Unlock(dir string) error
}
