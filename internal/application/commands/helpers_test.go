package commands

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"plotsort/internal/adapters/filesystem"
	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// recordingSink keeps every notice in order
type recordingSink struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (s *recordingSink) Report(level domain.Level, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, domain.Notice{Level: level, Text: text})
}

func (s *recordingSink) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts := make([]string, len(s.notices))
	for i, n := range s.notices {
		texts[i] = n.Text
	}
	return texts
}

func (s *recordingSink) count(level domain.Level) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, notice := range s.notices {
		if notice.Level == level {
			n++
		}
	}
	return n
}

// tableReader serves a fixed table regardless of path
type tableReader struct {
	table *domain.Table
	err   error
	calls int
}

func (r *tableReader) ReadTable(string) (*domain.Table, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.table, nil
}

func groupingTable(rows ...[]string) *domain.Table {
	return &domain.Table{
		Header: []string{"4G Nomenclature B28", "4G Nomenclature B01", "4G Nomenclature B41", "Comments"},
		Rows:   rows,
	}
}

// setupSource creates a source directory with the given files and folders
func setupSource(t *testing.T, files, dirs []string) (ports.Workspace, string) {
	t.Helper()

	root := t.TempDir()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0755); err != nil {
			t.Fatalf("failed to create dir %s: %v", d, err)
		}
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", f, err)
		}
	}
	return filesystem.NewWorkspace(root), root
}

// spreadsheetFile creates a placeholder spreadsheet outside any source directory
func spreadsheetFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sites.xlsx")
	if err := os.WriteFile(path, []byte("placeholder"), 0644); err != nil {
		t.Fatalf("failed to create spreadsheet: %v", err)
	}
	return path
}

// listTree returns every path under root relative to it, sorted
func listTree(t *testing.T, root string) []string {
	t.Helper()

	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s: %v", root, err)
	}
	sort.Strings(paths)
	return paths
}
