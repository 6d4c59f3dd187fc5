package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"plotsort/internal/application"
)

// StageSpreadsheet copies uploaded spreadsheet bytes into the OS temp
// directory, keeping the original extension so the reader can pick a format.
// The file is never placed inside the source directory. Call cleanup once
// grouping is done.
func StageSpreadsheet(r io.Reader, name string) (path string, cleanup func(), err error) {
	if r == nil {
		return "", nil, &application.MissingInputError{Input: "a spreadsheet file"}
	}

	ext := strings.ToLower(filepath.Ext(name))
	f, err := os.CreateTemp("", "plotsort-upload-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to stage spreadsheet: %w", err)
	}
	cleanup = func() { os.Remove(f.Name()) }

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to stage spreadsheet: %w", err)
	}
	if n == 0 {
		cleanup()
		return "", nil, &application.MissingInputError{Input: "a non-empty spreadsheet file"}
	}

	return f.Name(), cleanup, nil
}

// stageFile copies the spreadsheet at path into the OS temp directory
func stageFile(path string) (string, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	defer f.Close()
	return StageSpreadsheet(f, filepath.Base(path))
}

// spreadsheetEntry locates a spreadsheet relative to a source directory.
// inside reports whether it lies anywhere under root; name is its entry name
// when it sits directly at the top level.
func spreadsheetEntry(root, path string) (name string, inside bool) {
	abs, err := filepath.Abs(application.ExpandHome(path))
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(resolveLinks(root), resolveLinks(abs))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if filepath.Dir(rel) == "." {
		return rel, true
	}
	return "", true
}

func resolveLinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
