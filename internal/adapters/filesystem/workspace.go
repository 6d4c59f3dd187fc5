package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"plotsort/internal/application"
	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// Move operation errors
var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrNotAFolder        = errors.New("exists and is not a folder")
	ErrInvalidName       = errors.New("invalid entry name")
)

// Workspace implements ports.Workspace on a directory of the local filesystem
type Workspace struct {
	root string
}

// Ensure Workspace implements ports.Workspace
var _ ports.Workspace = (*Workspace)(nil)

// NewWorkspace creates a workspace rooted at root
func NewWorkspace(root string) *Workspace {
	return &Workspace{root: application.ExpandHome(root)}
}

// Root returns the directory the workspace operates on
func (w *Workspace) Root() string {
	return w.root
}

// ListEntries returns the immediate entries of the root, sorted by name.
// Symlinks are classified by their target.
func (w *Workspace) ListEntries() ([]domain.Entry, error) {
	dirEntries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", w.root, err)
	}

	entries := make([]domain.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		path := filepath.Join(w.root, de.Name())
		mode := de.Type()

		if mode&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil {
				mode = info.Mode().Type()
			}
		}

		entries = append(entries, domain.Entry{
			Name:      de.Name(),
			Path:      path,
			IsRegular: mode.IsRegular(),
		})
	}

	domain.SortEntries(entries)
	return entries, nil
}

// Exists reports whether name resolves to an existing entry
func (w *Workspace) Exists(name string) bool {
	if !domain.IsPlainName(name) {
		return false
	}
	_, err := os.Stat(w.path(name))
	return err == nil
}

// EnsureFolder creates the named folder if it does not exist yet
func (w *Workspace) EnsureFolder(name string) (string, error) {
	if !domain.IsPlainName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	path := w.path(name)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return path, nil
	case err == nil:
		return "", fmt.Errorf("%s: %w", name, ErrNotAFolder)
	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed to inspect %s: %w", name, err)
	}

	if err := os.Mkdir(path, 0755); err != nil && !os.IsExist(err) {
		return "", fmt.Errorf("failed to create folder %s: %w", name, err)
	}
	return path, nil
}

// MoveInto moves the named entry into folder, keeping its name.
// An existing entry at the destination is never overwritten.
func (w *Workspace) MoveInto(name, folder string) (string, error) {
	if !domain.IsPlainName(name) || !domain.IsPlainName(folder) {
		return "", fmt.Errorf("%w: %q → %q", ErrInvalidName, name, folder)
	}

	src := w.path(name)
	dst := filepath.Join(w.path(folder), name)

	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("%s: %w", filepath.Join(folder, name), ErrDestinationExists)
	}

	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("failed to move %s: %w", name, err)
	}
	return dst, nil
}

// NestInOwnFolder moves a file into a new folder that carries the file's name.
// The file is renamed aside first so the folder can take its place.
func (w *Workspace) NestInOwnFolder(name string) (string, error) {
	if !domain.IsPlainName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	src := w.path(name)
	aside, err := os.CreateTemp(w.root, ".plotsort-"+name+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to reserve temporary name: %w", err)
	}
	asidePath := aside.Name()
	aside.Close()

	if err := os.Rename(src, asidePath); err != nil {
		os.Remove(asidePath)
		return "", fmt.Errorf("failed to move %s aside: %w", name, err)
	}

	if err := os.Mkdir(src, 0755); err != nil {
		// Put the file back where it was
		os.Rename(asidePath, src)
		return "", fmt.Errorf("failed to create folder %s: %w", name, err)
	}

	dst := filepath.Join(src, name)
	if err := os.Rename(asidePath, dst); err != nil {
		os.Remove(src)
		os.Rename(asidePath, src)
		return "", fmt.Errorf("failed to move %s: %w", name, err)
	}
	return dst, nil
}

func (w *Workspace) path(name string) string {
	return filepath.Join(w.root, name)
}
