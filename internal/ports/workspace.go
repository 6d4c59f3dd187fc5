package ports

import "plotsort/internal/domain"

// Workspace defines filesystem operations on a single source directory.
// Names are always immediate children of the directory root.
type Workspace interface {
	// Root returns the absolute path of the source directory
	Root() string

	// ListEntries returns the immediate entries of the source directory, sorted by name
	ListEntries() ([]domain.Entry, error)

	// Exists reports whether an entry with the given name is present
	Exists(name string) bool

	// EnsureFolder creates the named folder if absent and reuses it otherwise
	EnsureFolder(name string) (string, error)

	// MoveInto moves the named entry into the named folder, keeping its name
	MoveInto(name, folder string) (string, error)

	// NestInOwnFolder moves a file into a new folder carrying the file's own
	// name, so "report.txt" becomes "report.txt/report.txt"
	NestInOwnFolder(name string) (string, error)
}
