package domain

import (
	"slices"
	"strings"
)

// Entry is an immediate child of a source directory
type Entry struct {
	Name      string
	Path      string
	IsRegular bool // Regular file; symlinks, devices and the like are false
}

// SortEntries sorts entries by name in ascending order
func SortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
}

// EntryNames returns the names of entries in their current order
func EntryNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

// RegularFiles filters entries down to regular files
func RegularFiles(entries []Entry) []Entry {
	var files []Entry
	for _, e := range entries {
		if e.IsRegular {
			files = append(files, e)
		}
	}
	return files
}

// IsPlainName reports whether name can address an immediate child of a
// directory: non-empty, not "." or "..", and free of path separators.
func IsPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}
