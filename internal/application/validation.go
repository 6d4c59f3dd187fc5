package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sourceDir" -> "source folder")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"sourceDir":       "source folder",
		"spreadsheetPath": "spreadsheet",
		"runID":           "run ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ResolveHome expands a leading "~" or "~/" to the user's home directory.
// Other forms such as "~user" are returned unchanged.
func ResolveHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ExpandHome is ResolveHome for callers that validate the path later.
// The path is returned unchanged when the home directory is unknown.
func ExpandHome(path string) string {
	expanded, err := ResolveHome(path)
	if err != nil {
		return path
	}
	return expanded
}

// ValidateSourceDir checks that path names an existing directory.
// Returns the cleaned absolute path or an InvalidPathError.
func ValidateSourceDir(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", &InvalidPathError{Path: path, Reason: "no path given"}
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", &InvalidPathError{Path: path, Reason: err.Error()}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &InvalidPathError{Path: path, Reason: "does not exist"}
		}
		return "", &InvalidPathError{Path: path, Reason: err.Error()}
	}
	if !info.IsDir() {
		return "", &InvalidPathError{Path: path, Reason: "not a directory"}
	}

	return abs, nil
}

// ValidateSpreadsheet checks that a spreadsheet path was supplied and is readable
func ValidateSpreadsheet(path string) error {
	if strings.TrimSpace(path) == "" {
		return &MissingInputError{Input: "a spreadsheet file"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &MissingInputError{Input: fmt.Sprintf("an existing spreadsheet file (%s not found)", path)}
		}
		return fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	if info.IsDir() {
		return &ValidationError{Field: "spreadsheetPath", Message: fmt.Sprintf("%s is a directory", path)}
	}
	return nil
}
