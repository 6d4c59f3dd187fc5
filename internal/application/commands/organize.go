package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// OrganizeResult contains the result of organizing files by prefix
type OrganizeResult struct {
	Prefixes []string // Distinct prefix keys used, sorted
	Moved    []string // Files moved into a prefix folder
	Skipped  []string // Files without a usable prefix
	Failures []Failure
	Moves    []domain.MoveRecord
	Message  string
}

// OrganizeCommand moves every top-level file of a workspace into a folder
// named after the file's prefix
type OrganizeCommand struct {
	ws     ports.Workspace
	notify notifier
	Keep   []string // Top-level files left in place
}

// NewOrganizeCommand creates a new OrganizeCommand
func NewOrganizeCommand(ws ports.Workspace, sink ports.NoticeSink) *OrganizeCommand {
	return &OrganizeCommand{
		ws:     ws,
		notify: newNotifier(sink),
	}
}

// Execute runs the organize command.
// Per-file failures are reported and recorded; only a failure to list the
// directory or a cancelled context aborts the pass.
func (c *OrganizeCommand) Execute(ctx context.Context) (*OrganizeResult, error) {
	entries, err := c.ws.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to list source folder: %w", err)
	}

	result := &OrganizeResult{}
	used := make(map[string]bool)

	// Directories and other non-regular entries are left alone
	for _, entry := range domain.RegularFiles(entries) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if slices.Contains(c.Keep, entry.Name) {
			continue
		}

		prefix := domain.ExtractPrefix(entry.Name)
		if prefix == "" {
			c.notify.warn("Skipped: %s (No valid prefix found)", entry.Name)
			result.Skipped = append(result.Skipped, entry.Name)
			continue
		}

		dst, err := c.moveFile(entry.Name, prefix)
		if err != nil {
			c.notify.fail("Failed to move %s: %v", entry.Name, err)
			result.Failures = append(result.Failures, Failure{Name: entry.Name, Err: err})
			continue
		}

		used[prefix] = true
		result.Moved = append(result.Moved, entry.Name)
		result.Moves = append(result.Moves, domain.MoveRecord{
			Phase:       domain.PhasePrefix,
			Name:        entry.Name,
			Destination: prefix,
		})
		c.notify.success("Moved: %s → %s", entry.Name, filepath.Dir(dst))
	}

	for prefix := range used {
		result.Prefixes = append(result.Prefixes, prefix)
	}
	slices.Sort(result.Prefixes)

	result.Message = fmt.Sprintf("Moved %d file(s) into %d prefix folder(s), skipped %d",
		len(result.Moved), len(result.Prefixes), len(result.Skipped))
	return result, nil
}

func (c *OrganizeCommand) moveFile(name, prefix string) (string, error) {
	// A file without delimiters would collide with its own folder
	if prefix == name {
		return c.ws.NestInOwnFolder(name)
	}
	if _, err := c.ws.EnsureFolder(prefix); err != nil {
		return "", err
	}
	return c.ws.MoveInto(name, prefix)
}
