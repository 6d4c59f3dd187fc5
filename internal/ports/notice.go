package ports

import "plotsort/internal/domain"

// NoticeSink receives the status messages produced while organizing.
// Implementations render them (console, TUI log, MCP response) or collect them.
type NoticeSink interface {
	Report(level domain.Level, text string)
}
