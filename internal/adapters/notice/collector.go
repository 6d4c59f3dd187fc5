package notice

import (
	"sync"

	"plotsort/internal/domain"
)

// Collector keeps notices in memory for callers that render them later
type Collector struct {
	mu      sync.Mutex
	notices []domain.Notice
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Report implements ports.NoticeSink
func (c *Collector) Report(level domain.Level, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, domain.Notice{Level: level, Text: text})
}

// Notices returns a copy of everything reported so far
func (c *Collector) Notices() []domain.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Notice(nil), c.notices...)
}

// Texts returns the text of every notice in order
func (c *Collector) Texts() []string {
	notices := c.Notices()
	texts := make([]string, len(notices))
	for i, n := range notices {
		texts[i] = n.Text
	}
	return texts
}

// Count returns how many notices of the given level were reported
func (c *Collector) Count(level domain.Level) int {
	n := 0
	for _, notice := range c.Notices() {
		if notice.Level == level {
			n++
		}
	}
	return n
}
