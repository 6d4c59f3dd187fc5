package notice

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"plotsort/internal/adapters/tui/styles"
	"plotsort/internal/domain"
)

// Console prints notices one per line, colored when writing to a terminal
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *lipgloss.Renderer
	quiet    bool
}

// ConsoleOption configures a Console
type ConsoleOption func(*Console)

// Quiet suppresses info and success notices
func Quiet(quiet bool) ConsoleOption {
	return func(c *Console) {
		c.quiet = quiet
	}
}

// NewConsole creates a console sink writing to out
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	renderer := lipgloss.NewRenderer(out)
	if !shouldColorize(out) {
		renderer.SetColorProfile(termenv.Ascii)
	}
	c := &Console{out: out, renderer: renderer}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Report implements ports.NoticeSink
func (c *Console) Report(level domain.Level, text string) {
	if c.quiet && (level == domain.LevelInfo || level == domain.LevelSuccess) {
		return
	}

	style := styles.LevelStyle(level).Renderer(c.renderer)
	line := style.Render(styles.LevelIcon(level) + " " + text)

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
