package bootstrap

import (
	"io"

	"github.com/rs/zerolog"

	"plotsort/internal/adapters/filesystem"
	"plotsort/internal/adapters/lock"
	"plotsort/internal/adapters/spreadsheet"
	"plotsort/internal/adapters/sqlite"
	"plotsort/internal/application/commands"
	"plotsort/internal/config"
	"plotsort/internal/logging"
	"plotsort/internal/ports"
)

// Env holds the adapters shared by every entry point
type Env struct {
	Config       *config.Config
	ConfigPath   string
	Logger       zerolog.Logger
	NewWorkspace commands.WorkspaceFactory
	Reader       ports.SheetReader
	Locker       ports.RunLocker
	History      ports.RunHistory // Nil when disabled or unavailable
}

// Options override configuration values, typically from flags
type Options struct {
	ConfigPath string
	LogLevel   string
	NoHistory  bool
	LogOutput  io.Writer // Defaults to stderr
}

// Setup loads configuration and builds the adapters.
// A history database that cannot be opened is logged and skipped.
func Setup(opts Options) (*Env, error) {
	cfg, path, _, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.NoHistory {
		cfg.History.Enabled = false
	}

	var logger zerolog.Logger
	if opts.LogOutput != nil {
		logger = logging.New(opts.LogOutput, cfg.LogLevel)
	} else {
		logger = logging.Stderr(cfg.LogLevel)
	}

	env := &Env{
		Config:       cfg,
		ConfigPath:   path,
		Logger:       logger,
		NewWorkspace: func(root string) ports.Workspace { return filesystem.NewWorkspace(root) },
		Reader:       spreadsheet.NewReader(),
		Locker:       lock.NewDirLocker(cfg.Lock.Dir),
	}

	if cfg.History.Enabled {
		history := sqlite.NewHistory()
		if err := history.Open(cfg.History.Path); err != nil {
			logger.Warn().Err(err).Msg("run history unavailable")
		} else {
			env.History = history
		}
	}

	logger.Debug().Str("config", path).Bool("history", env.History != nil).Msg("environment ready")
	return env, nil
}

// RunOptions returns the run options matching the environment
func (e *Env) RunOptions() []commands.RunOption {
	opts := []commands.RunOption{
		commands.WithLogger(e.Logger),
		commands.WithLocker(e.Locker),
	}
	if e.History != nil {
		opts = append(opts, commands.WithHistory(e.History))
	}
	return opts
}

// Close releases the history database
func (e *Env) Close() error {
	if e.History != nil {
		return e.History.Close()
	}
	return nil
}
