package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"plotsort/internal/adapters/tui"
	"plotsort/internal/bootstrap"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	sourceFlag := flag.String("source", "", "folder to prefill in the form")
	logFile := flag.String("log-file", "", "write diagnostic logs to this file")
	flag.Parse()

	// The alt screen owns stderr, so logs are dropped unless a file is given
	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(filepath.Clean(*logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}

	env, err := bootstrap.Setup(bootstrap.Options{ConfigPath: *configFlag, LogOutput: logOut})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	source := env.Config.SourceDir
	if *sourceFlag != "" {
		source = *sourceFlag
	}

	app := tui.NewApp(tui.Services{
		NewWorkspace: env.NewWorkspace,
		Reader:       env.Reader,
		Locker:       env.Locker,
		History:      env.History,
		HistoryLimit: env.Config.History.Limit,
		Logger:       env.Logger,
	}, source)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		env.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
