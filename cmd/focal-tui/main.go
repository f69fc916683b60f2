// focal-tui — the interactive drill-down explorer for profiling traces.
//
// Usage:
//
//	focal-tui [flags]
//
// Flags:
//
//	--db      Path to the SQLite catalog (default from config)
//	--config  Path to the YAML config file
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focal-dev/focal/internal/catalog"
	"github.com/focal-dev/focal/internal/config"
	"github.com/focal-dev/focal/internal/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to YAML config file")
	dbPath := flag.String("db", "", "Path to SQLite catalog (overrides config)")
	logPath := flag.String("log", "", "Write diagnostics to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	// The terminal belongs to the TUI; diagnostics go to a file or nowhere.
	var logW io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logW = f
	}
	logger := slog.New(slog.NewTextHandler(logW, nil))

	store, err := catalog.NewDBService(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open catalog at %s: %v\n"+
			"Import a profile first with: focal import <dump.json>\n", cfg.DBPath, err)
		os.Exit(1)
	}
	defer store.Close()

	model := tui.NewModel(store, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
