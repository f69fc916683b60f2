// focal CLI — command-line interface for importing and inspecting
// profiling trees.
//
// Usage:
//
//	focal <command> [flags]
//
// Commands:
//
//	import    Import a profile dump into the catalog
//	list      List cataloged profiles
//	show      Print the projection of a (optionally focused) profile
//	analyze   Run statistical analysis on a profile
//	version   Print version information
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/focal-dev/focal/internal/catalog"
	"github.com/focal-dev/focal/internal/config"
	"github.com/focal-dev/focal/internal/ingest"
	"github.com/focal-dev/focal/internal/nav"
	"github.com/focal-dev/focal/internal/project"
	"github.com/focal-dev/focal/internal/query"
	"github.com/focal-dev/focal/internal/report"
	"github.com/focal-dev/focal/pkg/jsonutil"
	"github.com/focal-dev/focal/pkg/metric"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	if os.Getenv("FOCAL_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	switch os.Args[1] {
	case "import":
		cmdImport(cfg, logger)
	case "list":
		cmdList(cfg)
	case "show":
		cmdShow(cfg, logger)
	case "analyze":
		cmdAnalyze(cfg)
	case "version":
		fmt.Printf("focal v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`focal — drill-down explorer for profiling traces

Usage:
  focal <command> [flags]

Commands:
  import     Import a profile dump into the catalog
  list       List cataloged profiles
  show       Print the projection of a profile, optionally focused
  analyze    Run statistical analysis on a profile
  version    Print version information

Run 'focal <command> --help' for details on each command.
Use 'focal-tui' for the interactive explorer.`)
}

// openStore opens the catalog, failing the process on error.
func openStore(dbPath string) *catalog.DBService {
	store, err := catalog.NewDBService(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open catalog at %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	return store
}

// cmdImport ingests one or more dump files into the catalog.
func cmdImport(cfg config.Config, logger *slog.Logger) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "Path to SQLite catalog")
	fs.Parse(os.Args[2:])

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one dump file is required")
		fs.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create catalog directory: %v\n", err)
		os.Exit(1)
	}

	store := openStore(*dbPath)
	defer store.Close()

	loader := ingest.NewLoader(store, logger)
	for _, path := range fs.Args() {
		meta, err := loader.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed for %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("imported %s  %s  (%d nodes, %s)\n",
			meta.ProfileID, meta.Name, meta.NodeCount, metric.FormatSeconds(meta.TotalTime))
	}
}

// cmdList prints the catalog contents, newest first.
func cmdList(cfg config.Config) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "Path to SQLite catalog")
	name := fs.String("name", "", "Filter by profile name")
	limit := fs.Int("limit", 50, "Maximum profiles to list")
	asJSON := fs.Bool("json", false, "Output as JSON")
	compact := fs.Bool("compact", false, "Single-line JSON output (implies --json)")
	fs.Parse(os.Args[2:])

	store := openStore(*dbPath)
	defer store.Close()

	filter := catalog.ProfileFilter{Limit: *limit}
	if *name != "" {
		filter.Name = name
	}

	profiles, err := store.ListProfiles(filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON || *compact {
		printJSON(profiles, *compact)
		return
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles. Import one with: focal import <dump.json>")
		return
	}
	fmt.Printf("%-18s %-28s %10s %8s\n", "ID", "NAME", "TIME", "NODES")
	for _, p := range profiles {
		fmt.Printf("%-18s %-28s %10s %8d\n",
			p.ProfileID, p.Name, metric.FormatSeconds(p.TotalTime), p.NodeCount)
	}
}

// cmdShow projects a profile (optionally focused by a query) and prints
// the resulting table.
func cmdShow(cfg config.Config, logger *slog.Logger) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "Path to SQLite catalog")
	profileID := fs.String("profile", "", "Profile ID (required)")
	focus := fs.String("focus", "", "Query to focus before projecting, e.g. 'time > 0.5'")
	format := fs.String("format", "table", "Output format: table, json")
	roots := fs.String("roots", strings.Join(cfg.SourceRoots, ","), "Comma-separated source roots")
	compact := fs.Bool("compact", false, "Single-line JSON output")
	fs.Parse(os.Args[2:])

	if *profileID == "" {
		fmt.Fprintln(os.Stderr, "Error: --profile is required")
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*dbPath)
	defer store.Close()

	_, tree, err := store.GetProfile(*profileID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
		os.Exit(1)
	}

	projector := project.NewProjector(splitRoots(*roots))
	if cfg.MaxDepth > 0 {
		projector.SetMaxDepth(cfg.MaxDepth)
	}
	ctrl := nav.NewController(tree, projector, logger)

	table := ctrl.Current()
	if *focus != "" {
		sel, err := query.Compile(*focus)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad focus query: %v\n", err)
			os.Exit(1)
		}
		table = ctrl.Navigate(sel)
	}

	switch *format {
	case "json":
		printJSON(table, *compact)
	case "table":
		printTable(table)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		os.Exit(1)
	}
}

// printJSON writes a value as JSON, single-line when compact is set.
func printJSON(v interface{}, compact bool) {
	if compact {
		fmt.Println(jsonutil.MustMarshalCompact(v))
		return
	}
	fmt.Println(jsonutil.MustMarshalIndent(v))
}

// printTable writes a plain-text rendering of a projected table.
func printTable(t project.Table) {
	posName := "CALL"
	if t.Mode == project.ModeSourceAligned {
		posName = "LINE"
		fmt.Printf("source-aligned: %s\n\n", t.File)
	} else {
		fmt.Printf("depth-reduced\n\n")
	}

	fmt.Printf("%6s  %-48s %9s %10s %10s %6s\n",
		posName, "LABEL", "TIME", "RELEASED", "ALLOCATED", "DUPS")
	for _, row := range t.Rows {
		label := row.Label
		if row.Depth > 0 {
			label = strings.Repeat("  ", row.Depth) + label
		}
		if row.Truncated {
			label += " ..."
		}
		if len(label) > 48 {
			label = label[:45] + "..."
		}
		fmt.Printf("%6d  %-48s %9s %10s %10s %6s\n",
			row.Position, label,
			metric.FormatSeconds(row.Time),
			metric.FormatMegabytes(row.MemReleased),
			metric.FormatMegabytes(row.MemAllocated),
			metric.FormatCount(row.Duplications))
	}
}

// cmdAnalyze runs the analysis passes on a profile and outputs a report.
func cmdAnalyze(cfg config.Config) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "Path to SQLite catalog")
	profileID := fs.String("profile", "", "Profile ID (required)")
	format := fs.String("format", "markdown", "Output format: markdown, json")
	compact := fs.Bool("compact", false, "Single-line JSON output")
	fs.Parse(os.Args[2:])

	if *profileID == "" {
		fmt.Fprintln(os.Stderr, "Error: --profile is required")
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*dbPath)
	defer store.Close()

	meta, tree, err := store.GetProfile(*profileID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
		os.Exit(1)
	}

	rep := report.Analyze(meta.ProfileID, meta.Name, tree)

	switch *format {
	case "json":
		printJSON(rep, *compact)
	case "markdown":
		fmt.Print(report.FormatMarkdown(rep))
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		os.Exit(1)
	}
}

// splitRoots parses a comma-separated root list, dropping empties.
func splitRoots(s string) []string {
	var roots []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}
	return roots
}
