package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/metalake/readiness/pkg/catalog"
	"github.com/metalake/readiness/pkg/config"
	"github.com/metalake/readiness/pkg/runstore"

	_ "modernc.org/sqlite"
)

// Dispatcher
func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	cfg := config.Load()
	setupLogger(cfg, stderr)

	switch args[1] {
	case "reconcile":
		return runReconcileCmd(cfg, args[2:], stdout, stderr)
	case "evaluate":
		return runEvaluateCmd(cfg, args[2:], stdout, stderr)
	case "score":
		return runScoreCmd(cfg, args[2:], stdout, stderr)
	case "runs":
		if len(args) < 3 {
			_, _ = fmt.Fprintln(stderr, "Usage: readiness runs <summary|trajectory|deltas|baseline>")
			return 2
		}
		return runRunsCmd(cfg, args[2:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command %q\n", args[1])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, `Usage: readiness <command>

Commands:
  reconcile   Reconcile the field catalog against a discovered schema snapshot
  evaluate    Evaluate an asset population and emit evidence
  score       Score a population against a use case methodology
  runs        Inspect recorded evaluation runs (summary, trajectory, deltas, baseline)`)
}

func setupLogger(cfg *config.Config, stderr io.Writer) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})))
}

// loadCatalog returns the configured YAML catalog or the built-in default.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}

// openRunRepository opens the sqlite-backed repository named by
// DATABASE_PATH. Run inspection requires durable storage.
func openRunRepository(cfg *config.Config) (runstore.Repository, func(), error) {
	if cfg.DatabasePath == "" {
		return nil, nil, fmt.Errorf("DATABASE_PATH is required for run storage")
	}
	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %q: %w", cfg.DatabasePath, err)
	}
	repo, err := runstore.NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, func() { _ = db.Close() }, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
