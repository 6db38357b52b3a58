package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/metalake/readiness/pkg/config"
	"github.com/metalake/readiness/pkg/runstore"
)

// runRunsCmd implements `readiness runs <summary|trajectory|deltas|baseline>`.
//
// Exit codes:
//
//	0 = completed
//	2 = usage or runtime error
func runRunsCmd(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	sub := args[0]

	cmd := flag.NewFlagSet("runs "+sub, flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		capabilityID string
		scopeID      string
		runNumber    int
	)
	cmd.StringVar(&capabilityID, "capability", "", "Capability id (REQUIRED)")
	cmd.StringVar(&scopeID, "scope", "default", "Scope id")
	cmd.IntVar(&runNumber, "run", 0, "Run number (baseline only)")

	if err := cmd.Parse(args[1:]); err != nil {
		return 2
	}
	if capabilityID == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --capability is required")
		return 2
	}

	repo, closeRepo, err := openRunRepository(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer closeRepo()

	store := runstore.NewStore(repo)
	ctx := context.Background()

	var output any
	switch sub {
	case "summary":
		output, err = store.GetRunSummary(ctx, capabilityID, scopeID)
	case "trajectory":
		output, err = store.GetGapTrajectory(ctx, capabilityID, scopeID)
	case "deltas":
		output, err = store.GetAllEvidenceDeltas(ctx, capabilityID, scopeID)
	case "baseline":
		if runNumber <= 0 {
			_, _ = fmt.Fprintln(stderr, "Error: --run is required for baseline")
			return 2
		}
		if err := store.ResetBaseline(ctx, capabilityID, scopeID, runNumber); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		_, _ = fmt.Fprintf(stdout, "Baseline set to run %d\n", runNumber)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown runs subcommand %q\n", sub)
		return 2
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := writeJSON(stdout, output); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: write output: %v\n", err)
		return 2
	}
	return 0
}
