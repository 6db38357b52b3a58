package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/metalake/readiness/pkg/config"
	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/evaluate"
)

// runEvaluateCmd implements `readiness evaluate`.
//
// Evaluates an asset population against the catalog under an optional
// tenant config and emits per-asset evidence, signal breakdowns and field
// coverage.
//
// Exit codes:
//
//	0 = evaluation completed
//	2 = usage or runtime error
func runEvaluateCmd(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		assetsPath string
		configPath string
	)
	cmd.StringVar(&assetsPath, "assets", "", "Path to asset records JSON array (REQUIRED)")
	cmd.StringVar(&configPath, "config", "", "Path to tenant config JSON (optional; defaults apply)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if assetsPath == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --assets is required")
		return 2
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: load catalog: %v\n", err)
		return 2
	}

	var assets []contracts.Asset
	if err := readJSONFile(assetsPath, &assets); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: read assets: %v\n", err)
		return 2
	}

	var tenantConfig *contracts.TenantConfig
	if configPath != "" {
		tenantConfig = &contracts.TenantConfig{}
		if err := readJSONFile(configPath, tenantConfig); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: read tenant config: %v\n", err)
			return 2
		}
	}

	result, err := evaluate.New(cat).EvaluatePopulation(context.Background(), assets, tenantConfig)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: evaluate population: %v\n", err)
		return 2
	}
	if err := writeJSON(stdout, result); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: write output: %v\n", err)
		return 2
	}
	return 0
}
