package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/metalake/readiness/pkg/config"
	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/evaluate"
	"github.com/metalake/readiness/pkg/runstore"
	"github.com/metalake/readiness/pkg/scoring"
)

// runScoreCmd implements `readiness score`.
//
// Evaluates an asset population, binds the use case's measures, builds the
// requested methodology through the single scoring factory, and emits the
// score result. With --record the outcome is appended to the run store as a
// new evaluation run.
//
// Exit codes:
//
//	0 = scoring completed
//	2 = usage or runtime error
func runScoreCmd(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("score", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		assetsPath    string
		configPath    string
		useCasePath   string
		methodType    string
		gate          float64
		unknownAsZero bool
		record        bool
		scopeID       string
	)
	cmd.StringVar(&assetsPath, "assets", "", "Path to asset records JSON array (REQUIRED)")
	cmd.StringVar(&configPath, "config", "", "Path to tenant config JSON (optional)")
	cmd.StringVar(&useCasePath, "usecase", "", "Path to use-case spec JSON (REQUIRED)")
	cmd.StringVar(&methodType, "method", string(contracts.MethodWeightedMeasures), "Methodology type")
	cmd.Float64Var(&gate, "gate", 0.75, "Readiness gate threshold (0-1)")
	cmd.BoolVar(&unknownAsZero, "unknown-as-zero", false, "Score unknown measures as zero instead of ignoring them")
	cmd.BoolVar(&record, "record", false, "Record the outcome as an evaluation run")
	cmd.StringVar(&scopeID, "scope", "default", "Scope id for run recording")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if assetsPath == "" || useCasePath == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --assets and --usecase are required")
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

	useCaseRaw, err := os.ReadFile(useCasePath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: read use case: %v\n", err)
		return 2
	}
	useCase, err := scoring.ParseUseCaseSpec(useCaseRaw)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	methodology, err := scoring.BuildMethodology(useCase, contracts.MethodologyType(methodType))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	opts := []scoring.Option{scoring.WithGateThreshold(gate)}
	if unknownAsZero {
		opts = append(opts, scoring.WithUnknownPolicy(contracts.UnknownAsZero))
	}
	scoringConfig := scoring.BuildScoringConfig(useCase.CapabilityID, useCase.Name, methodology, opts...)

	ctx := context.Background()
	evaluator := evaluate.New(cat)
	population, err := evaluator.EvaluatePopulation(ctx, assets, tenantConfig)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: evaluate population: %v\n", err)
		return 2
	}

	measures := evaluator.BindMeasures(useCase, population)
	result := scoring.Score(scoringConfig, measures)

	output := struct {
		Score    contracts.ScoreResult               `json:"score"`
		Measures map[string]contracts.MeasureValue   `json:"measures"`
		Run      *contracts.EvaluationRun            `json:"run,omitempty"`
	}{Score: result, Measures: measures}

	if record {
		repo, closeRepo, err := openRunRepository(cfg)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		defer closeRepo()

		gapsBySignal := make(map[contracts.SignalID]int, len(population.GapsBySignal))
		for id, n := range population.GapsBySignal {
			gapsBySignal[id] = n
		}
		run, err := runstore.NewStore(repo).AddRun(ctx, useCase.CapabilityID, scopeID,
			result.Readiness,
			contracts.GapSnapshot{
				Total:        population.TotalGaps,
				HighSeverity: population.HighSeverityGaps,
				BySignal:     gapsBySignal,
			},
			evaluator.EvidenceEntries(useCase, population),
		)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: record run: %v\n", err)
			return 2
		}
		output.Run = run
	}

	if err := writeJSON(stdout, output); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: write output: %v\n", err)
		return 2
	}
	return 0
}
