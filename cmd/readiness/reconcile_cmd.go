package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/metalake/readiness/pkg/config"
	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/reconcile"
)

// runReconcileCmd implements `readiness reconcile`.
//
// Reads a discovered schema snapshot, reconciles every catalog field
// against it, and emits the seeded tenant config plus ranked mapping
// recommendations.
//
// Exit codes:
//
//	0 = reconciliation completed
//	2 = usage or runtime error
func runReconcileCmd(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		schemaPath string
		tenantID   string
		recommend  bool
	)
	cmd.StringVar(&schemaPath, "schema", "", "Path to schema snapshot JSON (REQUIRED)")
	cmd.StringVar(&tenantID, "tenant", "", "Tenant id (REQUIRED)")
	cmd.BoolVar(&recommend, "recommend", false, "Include mapping recommendations")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if schemaPath == "" || tenantID == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --schema and --tenant are required")
		return 2
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: load catalog: %v\n", err)
		return 2
	}

	var schema contracts.SchemaSnapshot
	if err := readJSONFile(schemaPath, &schema); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: read schema: %v\n", err)
		return 2
	}

	engine := reconcile.NewEngine(cat)
	tenantConfig := engine.CreateInitialConfig(tenantID, &schema)

	output := struct {
		Config          *contracts.TenantConfig          `json:"config"`
		Recommendations []contracts.MappingRecommendation `json:"recommendations,omitempty"`
	}{Config: tenantConfig}

	if recommend {
		output.Recommendations = engine.Recommend(&schema, tenantConfig.FieldMappings)
	}

	if err := writeJSON(stdout, output); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: write output: %v\n", err)
		return 2
	}
	return 0
}
