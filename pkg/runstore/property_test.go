//go:build property
// +build property

package runstore_test

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/runstore"
)

// TestRunNumberingAndCap verifies the run-list invariants for any number
// of addRun calls: strictly increasing run numbers starting at one, a list
// never longer than fifty, and a surviving baseline.
func TestRunNumberingAndCap(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("numbering is 1..N and baseline survives trimming", prop.ForAll(
		func(n int) bool {
			store := runstore.NewStore(runstore.NewMemoryRepository())
			ctx := context.Background()

			for i := 0; i < n; i++ {
				if _, err := store.AddRun(ctx, "cap", "scope", float64(i), contracts.GapSnapshot{Total: i}, nil); err != nil {
					return false
				}
			}

			runs, err := store.GetRuns(ctx, "cap", "scope")
			if err != nil {
				return false
			}
			if n <= 50 {
				if len(runs) != n {
					return false
				}
				for i, r := range runs {
					if r.RunNumber != i+1 {
						return false
					}
				}
				return n == 0 || runs[0].IsBaseline
			}

			if len(runs) != 50 {
				return false
			}
			if !runs[0].IsBaseline || runs[0].RunNumber != 1 {
				return false
			}
			if runs[len(runs)-1].RunNumber != n {
				return false
			}
			for i := 1; i < len(runs); i++ {
				if runs[i].RunNumber <= runs[i-1].RunNumber {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 120),
	))

	properties.TestingRun(t)
}
