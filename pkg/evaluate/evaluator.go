package evaluate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"

	"github.com/metalake/readiness/pkg/catalog"
	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/observability"
)

// Evaluator computes per-asset evidence against a catalog. It holds no
// mutable state; independent assets may be evaluated concurrently.
type Evaluator struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	clock   func() time.Time
	obs     *observability.Provider
}

// New creates an evaluator over a catalog.
func New(cat *catalog.Catalog) *Evaluator {
	return &Evaluator{
		catalog: cat,
		logger:  slog.Default(),
		clock:   time.Now,
	}
}

// WithClock overrides the clock for deterministic testing.
func (e *Evaluator) WithClock(clock func() time.Time) *Evaluator {
	e.clock = clock
	return e
}

// WithLogger overrides the evaluator logger.
func (e *Evaluator) WithLogger(l *slog.Logger) *Evaluator {
	e.logger = l
	return e
}

// WithObservability attaches a telemetry provider.
func (e *Evaluator) WithObservability(p *observability.Provider) *Evaluator {
	e.obs = p
	return e
}

// EvaluateAsset runs all seven signals for one asset and returns immutable
// evidence: signal results, gap counts, the raw attributes for drill-down,
// and a timestamped metadata block with the complete field-examination
// trail. Evidence production is atomic: the full record is produced or an
// error is returned; a partial signal set is never visible.
func (e *Evaluator) EvaluateAsset(asset *contracts.Asset, cfg *contracts.TenantConfig) (*contracts.EnhancedAssetEvidence, error) {
	var examined []contracts.FieldExamination
	signals := make([]contracts.EnhancedSignalResult, 0, len(contracts.AllSignals()))

	gapCount := 0
	highSeverity := 0
	for _, id := range contracts.AllSignals() {
		def, ok := e.catalog.Signal(id)
		if !ok {
			// A catalog without one of the seven signals cannot produce a
			// complete evidence record.
			return nil, fmt.Errorf("catalog defines no %q signal", id)
		}
		res := e.EvaluateSignal(*def, asset, cfg, &examined)
		signals = append(signals, res)
		if res.Value == contracts.TriFalse {
			gapCount++
			if contracts.HighSeveritySignal(id) {
				highSeverity++
			}
		}
	}

	evidence := &contracts.EnhancedAssetEvidence{
		AssetGUID:        asset.GUID,
		AssetName:        asset.Name,
		AssetType:        asset.TypeName,
		Signals:          signals,
		GapCount:         gapCount,
		HighSeverityGaps: highSeverity,
		RawAttributes:    asset.Attributes,
		Metadata: contracts.EvidenceMetadata{
			EvidenceID:     uuid.NewString(),
			EvaluatedAt:    e.clock().UTC(),
			FieldsExamined: examined,
		},
	}

	hash, err := contentHash(evidence)
	if err != nil {
		return nil, fmt.Errorf("hash evidence for %s: %w", asset.GUID, err)
	}
	evidence.Metadata.ContentHash = hash
	return evidence, nil
}

// contentHash produces a sha256 over the JCS-canonicalized evidence record,
// excluding the hash field itself.
func contentHash(evidence *contracts.EnhancedAssetEvidence) (string, error) {
	clone := *evidence
	clone.Metadata.ContentHash = ""
	raw, err := json.Marshal(&clone)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
