package runstore

import (
	"context"
	"sort"

	"github.com/metalake/readiness/pkg/contracts"
)

// ComputeEvidenceDeltas diffs the evidence of two runs keyed by
// measureId:assetId. A key only in the later run is ADDED, only in the
// earlier is REMOVED, and present in both with a different value is
// CHANGED. Results sort by timestamp descending. Diffing a run against
// itself yields no deltas.
func ComputeEvidenceDeltas(from, to *contracts.EvaluationRun) []contracts.EvidenceDelta {
	fromByKey := make(map[string]contracts.EvidenceEntry, len(from.Evidence))
	for _, e := range from.Evidence {
		fromByKey[e.Key()] = e
	}

	var deltas []contracts.EvidenceDelta
	seen := make(map[string]bool, len(to.Evidence))
	for _, entry := range to.Evidence {
		key := entry.Key()
		seen[key] = true
		prev, existed := fromByKey[key]
		switch {
		case !existed:
			value := entry.Value
			deltas = append(deltas, contracts.EvidenceDelta{
				Key:       key,
				MeasureID: entry.MeasureID,
				AssetID:   entry.AssetID,
				Type:      contracts.DeltaAdded,
				To:        &value,
				FromRun:   from.RunNumber,
				ToRun:     to.RunNumber,
				Timestamp: entry.Timestamp,
			})
		case prev.Value != entry.Value:
			fromValue, toValue := prev.Value, entry.Value
			deltas = append(deltas, contracts.EvidenceDelta{
				Key:       key,
				MeasureID: entry.MeasureID,
				AssetID:   entry.AssetID,
				Type:      contracts.DeltaChanged,
				From:      &fromValue,
				To:        &toValue,
				FromRun:   from.RunNumber,
				ToRun:     to.RunNumber,
				Timestamp: entry.Timestamp,
			})
		}
	}
	for _, entry := range from.Evidence {
		key := entry.Key()
		if seen[key] {
			continue
		}
		value := entry.Value
		deltas = append(deltas, contracts.EvidenceDelta{
			Key:       key,
			MeasureID: entry.MeasureID,
			AssetID:   entry.AssetID,
			Type:      contracts.DeltaRemoved,
			From:      &value,
			FromRun:   from.RunNumber,
			ToRun:     to.RunNumber,
			Timestamp: entry.Timestamp,
		})
	}

	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].Timestamp.After(deltas[j].Timestamp)
	})
	return deltas
}

// GetAllEvidenceDeltas chains pairwise deltas across a scope's full run
// sequence, newest first within each pair.
func (s *Store) GetAllEvidenceDeltas(ctx context.Context, capabilityID, scopeID string) ([]contracts.EvidenceDelta, error) {
	runs, err := s.repo.LoadRuns(ctx, contracts.ScopeKey(capabilityID, scopeID))
	if err != nil {
		return nil, err
	}
	var deltas []contracts.EvidenceDelta
	for i := 1; i < len(runs); i++ {
		deltas = append(deltas, ComputeEvidenceDeltas(&runs[i-1], &runs[i])...)
	}
	return deltas, nil
}
