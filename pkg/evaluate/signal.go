package evaluate

import (
	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/tenantconfig"
)

// EvaluateSignal composes one signal for one asset from its primary fields.
// Every field is resolved through the effective-source rule and evaluated,
// and an audit record is appended to fieldsExamined regardless of outcome.
// Composition: any true wins; false only when no field is true and at least
// one is explicitly false; UNKNOWN only when every field is UNKNOWN.
func (e *Evaluator) EvaluateSignal(
	signal contracts.SignalDefinition,
	asset *contracts.Asset,
	cfg *contracts.TenantConfig,
	fieldsExamined *[]contracts.FieldExamination,
) contracts.EnhancedSignalResult {
	result := contracts.EnhancedSignalResult{
		Signal: signal.ID,
		Value:  contracts.TriUnknown,
	}

	anyTrue := false
	var firstFalse contracts.FailureReason

	for _, fieldID := range signal.PrimaryFields {
		result.FieldsChecked = append(result.FieldsChecked, fieldID)
		exam := contracts.FieldExamination{
			FieldID: fieldID,
			Signal:  signal.ID,
			Value:   contracts.TriUnknown,
		}

		field, ok := e.catalog.Field(fieldID)
		if !ok {
			exam.Value = contracts.TriFalse
			exam.FailureReason = contracts.ReasonNotMapped
			if firstFalse == contracts.ReasonNone {
				firstFalse = contracts.ReasonNotMapped
			}
			*fieldsExamined = append(*fieldsExamined, exam)
			continue
		}

		source, resolution := tenantconfig.Resolve(cfg, *field)
		switch resolution {
		case tenantconfig.ResolvedExcluded:
			// Excluded by the tenant: contributes no evidence either way.
			*fieldsExamined = append(*fieldsExamined, exam)
			continue
		case tenantconfig.ResolvedNone:
			exam.Value = contracts.TriFalse
			exam.FailureReason = contracts.ReasonNotMapped
			if firstFalse == contracts.ReasonNone {
				firstFalse = contracts.ReasonNotMapped
			}
			*fieldsExamined = append(*fieldsExamined, exam)
			continue
		}

		ev := EvaluateSource(source, asset)
		exam.SourceType = source.SourceType()
		exam.Value = ev.Value
		exam.RawValue = ev.RawValue
		exam.FailureReason = ev.FailureReason
		*fieldsExamined = append(*fieldsExamined, exam)

		switch ev.Value {
		case contracts.TriTrue:
			anyTrue = true
		case contracts.TriFalse:
			if firstFalse == contracts.ReasonNone {
				firstFalse = ev.FailureReason
			}
		}
	}

	switch {
	case anyTrue:
		result.Value = contracts.TriTrue
	case firstFalse != contracts.ReasonNone:
		result.Value = contracts.TriFalse
		result.FailureReason = firstFalse
	}
	return result
}
