// Package diff compares two canonical documents field by field and explains
// what changed and how risky each change is.
package diff

import (
	"docseal/internal/canonical"
	"docseal/internal/sensitivity"
	"docseal/pkg/domain"
)

// Compare walks both documents by field path and reports every divergence.
// This is pure domain logic: no I/O, no side effects.
//
// Change detection is symmetric: Compare(a, b) and Compare(b, a) report the
// same field paths, with added/removed inverted and values swapped. Paths
// are emitted in sorted order so output is deterministic.
func Compare(original, candidate canonical.Document) ComparisonResult {
	originalLeaves := canonical.Flatten(original)
	candidateLeaves := canonical.Flatten(candidate)

	var changes []FieldChange
	rollup := domain.RiskNone

	for _, path := range canonical.Paths(originalLeaves, candidateLeaves) {
		originalValue, inOriginal := originalLeaves[path]
		candidateValue, inCandidate := candidateLeaves[path]

		var change FieldChange
		switch {
		case inOriginal && !inCandidate:
			change = FieldChange{Field: path, Type: ChangeRemoved, OriginalValue: originalValue}
		case !inOriginal && inCandidate:
			change = FieldChange{Field: path, Type: ChangeAdded, NewValue: candidateValue}
		case !canonical.ValueEqual(originalValue, candidateValue):
			change = FieldChange{
				Field:         path,
				Type:          ChangeModified,
				OriginalValue: originalValue,
				NewValue:      candidateValue,
			}
		default:
			continue
		}

		change.Risk = sensitivity.RiskFor(path)
		rollup = domain.MaxRisk(rollup, change.Risk)
		changes = append(changes, change)
	}

	return ComparisonResult{
		Matches: len(changes) == 0,
		Changes: changes,
		Risk:    rollup,
	}
}
