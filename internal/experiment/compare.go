package experiment

import "reflect"

// Comparator decides whether two observations agree. Callers may supply
// their own to compare a subset of fields or to treat domain-equivalent
// errors as agreement.
type Comparator func(control, candidate Observation) bool

// defaultMatched is the engine's default agreement rule: when both paths
// succeed, structural equality of the values; when both fail, symmetric
// failure counts as agreement; when exactly one fails, disagreement.
func defaultMatched(control, candidate Observation) bool {
	if control.Failed() || candidate.Failed() {
		return control.Failed() == candidate.Failed()
	}
	return reflect.DeepEqual(control.Value, candidate.Value)
}
