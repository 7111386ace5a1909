// Package setdiff computes unordered set reconciliation plans for the
// child collections of an event (rules, issue associations, pictures).
package setdiff

// Difference returns the elements of a that are not present in b.
// Order of the input is preserved; duplicates in a are kept.
func Difference[T comparable](a, b []T) []T {
	seen := make(map[T]struct{}, len(b))
	for _, v := range b {
		seen[v] = struct{}{}
	}

	var diff []T
	for _, v := range a {
		if _, ok := seen[v]; !ok {
			diff = append(diff, v)
		}
	}

	return diff
}

// Different reports whether current and desired differ as unordered sets,
// by length or by membership in either direction.
func Different[T comparable](current, desired []T) bool {
	return len(current) != len(desired) ||
		len(Difference(current, desired)) > 0 ||
		len(Difference(desired, current)) > 0
}

// Plan holds the operations needed to converge current onto desired.
type Plan[T comparable] struct {
	ToAdd    []T
	ToRemove []T
}

// Reconcile computes the minimal add/remove plan that converges current
// onto desired. It is pure and independent of any persistence concern.
func Reconcile[T comparable](current, desired []T) Plan[T] {
	return Plan[T]{
		ToAdd:    Difference(desired, current),
		ToRemove: Difference(current, desired),
	}
}
