package util

// FindFirst returns the first element of the slice that satisfies the predicate.
// The second return value reports whether such an element was found.
func FindFirst[T any](s []T, predicate func(T) bool) (T, bool) {
	for _, v := range s {
		if predicate(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the elements of the slice that satisfy the predicate, in order.
func Filter[T any](s []T, predicate func(T) bool) []T {
	var result []T
	for _, v := range s {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}
