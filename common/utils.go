package common

import "math/rand/v2"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// PickRandom returns a uniformly random element of values using rng.
// The second return value is false when values is empty.
//
// Parameters:
//   - rng: the random source to draw from
//   - values: the candidates
//
// Returns:
//   - T: the chosen element, or the zero value
//   - bool: false if values was empty
func PickRandom[T any](rng *rand.Rand, values []T) (T, bool) {
	var zero T
	if len(values) == 0 || rng == nil {
		return zero, false
	}
	return values[rng.IntN(len(values))], true
}

// Contains reports whether v is present in values.
//
// Parameters:
//   - values: the slice to search
//   - v: the value to find
//
// Returns:
//   - bool: true if found
func Contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
