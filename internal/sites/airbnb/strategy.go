package airbnb

// Outcome is the tagged result of a single strategy.
type Outcome[T any] struct {
	Value T
	Found bool
}

// Found wraps a value produced by a strategy.
func Found[T any](v T) Outcome[T] { return Outcome[T]{Value: v, Found: true} }

// NotFound reports that a strategy produced nothing.
func NotFound[T any]() Outcome[T] { return Outcome[T]{} }

// Strategy is one way of locating a value.
type Strategy[T any] func() Outcome[T]

// First runs strategies in order and returns the first value found.
// Results from different strategies are never merged.
func First[T any](strategies ...Strategy[T]) (T, bool) {
	for _, s := range strategies {
		if o := s(); o.Found {
			return o.Value, true
		}
	}
	var zero T
	return zero, false
}
