package urx

// Transform is a user-supplied stage function in either flavor: Pure
// (cannot fail) or Fallible (returns an error that terminates the
// stream). Operators only ever see the unified apply form, so each
// operator body exists once regardless of flavor.
type Transform[T, R any] struct {
	pure     func(T) R
	fallible func(T) (R, error)
}

// Pure wraps a transform that cannot fail.
func Pure[T, R any](f func(T) R) Transform[T, R] {
	return Transform[T, R]{pure: f}
}

// Fallible wraps a transform whose failure folds into the stream's error
// channel, indistinguishable downstream from a producer error.
func Fallible[T, R any](f func(T) (R, error)) Transform[T, R] {
	return Transform[T, R]{fallible: f}
}

func (t Transform[T, R]) apply(v T) (R, error) {
	if t.fallible != nil {
		return t.fallible(v)
	}
	return t.pure(v), nil
}
