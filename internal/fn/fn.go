// Package fn holds small generic helpers shared by the command line and
// script packages.
package fn

// T is short for ternary.
func T[V any](condition bool, trueVal, falseVal V) V {
	if condition {
		return trueVal
	}
	return falseVal
}

// Or returns v unless it is the zero value, in which case fallback.
func Or[V comparable](v, fallback V) V {
	var zero V
	if v == zero {
		return fallback
	}
	return v
}
