package bundle

// Set operations over import reference slices. Order of the first
// operand is preserved wherever the result is a slice; membership is
// what matters for equality and subset checks, since tracked imports
// are deduplicated at record time.

// Contains reports whether s contains v.
func Contains(s []string, v string) bool {
	for _, m := range s {
		if m == v {
			return true
		}
	}
	return false
}

// Difference returns the members of a not present in b, in a's order.
func Difference(a, b []string) []string {
	drop := make(map[string]struct{}, len(b))
	for _, m := range b {
		drop[m] = struct{}{}
	}
	var out []string
	for _, m := range a {
		if _, ok := drop[m]; !ok {
			out = append(out, m)
		}
	}
	return out
}

// Intersects reports whether a and b share at least one member.
func Intersects(a, b []string) bool {
	seen := make(map[string]struct{}, len(b))
	for _, m := range b {
		seen[m] = struct{}{}
	}
	for _, m := range a {
		if _, ok := seen[m]; ok {
			return true
		}
	}
	return false
}

// IsSubset reports whether every member of sub appears in super.
func IsSubset(sub, super []string) bool {
	seen := make(map[string]struct{}, len(super))
	for _, m := range super {
		seen[m] = struct{}{}
	}
	for _, m := range sub {
		if _, ok := seen[m]; !ok {
			return false
		}
	}
	return true
}

// SetEqual reports whether a and b hold the same members, ignoring
// order.
func SetEqual(a, b []string) bool {
	return IsSubset(a, b) && IsSubset(b, a)
}
