package reconcile

// IsSubset reports whether sub is structurally contained in super.
//
// Mappings: every key of sub must exist in super with a value that is
// itself a subset. Sequences: every element of sub must have some element
// of super it is a subset of; the match is existential, not positional.
// Anything else compares by exact equality with no type coercion, so the
// string "true" never equals the bool true and 1 never equals "1".
//
// The check decides whether a write is needed: attributes absent from sub
// are never treated as a change, which is what makes module invocations
// additive patches rather than full replacements.
func IsSubset(sub, super any) bool {
	if m, ok := sub.(map[string]any); ok {
		superMap, ok := super.(map[string]any)
		if !ok {
			return false
		}
		for k, v := range m {
			sv, present := superMap[k]
			if !present || !IsSubset(v, sv) {
				return false
			}
		}
		return true
	}

	if items, ok := asSlice(sub); ok {
		superItems, ok := asSlice(super)
		if !ok {
			return false
		}
		for _, item := range items {
			matched := false
			for _, candidate := range superItems {
				if IsSubset(item, candidate) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	}

	return sub == super
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}
