package reconcile

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Wildcard is the token meaning "match everything" in identifier lists.
const Wildcard = "*"

// ExpandCommaSeparated normalizes caller-supplied identifier lists. Any
// element containing commas is removed and its trimmed sub-elements are
// appended after the elements that had no commas. Duplicates produced by
// overlapping comma groups are preserved; deduplication, where wanted, is a
// caller-side step. A list that normalizes to a single empty string becomes
// an empty list.
func ExpandCommaSeparated(values []string) []string {
	kept := make([]string, 0, len(values))
	var expanded []string
	for _, v := range values {
		if !strings.Contains(v, ",") {
			kept = append(kept, v)
			continue
		}
		for _, part := range strings.Split(v, ",") {
			expanded = append(expanded, strings.TrimSpace(part))
		}
	}

	out := append(kept, expanded...)
	if len(out) == 1 && out[0] == "" {
		return []string{}
	}
	return out
}

// OrWildcard substitutes the wildcard-all token for an empty list, so that
// "no explicit filter" means "everything". The substitution deliberately
// lives with the caller contract, not inside ExpandCommaSeparated.
func OrWildcard(values []string) []string {
	if len(values) == 0 {
		return []string{Wildcard}
	}
	return values
}

// HasWildcard reports whether the list selects everything.
func HasWildcard(values []string) bool {
	for _, v := range values {
		if v == Wildcard {
			return true
		}
	}
	return false
}

// CanonicalKeys returns a copy of attrs with every key converted to the
// API's kebab-case form, so desired state may be written with snake_case or
// camelCase keys. Nested attribute maps are converted recursively.
func CanonicalKeys(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if nested, ok := v.(map[string]any); ok {
			v = CanonicalKeys(nested)
		}
		out[strcase.ToKebab(k)] = v
	}
	return out
}
