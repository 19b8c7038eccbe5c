package reconcile

import (
	"errors"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// Field is one candidate match field for identifier resolution: a name for
// error text plus an accessor extracting the comparable value from a
// resource.
type Field struct {
	Name string
	Get  func(*tfe.Resource) string
}

// ByID matches the canonical resource ID.
func ByID() Field {
	return Field{Name: "id", Get: func(r *tfe.Resource) string { return r.ID }}
}

// ByAttribute matches a named attribute, e.g. "name" or "external-id".
func ByAttribute(name string) Field {
	return Field{
		Name: "attributes." + name,
		Get:  func(r *tfe.Resource) string { return r.StringAttr(name) },
	}
}

// ByRelatedID matches the ID of the first resource referenced by the named
// relationship.
func ByRelatedID(relationship string) Field {
	return Field{
		Name: "relationships." + relationship,
		Get:  func(r *tfe.Resource) string { return r.RelatedID(relationship) },
	}
}

// NotFoundError reports that an identifier matched nothing. Callers decide
// whether that is fatal (the target must exist) or benign (a creation
// trigger, or a "not found" entry in an info result).
type NotFoundError struct {
	Kind  string
	Token string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q was not found", e.Kind, e.Token)
}

// AmbiguousError reports that an identifier matched more than one resource
// on a field that must match uniquely. It is always fatal and deliberately
// distinct from NotFoundError.
type AmbiguousError struct {
	Kind  string
	Token string
	Field string
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("found %d %ss matching %q on %s; refer to the %s by its ID",
		e.Count, e.Kind, e.Token, e.Field, e.Kind)
}

// IsNotFound reports whether err is an identifier-resolution miss.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAmbiguous reports whether err is a multiple-match failure.
func IsAmbiguous(err error) bool {
	var amb *AmbiguousError
	return errors.As(err, &amb)
}

// Resolve maps a human-supplied token to a canonical resource ID by
// scanning the collection against each field in priority order: the whole
// collection is checked for the first field before the second field is
// consulted, and the first resource matching wins. Collections are never
// cached; callers resolve against a freshly fetched listing every
// invocation.
func Resolve(kind, token string, collection []*tfe.Resource, fields ...Field) (string, error) {
	for _, f := range fields {
		for _, r := range collection {
			if f.Get(r) == token {
				return r.ID, nil
			}
		}
	}
	return "", &NotFoundError{Kind: kind, Token: token}
}

// ResolveUnique is Resolve with an ambiguity check: if any field matches
// more than one resource, resolution fails with an AmbiguousError instead
// of silently picking the first match.
func ResolveUnique(kind, token string, collection []*tfe.Resource, fields ...Field) (string, error) {
	for _, f := range fields {
		var matches []*tfe.Resource
		for _, r := range collection {
			if f.Get(r) == token {
				matches = append(matches, r)
			}
		}
		if len(matches) > 1 {
			return "", &AmbiguousError{Kind: kind, Token: token, Field: f.Name, Count: len(matches)}
		}
		if len(matches) == 1 {
			return matches[0].ID, nil
		}
	}
	return "", &NotFoundError{Kind: kind, Token: token}
}
