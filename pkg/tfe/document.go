package tfe

import (
	"bytes"
	"encoding/json"
)

// Resource is a single JSON:API object as returned by the Terraform
// Enterprise v2 API: an opaque ID, a type name, an attributes map and a
// relationships map pointing at other resources. IDs are unique within a
// resource-type collection at any instant but are not stable across
// recreation of the resource.
type Resource struct {
	ID            string                   `json:"id,omitempty" yaml:"id,omitempty"`
	Type          string                   `json:"type,omitempty" yaml:"type,omitempty"`
	Attributes    map[string]any           `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Relationships map[string]*Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Links         map[string]any           `json:"links,omitempty" yaml:"links,omitempty"`
}

// Attr returns the named attribute, or nil when it is absent.
func (r *Resource) Attr(name string) any {
	if r == nil || r.Attributes == nil {
		return nil
	}
	return r.Attributes[name]
}

// StringAttr returns the named attribute as a string. Absent or
// non-string attributes yield the empty string.
func (r *Resource) StringAttr(name string) string {
	s, _ := r.Attr(name).(string)
	return s
}

// BoolAttr returns the named attribute as a bool, false when absent.
func (r *Resource) BoolAttr(name string) bool {
	b, _ := r.Attr(name).(bool)
	return b
}

// RelatedID returns the ID of the first resource referenced by the named
// relationship, or "" when the relationship is absent or empty.
func (r *Resource) RelatedID(name string) string {
	if r == nil || r.Relationships == nil {
		return ""
	}
	rel := r.Relationships[name]
	if rel == nil || len(rel.Data) == 0 || rel.Data[0] == nil {
		return ""
	}
	return rel.Data[0].ID
}

// ResourceRef is a {type, id} pointer to another resource.
type ResourceRef struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// Relationship holds relationship linkage. On the wire the data member may
// be a single object, an array, or null; all three forms decode into the
// Data slice and the original shape is preserved on re-encoding.
type Relationship struct {
	Data  []*ResourceRef
	Links map[string]any

	single bool
}

func (r *Relationship) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data  json.RawMessage `json:"data"`
		Links map[string]any  `json:"links"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Links = raw.Links
	data := bytes.TrimSpace(raw.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		r.Data = nil
		r.single = true
	case data[0] == '[':
		return json.Unmarshal(data, &r.Data)
	default:
		var ref ResourceRef
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		r.Data = []*ResourceRef{&ref}
		r.single = true
	}
	return nil
}

func (r Relationship) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 2)
	switch {
	case r.single && len(r.Data) == 0:
		out["data"] = nil
	case r.single:
		out["data"] = r.Data[0]
	default:
		out["data"] = r.Data
	}
	if r.Links != nil {
		out["links"] = r.Links
	}
	return json.Marshal(out)
}

// Document is the single-resource response envelope.
type Document struct {
	Data     *Resource   `json:"data" yaml:"data"`
	Included []*Resource `json:"included,omitempty" yaml:"included,omitempty"`
}

// Collection is the multi-resource response envelope.
type Collection struct {
	Data     []*Resource `json:"data" yaml:"data"`
	Included []*Resource `json:"included,omitempty" yaml:"included,omitempty"`
	Meta     *Meta       `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Find returns the resource with the given ID, or nil.
func (c *Collection) Find(id string) *Resource {
	if c == nil {
		return nil
	}
	for _, r := range c.Data {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Meta carries list metadata.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// Pagination is the standard TFE pagination block.
type Pagination struct {
	CurrentPage  int  `json:"current-page" yaml:"current-page"`
	PreviousPage *int `json:"prev-page" yaml:"prev-page"`
	NextPage     *int `json:"next-page" yaml:"next-page"`
	TotalPages   int  `json:"total-pages" yaml:"total-pages"`
	TotalCount   int  `json:"total-count" yaml:"total-count"`
}

// Payload is the request envelope for create and update calls.
type Payload struct {
	Data *PayloadData `json:"data"`
}

// PayloadData is the writable half of a resource.
type PayloadData struct {
	ID            string         `json:"id,omitempty"`
	Type          string         `json:"type"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	Relationships map[string]any `json:"relationships,omitempty"`
}

// SingleRelationship builds a to-one relationship payload pointing at one
// resource, for use in PayloadData.Relationships.
func SingleRelationship(resourceType, id string) any {
	return map[string]any{"data": &ResourceRef{ID: id, Type: resourceType}}
}

// RefsPayload is the request envelope for relationship endpoints, which
// take a bare list of resource references.
type RefsPayload struct {
	Data []*ResourceRef `json:"data"`
}
