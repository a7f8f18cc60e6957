package importing

import (
	"fmt"
	"sort"
	"strings"
)

type Reference struct {
	Name   string
	Table  string
	Column string
}

type Field struct {
	Name      string
	Aliases   []string
	Column    string
	Kind      FieldKind
	Required  bool
	MaxLength int
	Enum      []string
	// Format is a validator tag applied to present text values, e.g. "email".
	Format    string
	Reference *Reference
	Transform func(string) string
	Examples  []string
}

func (f Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// EnumValue returns the canonical enum member matching s, ignoring case.
func (f Field) EnumValue(s string) (string, bool) {
	for _, member := range f.Enum {
		if strings.EqualFold(member, s) {
			return member, true
		}
	}
	return "", false
}

type Schema struct {
	Name       string
	Title      string
	Table      string
	NaturalKey string
	Fields     []Field
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) KeyField() Field {
	f, _ := s.Field(s.NaturalKey)
	return f
}

func (s Schema) Headers() []string {
	headers := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		headers = append(headers, f.Name)
	}
	return headers
}

func (s Schema) References() []Reference {
	seen := make(map[string]struct{})
	refs := make([]Reference, 0)
	for _, f := range s.Fields {
		if f.Reference == nil {
			continue
		}
		if _, ok := seen[f.Reference.Name]; ok {
			continue
		}
		seen[f.Reference.Name] = struct{}{}
		refs = append(refs, *f.Reference)
	}
	return refs
}

func (s Schema) Check() error {
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Table) == "" {
		return fmt.Errorf("schema %q: name and table are required", s.Name)
	}

	names := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema %q: field without name", s.Name)
		}
		if _, dup := names[f.Name]; dup {
			return fmt.Errorf("schema %q: duplicate field %q", s.Name, f.Name)
		}
		names[f.Name] = struct{}{}
	}

	key, ok := s.Field(s.NaturalKey)
	if !ok {
		return fmt.Errorf("schema %q: natural key %q is not a field", s.Name, s.NaturalKey)
	}
	if key.Kind != KindText || !key.Required {
		return fmt.Errorf("schema %q: natural key %q must be a required text field", s.Name, s.NaturalKey)
	}
	return nil
}

type Registry struct {
	schemas map[string]Schema
}

func NewRegistry(schemas ...Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]Schema, len(schemas))}
	for _, s := range schemas {
		if err := s.Check(); err != nil {
			return nil, err
		}
		if _, dup := r.schemas[s.Name]; dup {
			return nil, fmt.Errorf("schema %q registered twice", s.Name)
		}
		r.schemas[s.Name] = s
	}
	return r, nil
}

func (r *Registry) Lookup(name string) (Schema, bool) {
	s, ok := r.schemas[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
