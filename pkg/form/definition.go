package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-clientform/pkg/field"
)

var (
	// ErrUnknownField is returned when an edit targets a field outside the
	// definition's key set.
	ErrUnknownField = errors.New("form: unknown field")

	errDefinitionIDMissing = errors.New("form definition: id is required")
	errDefinitionNoFields  = errors.New("form definition: at least one field is required")
)

// FieldSpec declares one field of a form. Rules run in order; the first rule
// is the base rule and later rules only run while the chain is still clean.
type FieldSpec struct {
	Name    string         `json:"name" yaml:"name"`
	Label   string         `json:"label,omitempty" yaml:"label,omitempty"`
	Rules   []field.RuleID `json:"rules,omitempty" yaml:"rules,omitempty"`
	Options []string       `json:"options,omitempty" yaml:"options,omitempty"`
}

// Definition is the static declaration of a form type.
type Definition struct {
	ID     string      `json:"id" yaml:"id"`
	Title  string      `json:"title,omitempty" yaml:"title,omitempty"`
	Entity string      `json:"entity,omitempty" yaml:"entity,omitempty"`
	Action string      `json:"action,omitempty" yaml:"action,omitempty"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`

	registry *field.Registry
}

// WithRegistry returns a copy of d that validates against reg instead of the
// default registry.
func (d Definition) WithRegistry(reg *field.Registry) Definition {
	d.registry = reg
	return d
}

func (d Definition) rules() *field.Registry {
	if d.registry != nil {
		return d.registry
	}
	return field.Default()
}

// Names returns the declared field names in declaration order.
func (d Definition) Names() []string {
	names := make([]string, 0, len(d.Fields))
	for _, spec := range d.Fields {
		names = append(names, spec.Name)
	}
	return names
}

// Spec returns the declaration for name.
func (d Definition) Spec(name string) (FieldSpec, bool) {
	for _, spec := range d.Fields {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// Label returns the label for name, deriving one when none was declared.
func (d Definition) Label(name string) string {
	if spec, ok := d.Spec(name); ok && strings.TrimSpace(spec.Label) != "" {
		return spec.Label
	}
	return DefaultLabel(name)
}

// New returns a blank state with every declared field empty and clean.
func (d Definition) New() State {
	state := make(State, len(d.Fields))
	for _, spec := range d.Fields {
		state[spec.Name] = field.Blank("")
	}
	return state
}

// FromEntity returns a clean state pre-filled from an existing entity, as
// used by edit forms. Keys the definition does not declare are ignored.
func (d Definition) FromEntity(entity Entity) State {
	state := d.New()
	for name := range state {
		state[name] = field.Blank(entity[name])
	}
	return state
}

// Edit returns a copy of state with name's value replaced. The error channel
// of the field is left untouched.
func (d Definition) Edit(state State, name, value string) (State, error) {
	if _, ok := d.Spec(name); !ok {
		return nil, fmt.Errorf("%w %q in form %q", ErrUnknownField, name, d.ID)
	}
	next := d.conform(state)
	current := next[name]
	current.Value = value
	next[name] = current
	return next, nil
}

// conform copies state restricted to the declared key set, filling any
// missing field with a blank value.
func (d Definition) conform(state State) State {
	out := make(State, len(d.Fields))
	for _, spec := range d.Fields {
		out[spec.Name] = state[spec.Name]
	}
	return out
}

// Check reports declaration problems: missing id, empty or duplicate field
// names and rule identifiers unknown to reg (the default registry when nil).
func (d Definition) Check(reg *field.Registry) error {
	if reg == nil {
		reg = d.rules()
	}
	var problems []error
	if strings.TrimSpace(d.ID) == "" {
		problems = append(problems, errDefinitionIDMissing)
	}
	if len(d.Fields) == 0 {
		problems = append(problems, errDefinitionNoFields)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, spec := range d.Fields {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			problems = append(problems, fmt.Errorf("form definition %q: field %d has no name", d.ID, idx))
			continue
		}
		if _, dup := seen[name]; dup {
			problems = append(problems, fmt.Errorf("form definition %q: duplicate field %q", d.ID, name))
		}
		seen[name] = struct{}{}
		for _, rule := range spec.Rules {
			if !reg.Has(rule) {
				problems = append(problems, fmt.Errorf("form definition %q: field %q uses unknown rule %q", d.ID, name, rule))
			}
			if rule == field.RuleOneOf && len(spec.Options) == 0 {
				problems = append(problems, fmt.Errorf("form definition %q: field %q declares oneof without options", d.ID, name))
			}
		}
	}
	return errors.Join(problems...)
}
