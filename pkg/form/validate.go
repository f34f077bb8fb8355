package form

import (
	"github.com/goliatone/go-clientform/pkg/field"
)

// Validate runs every declared rule chain against state and returns a new
// state whose error channel reflects the current values. Values are copied
// through untouched and fields missing from state validate as empty. The
// result is independent of field order and Validate(Validate(s)) equals
// Validate(s).
func (d Definition) Validate(state State) State {
	reg := d.rules()
	out := make(State, len(d.Fields))
	for _, spec := range d.Fields {
		out[spec.Name] = validateField(reg, d.Label(spec.Name), spec, state[spec.Name].Value)
	}
	return out
}

// validateField stops at the first failing rule so a format rule never
// overrides the base rule's message.
func validateField(reg *field.Registry, label string, spec FieldSpec, value string) field.State {
	params := field.Params{Options: spec.Options}
	for _, rule := range spec.Rules {
		result := reg.Validate(value, rule, label, params)
		if result.Error {
			return result
		}
	}
	return field.Blank(value)
}
