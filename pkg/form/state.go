package form

import (
	"sort"

	"github.com/goliatone/go-clientform/pkg/field"
)

// State maps field names to their field state. The key set is fixed by the
// Definition that created it.
type State map[string]field.State

// Entity is the flattened, validation-free projection of a State.
type Entity map[string]string

// Clone returns an independent copy of s.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	out := make(State, len(s))
	for name, value := range s {
		out[name] = value
	}
	return out
}

// Value returns the raw value stored for name.
func (s State) Value(name string) string {
	return s[name].Value
}

// HasErrors reports whether any field carries an error.
func (s State) HasErrors() bool {
	for _, value := range s {
		if value.Error {
			return true
		}
	}
	return false
}

// Failures returns the names of fields in error, sorted.
func (s State) Failures() []string {
	var names []string
	for name, value := range s {
		if value.Error {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Flatten strips error metadata, keeping only the values.
func (s State) Flatten() Entity {
	out := make(Entity, len(s))
	for name, value := range s {
		out[name] = value.Value
	}
	return out
}

// Clone returns an independent copy of e.
func (e Entity) Clone() Entity {
	if e == nil {
		return nil
	}
	out := make(Entity, len(e))
	for key, value := range e {
		out[key] = value
	}
	return out
}
