package field

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps rule identifiers to rule implementations. It is safe for
// concurrent use; registrations normally happen once at start-up.
type Registry struct {
	mu    sync.RWMutex
	rules map[RuleID]Rule
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry used by Validate.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry constructs a registry with the built-in rules registered.
func NewRegistry() *Registry {
	reg := &Registry{rules: make(map[RuleID]Rule)}
	reg.registerBuiltins()
	return reg
}

func (r *Registry) registerBuiltins() {
	r.Register(RuleRequired, requiredRule)
	r.Register(RuleEmail, emailRule)
	r.Register(RuleNumeric, numericRule)
	r.Register(RuleOneOf, oneOfRule)
}

// Register adds or replaces a rule. Empty identifiers and nil rules are
// ignored. Rules other than required must accept the empty string.
func (r *Registry) Register(id RuleID, rule Rule) {
	if r == nil || rule == nil {
		return
	}
	key := RuleID(strings.TrimSpace(string(id)))
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[key] = rule
}

// Has reports whether id is registered.
func (r *Registry) Has(id RuleID) bool {
	_, ok := r.lookup(id)
	return ok
}

// IDs returns the registered identifiers sorted alphabetically.
func (r *Registry) IDs() []RuleID {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]RuleID, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Registry) lookup(id RuleID) (Rule, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[RuleID(strings.TrimSpace(string(id)))]
	return rule, ok
}

// Validate applies a single rule to raw. Unknown rules yield a clean state.
func (r *Registry) Validate(raw string, id RuleID, label string, params Params) State {
	id = RuleID(strings.TrimSpace(string(id)))
	rule, ok := r.lookup(id)
	if !ok {
		return Blank(raw)
	}
	if raw == "" && id != RuleRequired {
		return Blank(raw)
	}
	kind, message := rule(raw, label, params)
	if kind == KindNone {
		return Blank(raw)
	}
	if strings.TrimSpace(message) == "" {
		message = label + " is invalid"
	}
	return State{
		Value:      raw,
		Error:      true,
		HelperText: message,
		Kind:       kind,
	}
}

// Validate applies a built-in rule to raw using the default registry.
func Validate(raw string, id RuleID, label string) State {
	return defaultRegistry.Validate(raw, id, label, Params{})
}
