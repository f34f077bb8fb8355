package field

// Kind classifies why a field failed validation.
type Kind string

const (
	KindNone                 Kind = ""
	KindMissingRequiredValue Kind = "missingRequiredValue"
	KindInvalidFormat        Kind = "invalidFormat"
)

// RuleID names a validation rule registered in a Registry.
type RuleID string

const (
	RuleRequired RuleID = "required"
	RuleEmail    RuleID = "email"
	RuleNumeric  RuleID = "numeric"
	RuleOneOf    RuleID = "oneof"
)

// State is the per-field record kept in a form. When Error is false callers
// ignore HelperText, which may still hold a stale message.
type State struct {
	Value      string `json:"value"`
	Error      bool   `json:"error"`
	HelperText string `json:"helperText"`
	Kind       Kind   `json:"kind,omitempty"`
}

// Blank returns a pristine state holding value.
func Blank(value string) State {
	return State{Value: value}
}

// Clean returns s with its error channel cleared and the value preserved.
func (s State) Clean() State {
	return State{Value: s.Value}
}

// Params carries per-field rule arguments declared alongside the rule list.
type Params struct {
	// Options lists the accepted values for the oneof rule.
	Options []string
}

// Rule inspects a non-empty raw value (or any value for required) and returns
// the failure kind plus the helper text to show. An empty Kind means the
// value passes.
type Rule func(value, label string, params Params) (Kind, string)
