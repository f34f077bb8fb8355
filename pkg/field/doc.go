// Package field validates single form inputs. A validation never fails with a
// Go error: every raw value maps to a State whose Error flag and HelperText
// describe the first violated rule. Rules are looked up by RuleID in a
// Registry; the package-level Validate uses the built-in registry which knows
// the required, email, numeric and oneof rules.
//
// Only the required rule ever reports an empty value. Format rules such as
// email treat "" as valid and leave emptiness complaints to required, which is
// why callers run required first and skip format rules once it fails.
package field
