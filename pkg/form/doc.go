// Package form holds the state of one editable form and the orchestration
// that validates it.
//
// A Definition is the static declaration of a form: its fixed field set, the
// label shown for each field and the ordered rule chain applied to it. State
// is the live value of a form instance keyed by field name. Definition.Validate
// runs every chain and returns a fresh State; Flatten turns a clean State into
// the Entity handed to the dispatcher.
package form
