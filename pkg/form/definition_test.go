package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clientform/pkg/field"
)

func TestDefinition_NewIsBlank(t *testing.T) {
	def := ClientDefinition()
	state := def.New()

	want := State{
		"name":     {},
		"lastname": {},
		"phone":    {},
		"email":    {},
		"address":  {},
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Fatalf("new state mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinition_EditRejectsUnknownField(t *testing.T) {
	def := ClientDefinition()
	_, err := def.Edit(def.New(), "nickname", "Annie")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestDefinition_EditDoesNotMutateInput(t *testing.T) {
	def := ClientDefinition()
	original := def.New()

	next, err := def.Edit(original, "name", "Ann")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if original["name"].Value != "" {
		t.Fatalf("edit mutated the source state")
	}
	if next.Value("name") != "Ann" {
		t.Fatalf("expected edited value, got %q", next.Value("name"))
	}
}

func TestDefinition_FromEntityIgnoresUnknownKeys(t *testing.T) {
	def := ClientDefinition()
	state := def.FromEntity(Entity{"name": "Ann", "id": "42"})
	if _, ok := state["id"]; ok {
		t.Fatalf("unexpected key copied from entity")
	}
	if state.Value("name") != "Ann" {
		t.Fatalf("expected prefilled name")
	}
}

func TestDefinition_LabelFallsBackToDerived(t *testing.T) {
	def := Definition{ID: "x", Fields: []FieldSpec{{Name: "type_of_clothing"}, {Name: "email", Label: "E-mail"}}}
	if got := def.Label("type_of_clothing"); got != "Type Of Clothing" {
		t.Fatalf("unexpected derived label %q", got)
	}
	if got := def.Label("email"); got != "E-mail" {
		t.Fatalf("expected declared label, got %q", got)
	}
}

func TestDefinition_CheckBuiltins(t *testing.T) {
	for id, def := range Builtins() {
		if err := def.Check(nil); err != nil {
			t.Fatalf("builtin %s failed check: %v", id, err)
		}
	}
}

func TestDefinition_CheckReportsEveryProblem(t *testing.T) {
	def := Definition{
		Fields: []FieldSpec{
			{Name: "name", Rules: []field.RuleID{field.RuleRequired}},
			{Name: "name"},
			{Name: ""},
			{Name: "zip", Rules: []field.RuleID{"postcode"}},
			{Name: "kind", Rules: []field.RuleID{field.RuleOneOf}},
		},
	}

	err := def.Check(field.NewRegistry())
	if err == nil {
		t.Fatalf("expected check to fail")
	}
	msg := err.Error()
	for _, fragment := range []string{
		"id is required",
		`duplicate field "name"`,
		"field 2 has no name",
		`unknown rule "postcode"`,
		"oneof without options",
	} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error, got:\n%s", fragment, msg)
		}
	}
}

func TestDefaultLabel(t *testing.T) {
	cases := map[string]string{
		"name":             "Name",
		"type_of_clothing": "Type Of Clothing",
		"typeOfClothing":   "Type Of Clothing",
		"address-line2":    "Address Line 2",
		"":                 "",
	}
	for input, want := range cases {
		if got := DefaultLabel(input); got != want {
			t.Fatalf("DefaultLabel(%q) = %q, want %q", input, got, want)
		}
	}
}
