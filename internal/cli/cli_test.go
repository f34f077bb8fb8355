package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clientform/internal/backend"
	"github.com/goliatone/go-clientform/pkg/form"
	"github.com/goliatone/go-clientform/pkg/renderers/tui"
)

func init() {
	color.NoColor = true
}

// scriptedDriver answers prompts by label and keeps the current value for
// anything unscripted.
type scriptedDriver struct {
	answers  map[string]string
	asked    []string
	confirms int
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if value, ok := d.answers[cfg.Message]; ok {
		return value, nil
	}
	return cfg.Default, nil
}

// Confirm always declines a retry.
func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	d.confirms++
	return false, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	for idx, option := range cfg.Options {
		if option == d.answers[cfg.Message] {
			return idx, nil
		}
	}
	return cfg.DefaultIndex, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func writeConfig(t *testing.T, formsDir string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dsn := filepath.Join(dir, "clientform.db")
	body := "database:\n  dsn: " + dsn + "\nlog:\n  level: error\n"
	if formsDir != "" {
		body += "forms:\n  dir: " + formsDir + "\n"
	}
	path := filepath.Join(dir, "clientform.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, dsn
}

func run(t *testing.T, env *Env, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(env)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func storedClients(t *testing.T, dsn string) []backend.Record {
	t.Helper()
	db, err := backend.Open(dsn)
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	defer db.Close()
	records, err := db.List(context.Background(), form.EntityClient)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return records
}

func TestNewClient_PersistsAndLists(t *testing.T) {
	cfgPath, dsn := writeConfig(t, "")
	driver := &scriptedDriver{answers: map[string]string{
		"Name":     "Ann",
		"Lastname": "Lee",
		"Phone":    "555",
		"Email":    "ann@example.com",
		"Address":  "<b>1 Main St</b>",
	}}
	env := &Env{Driver: driver}

	if _, err := run(t, env, "--config", cfgPath, "new", "client"); err != nil {
		t.Fatalf("new client: %v", err)
	}
	if diff := cmp.Diff([]string{"Name", "Lastname", "Phone", "Email", "Address"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}

	records := storedClients(t, dsn)
	if len(records) != 1 {
		t.Fatalf("expected one stored client, got %d", len(records))
	}
	want := form.Entity{
		"name":     "Ann",
		"lastname": "Lee",
		"phone":    "555",
		"email":    "ann@example.com",
		"address":  "1 Main St",
	}
	if diff := cmp.Diff(want, records[0].Entity); diff != "" {
		t.Fatalf("stored entity mismatch (-want +got):\n%s", diff)
	}

	if driver.confirms != 0 {
		t.Fatalf("valid input must not ask to retry")
	}

	out, err := run(t, &Env{}, "--config", cfgPath, "list", "client")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, fragment := range []string{records[0].ID, "Ann Lee", "ann@example.com"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in list output:\n%s", fragment, out)
		}
	}
}

func TestNewClient_MarkupOnlyValueFailsRequired(t *testing.T) {
	cfgPath, dsn := writeConfig(t, "")
	driver := &scriptedDriver{answers: map[string]string{
		"Name":     "<b></b>",
		"Lastname": "Lee",
		"Phone":    "555",
		"Email":    "ann@example.com",
		"Address":  "X",
	}}

	_, err := run(t, &Env{Driver: driver}, "--config", cfgPath, "new", "client")
	if !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected the rejected form to be aborted, got %v", err)
	}
	if driver.confirms != 1 {
		t.Fatalf("expected one retry prompt, got %d", driver.confirms)
	}
	if records := storedClients(t, dsn); len(records) != 0 {
		t.Fatalf("a name emptied by sanitising must never be stored: %+v", records)
	}
}

func TestNewJob_ListShowsSummary(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	driver := &scriptedDriver{answers: map[string]string{
		"Type of clothing": "coat",
		"Description":      "Replace buttons",
		"Budget":           "40",
	}}
	if _, err := run(t, &Env{Driver: driver}, "--config", cfgPath, "new", "job"); err != nil {
		t.Fatalf("new job: %v", err)
	}

	out, err := run(t, &Env{}, "--config", cfgPath, "list", "job")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Coat, pending, budget 40.00") {
		t.Fatalf("expected job summary in list output:\n%s", out)
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		record backend.Record
		want   string
	}{
		{backend.Record{Kind: form.EntityClient, Entity: form.Entity{"name": "Ann", "lastname": "Lee"}}, "Ann Lee"},
		{backend.Record{Kind: form.EntityJob, Entity: form.Entity{"type_of_clothing": "dress", "budget": "12.5"}}, "Dress, pending, budget 12.50"},
		{backend.Record{Kind: form.EntityJob, Entity: form.Entity{"budget": "lots"}}, "invalid budget"},
		{backend.Record{Kind: "supplier", Entity: form.Entity{"company": "Acme"}}, ""},
	}
	for _, tc := range cases {
		if got := summarize(tc.record); got != tc.want {
			t.Fatalf("summarize(%+v) = %q, want %q", tc.record, got, tc.want)
		}
	}
}

func TestEditClient_UpdatesStoredRecord(t *testing.T) {
	cfgPath, dsn := writeConfig(t, "")
	create := &scriptedDriver{answers: map[string]string{
		"Name": "Ann", "Lastname": "Lee", "Phone": "555", "Email": "ann@example.com", "Address": "X",
	}}
	if _, err := run(t, &Env{Driver: create}, "--config", cfgPath, "new", "client"); err != nil {
		t.Fatalf("new client: %v", err)
	}
	id := storedClients(t, dsn)[0].ID

	edit := &scriptedDriver{answers: map[string]string{"Phone": "777"}}
	if _, err := run(t, &Env{Driver: edit}, "--config", cfgPath, "edit", "client", id); err != nil {
		t.Fatalf("edit client: %v", err)
	}

	records := storedClients(t, dsn)
	if len(records) != 1 {
		t.Fatalf("edit must not insert, got %d records", len(records))
	}
	if records[0].ID != id || records[0].Entity["phone"] != "777" || records[0].Entity["name"] != "Ann" {
		t.Fatalf("unexpected record after edit: %+v", records[0])
	}
}

func TestEditClient_UnknownID(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	_, err := run(t, &Env{Driver: &scriptedDriver{}}, "--config", cfgPath, "edit", "client", "missing")
	if !errors.Is(err, backend.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNew_UnknownForm(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	_, err := run(t, &Env{Driver: &scriptedDriver{}}, "--config", cfgPath, "new", "invoice")
	if err == nil || !strings.Contains(err.Error(), "client.new") {
		t.Fatalf("expected unknown form error listing known ids, got %v", err)
	}
}

func TestForms_ListsBuiltinsAndFiles(t *testing.T) {
	formsDir := t.TempDir()
	def := "forms:\n  supplier.new:\n    entity: supplier\n    fields:\n      - name: company\n        rules: [required]\n"
	if err := os.WriteFile(filepath.Join(formsDir, "supplier.yaml"), []byte(def), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfgPath, _ := writeConfig(t, formsDir)

	out, err := run(t, &Env{}, "--config", cfgPath, "forms")
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	for _, fragment := range []string{"client.new", "job.new", "supplier.new", "email[required,email]", "company[required]"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in forms output:\n%s", fragment, out)
		}
	}
}

func TestForms_DerivesFromOpenAPI(t *testing.T) {
	doc := `{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{},
"components":{"schemas":{"Client":{"type":"object","required":["email"],
"properties":{"email":{"type":"string","format":"email"}}}}}}`
	path := filepath.Join(t.TempDir(), "api.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, &Env{}, "forms", "--openapi", path, "--component", "Client")
	if err != nil {
		t.Fatalf("forms --openapi: %v", err)
	}
	for _, fragment := range []string{"client.new:", "name: email", "- required", "- email"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in derived yaml:\n%s", fragment, out)
		}
	}

	if _, err := run(t, &Env{}, "forms", "--openapi", path); err == nil {
		t.Fatalf("expected error without --component")
	}
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("forms:\n  a.new:\n    fields:\n      - name: a\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(bad, []byte("forms:\n  b.new:\n    fields:\n      - name: b\n        rules: [postcode]\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, &Env{}, "lint", good)
	if err != nil {
		t.Fatalf("lint good: %v", err)
	}
	if !strings.Contains(out, "1 path(s) ok") {
		t.Fatalf("unexpected lint output: %s", out)
	}

	out, err = run(t, &Env{}, "lint", good, bad)
	if err == nil {
		t.Fatalf("expected lint failure")
	}
	if !strings.Contains(out, bad) || !strings.Contains(out, "postcode") {
		t.Fatalf("expected violation for %s, got:\n%s", bad, out)
	}
}

func TestResolveFormID(t *testing.T) {
	cases := map[string]string{
		"client":       form.ClientFormID,
		" job ":        form.JobFormID,
		"supplier.new": "supplier.new",
	}
	for in, want := range cases {
		if got := resolveFormID(in); got != want {
			t.Fatalf("resolveFormID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUpdateAction(t *testing.T) {
	if got := updateAction(form.ClientDefinition()); got != "clients/update" {
		t.Fatalf("unexpected update action %q", got)
	}
	if got := updateAction(form.Definition{Entity: "supplier"}); got != "supplier/update" {
		t.Fatalf("unexpected fallback action %q", got)
	}
}
