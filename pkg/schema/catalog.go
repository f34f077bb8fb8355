// Package schema loads form definitions from declarative sources so the
// field-to-rule table can change without touching validation code. YAML and
// JSON files are read with LoadFS; OpenAPI component schemas are converted
// with FromOpenAPI.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-clientform/pkg/field"
	"github.com/goliatone/go-clientform/pkg/form"
)

const sourceBuiltin = "builtin"

// Catalog holds form definitions keyed by id. Definitions seeded through
// NewCatalog may be overridden once by a loaded file; any other duplicate id
// is an error.
type Catalog struct {
	registry *field.Registry
	forms    map[string]form.Definition
	sources  map[string]string
}

// NewCatalog returns a catalog validating rule ids against reg (the default
// registry when nil), seeded with defs.
func NewCatalog(reg *field.Registry, defs ...form.Definition) (*Catalog, error) {
	if reg == nil {
		reg = field.Default()
	}
	c := &Catalog{
		registry: reg,
		forms:    make(map[string]form.Definition),
		sources:  make(map[string]string),
	}
	for _, def := range defs {
		if err := c.add(def, sourceBuiltin); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers def after checking it.
func (c *Catalog) Add(def form.Definition) error {
	return c.add(def, "")
}

func (c *Catalog) add(def form.Definition, source string) error {
	def.ID = strings.TrimSpace(def.ID)
	if err := def.Check(c.registry); err != nil {
		return err
	}
	if previous, exists := c.sources[def.ID]; exists && previous != sourceBuiltin {
		return fmt.Errorf("schema: duplicate form %q (already defined by %s)", def.ID, describeSource(previous))
	}
	c.forms[def.ID] = def.WithRegistry(c.registry)
	c.sources[def.ID] = source
	return nil
}

// Definition returns the form registered under id.
func (c *Catalog) Definition(id string) (form.Definition, bool) {
	if c == nil {
		return form.Definition{}, false
	}
	def, ok := c.forms[id]
	return def, ok
}

// IDs returns the registered form ids, sorted.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.forms))
	for id := range c.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Source reports where id was loaded from ("" when added programmatically).
func (c *Catalog) Source(id string) string {
	if c == nil {
		return ""
	}
	return c.sources[id]
}

func describeSource(source string) string {
	if source == "" {
		return "an earlier registration"
	}
	return source
}
