package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-clientform/pkg/field"
	"github.com/goliatone/go-clientform/pkg/form"
)

// OpenAPIOptions names the definition derived from a component schema.
type OpenAPIOptions struct {
	ID     string
	Title  string
	Entity string
	Action string
}

// FromOpenAPI derives a form definition from the component schema named
// component. Required properties get the required rule; email formats,
// numeric types and enums add the email, numeric and oneof rules. Property
// titles become labels. Fields are ordered by name since OpenAPI property
// maps carry no order.
func FromOpenAPI(ctx context.Context, raw []byte, component string, opts OpenAPIOptions) (form.Definition, error) {
	if err := ctx.Err(); err != nil {
		return form.Definition{}, err
	}
	if len(raw) == 0 {
		return form.Definition{}, errors.New("schema: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return form.Definition{}, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return form.Definition{}, fmt.Errorf("schema: openapi document has no component schemas")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return form.Definition{}, fmt.Errorf("schema: component schema %q not found", component)
	}
	src := ref.Value

	def := form.Definition{
		ID:     opts.ID,
		Title:  opts.Title,
		Entity: opts.Entity,
		Action: opts.Action,
	}
	if def.ID == "" {
		def.ID = strings.ToLower(component) + ".new"
	}
	if def.Title == "" {
		def.Title = src.Title
	}
	if def.Entity == "" {
		def.Entity = strings.ToLower(component)
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		property := src.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		_, isRequired := required[name]
		def.Fields = append(def.Fields, fieldFromSchema(name, property.Value, isRequired))
	}

	if err := def.Check(nil); err != nil {
		return form.Definition{}, err
	}
	return def, nil
}

func fieldFromSchema(name string, src *openapi3.Schema, required bool) form.FieldSpec {
	spec := form.FieldSpec{Name: name, Label: strings.TrimSpace(src.Title)}
	if required {
		spec.Rules = append(spec.Rules, field.RuleRequired)
	}
	if strings.EqualFold(src.Format, "email") {
		spec.Rules = append(spec.Rules, field.RuleEmail)
	}
	if isNumericType(src.Type) {
		spec.Rules = append(spec.Rules, field.RuleNumeric)
	}
	if len(src.Enum) > 0 {
		for _, option := range src.Enum {
			spec.Options = append(spec.Options, fmt.Sprint(option))
		}
		spec.Rules = append(spec.Rules, field.RuleOneOf)
	}
	return spec
}

func isNumericType(types *openapi3.Types) bool {
	if types == nil {
		return false
	}
	for _, typ := range types.Slice() {
		if typ == openapi3.TypeNumber || typ == openapi3.TypeInteger {
			return true
		}
	}
	return false
}
