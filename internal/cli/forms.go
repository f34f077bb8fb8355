package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-clientform/internal/config"
	"github.com/goliatone/go-clientform/pkg/form"
	"github.com/goliatone/go-clientform/pkg/schema"
)

type openAPIFlags struct {
	path      string
	component string
	opts      schema.OpenAPIOptions
}

func formsCmd(env *Env) *cobra.Command {
	var flags openAPIFlags
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Describe the available forms, or derive one from an OpenAPI component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.path != "" {
				return printOpenAPIDefinition(cmd, flags)
			}

			cfg, err := config.Load(env.ConfigPath)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			return printCatalog(cmd, catalog)
		},
	}
	cmd.Flags().StringVar(&flags.path, "openapi", "", "OpenAPI document to derive a form from")
	cmd.Flags().StringVar(&flags.component, "component", "", "component schema name inside the OpenAPI document")
	cmd.Flags().StringVar(&flags.opts.ID, "id", "", "form id for the derived form")
	cmd.Flags().StringVar(&flags.opts.Entity, "entity", "", "entity kind for the derived form")
	cmd.Flags().StringVar(&flags.opts.Action, "action", "", "dispatch action for the derived form")
	return cmd
}

func printCatalog(cmd *cobra.Command, catalog *schema.Catalog) error {
	bold := color.New(color.Bold)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, bold.Sprint("form\tentity\taction\tsource\tfields"))
	for _, id := range catalog.IDs() {
		def, _ := catalog.Definition(id)
		fields := make([]string, 0, len(def.Fields))
		for _, spec := range def.Fields {
			fields = append(fields, describeField(spec))
		}
		source := catalog.Source(id)
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id, def.Entity, def.Action, source, strings.Join(fields, " "))
	}
	return tw.Flush()
}

func describeField(spec form.FieldSpec) string {
	if len(spec.Rules) == 0 {
		return spec.Name
	}
	rules := make([]string, len(spec.Rules))
	for i, rule := range spec.Rules {
		rules[i] = string(rule)
	}
	return fmt.Sprintf("%s[%s]", spec.Name, strings.Join(rules, ","))
}

func printOpenAPIDefinition(cmd *cobra.Command, flags openAPIFlags) error {
	if flags.component == "" {
		return fmt.Errorf("--component is required with --openapi")
	}
	raw, err := os.ReadFile(flags.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", flags.path, err)
	}
	def, err := schema.FromOpenAPI(cmd.Context(), raw, flags.component, flags.opts)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(map[string]map[string]form.Definition{
		"forms": {def.ID: def},
	})
	if err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
