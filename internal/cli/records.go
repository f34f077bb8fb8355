package cli

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-clientform/internal/backend"
	"github.com/goliatone/go-clientform/pkg/entity"
	"github.com/goliatone/go-clientform/pkg/form"
	"github.com/goliatone/go-clientform/pkg/session"
)

func newCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "new <form>",
		Short: "Fill a new form (client, job or any loaded form id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := env.open()
			if err != nil {
				return err
			}
			defer rt.Close()

			def, err := rt.definition(args[0])
			if err != nil {
				return err
			}
			s, err := session.Open(rt.store(), def, rt.sessionOptions()...)
			if err != nil {
				return err
			}
			defer s.Close()

			_, err = env.runner(cmd.OutOrStdout()).Fill(cmd.Context(), s)
			return err
		},
	}
}

func editCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <kind> <id>",
		Short: "Edit a stored entity through its form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := env.open()
			if err != nil {
				return err
			}
			defer rt.Close()

			kind, id := args[0], args[1]
			record, err := rt.db.Get(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			def, err := rt.definitionForKind(kind)
			if err != nil {
				return err
			}
			def.Title = fmt.Sprintf("Edit %s %s", kind, id)
			def.Action = updateAction(def)

			s, err := session.Open(rt.store(), def, rt.sessionOptions(session.WithEntity(record.WithID()))...)
			if err != nil {
				return err
			}
			defer s.Close()

			_, err = env.runner(cmd.OutOrStdout()).Fill(cmd.Context(), s)
			return err
		},
	}
}

func listCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List stored entities of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := env.open()
			if err != nil {
				return err
			}
			defer rt.Close()

			records, err := rt.db.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRecords(cmd, records)
		},
	}
}

func printRecords(cmd *cobra.Command, records []backend.Record) error {
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "no records")
		return err
	}

	keySet := make(map[string]struct{})
	for _, record := range records {
		for key := range record.Entity {
			keySet[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	header := color.New(color.Bold)
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, header.Sprint(strings.Join(append([]string{"id", "summary"}, keys...), "\t")))
	for _, record := range records {
		row := []string{record.ID, html.UnescapeString(summarize(record))}
		for _, key := range keys {
			row = append(row, html.UnescapeString(record.Entity[key]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// summarize renders the typed view of known kinds; other kinds have none.
func summarize(record backend.Record) string {
	switch record.Kind {
	case form.EntityClient:
		return entity.ClientFrom(record.Entity).FullName()
	case form.EntityJob:
		job, err := entity.JobFrom(record.Entity)
		if err != nil {
			return "invalid budget"
		}
		return fmt.Sprintf("%s, %s, budget %.2f", job.ClothingLabel(), job.Status, job.Budget)
	default:
		return ""
	}
}
