package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-clientform/internal/config"
	"github.com/goliatone/go-clientform/pkg/schema"
)

type violation struct {
	path    string
	message string
}

func lintCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check form definition files (defaults to forms.dir)",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				cfg, err := config.Load(env.ConfigPath)
				if err != nil {
					return err
				}
				if strings.TrimSpace(cfg.Forms.Dir) == "" {
					return errors.New("no paths given and forms.dir is not configured")
				}
				paths = []string{cfg.Forms.Dir}
			}

			var violations []violation
			for _, path := range paths {
				violations = append(violations, lintPath(path)...)
			}
			if len(violations) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d path(s) ok\n", len(paths))
				return err
			}

			sort.Slice(violations, func(i, j int) bool {
				if violations[i].path == violations[j].path {
					return violations[i].message < violations[j].message
				}
				return violations[i].path < violations[j].path
			})
			red := color.New(color.FgRed)
			for _, v := range violations {
				red.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.path, v.message)
			}
			return fmt.Errorf("lint: %d problem(s)", len(violations))
		},
	}
}

// lintPath loads path into an empty catalog so duplicates between files in
// the same directory are reported as well.
func lintPath(path string) []violation {
	catalog, err := schema.NewCatalog(nil)
	if err != nil {
		return []violation{{path: path, message: err.Error()}}
	}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		return []violation{{path: path, message: err.Error()}}
	case info.IsDir():
		err = catalog.LoadFS(os.DirFS(path))
	default:
		err = catalog.LoadFile(path)
	}
	if err == nil {
		return nil
	}

	var result []violation
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, violation{path: path, message: line})
		}
	}
	return result
}
