package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the clientform command tree.
func NewRootCmd(env *Env) *cobra.Command {
	if env == nil {
		env = &Env{}
	}
	root := &cobra.Command{
		Use:           "clientform",
		Short:         "Capture and validate client and job records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&env.ConfigPath, "config", env.ConfigPath, "config file (yaml, json or toml)")

	root.AddCommand(newCmd(env))
	root.AddCommand(editCmd(env))
	root.AddCommand(listCmd(env))
	root.AddCommand(formsCmd(env))
	root.AddCommand(lintCmd(env))
	return root
}
