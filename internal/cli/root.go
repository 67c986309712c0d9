// Package cli implements the ormgen command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/syssam/ormgen/internal/version"
)

// NewRootCmd builds the top-level `ormgen` command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "ormgen",
		Short:   "ormgen - entity persistence class generator",
		Version: version.String(),
		Long: `ormgen reads entity schemas (JSON, YAML or XML) and generates persistence
classes with getter/setter hooks for PHP, C#, NHibernate and Go.`,
		SilenceUsage: true,
	}
	root.AddCommand(NewGenerateCmd())
	root.AddCommand(NewWatchCmd())
	root.AddCommand(NewTypesCmd())
	root.AddCommand(NewVersionCmd())
	return root
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version.String())
		},
	}
}
