package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/ormgen/compiler/gen"
)

// NewTypesCmd builds the `types` command.
func NewTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types [target]",
		Short: "Print the supported type tags and their native types",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := gen.Targets
			if len(args) == 1 {
				t := gen.Target(strings.ToLower(args[0]))
				if len(gen.Supported(t)) == 0 {
					return &gen.TargetError{Target: t}
				}
				targets = []gen.Target{t}
			}
			return printTypes(cmd.OutOrStdout(), targets)
		},
	}
}

// printTypes prints one row per canonical tag and one column per target.
// Tags a target cannot map are shown as "-".
func printTypes(out io.Writer, targets []gen.Target) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"TAG", "ALIASES"}
	for _, t := range targets {
		header = append(header, strings.ToUpper(string(t)))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, tag := range gen.Supported(gen.CSharp) {
		row := []string{tag, strings.Join(gen.Aliases(tag), ",")}
		if row[1] == "" {
			row[1] = "-"
		}
		for _, t := range targets {
			name, err := gen.MapType(t, tag, false, false)
			if err != nil {
				name = "-"
			}
			row = append(row, name)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
