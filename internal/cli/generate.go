package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/ormgen/compiler"
)

// ErrGenerateFailed is returned when a run completed with failures. The
// failures themselves have been printed.
var ErrGenerateFailed = errors.New("ormgen: generation failed")

// NewGenerateCmd builds the `generate` command.
func NewGenerateCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "generate [schema globs...]",
		Short: "Generate persistence classes from entity schemas",
		Long: `Generate persistence classes from entity schemas.

Schema files are chosen by extension (.json, .yaml, .yml, .xml). Globs
support ** for nested directories. With more than one target, each
target writes into its own subdirectory of every output directory.

Examples:
  ormgen generate schema/*.json -o gen -t php
  ormgen generate 'schema/**/*.yaml' -o gen -t csharp -t nhibernate --mapping-dir mappings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), s, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	return cmd
}

// run performs one generation run and prints its progress to w.
func run(ctx context.Context, s *Settings, w io.Writer) error {
	p := newPrinter(w, s.Quiet)
	cfg, err := compiler.NewConfig(append(s.Options(), compiler.WithCallbacks(p.before, p.after))...)
	if err != nil {
		return err
	}
	report, err := compiler.Generate(ctx, cfg)
	if err != nil {
		return err
	}
	p.summary(report)
	if report.Err() != nil {
		return ErrGenerateFailed
	}
	return nil
}
