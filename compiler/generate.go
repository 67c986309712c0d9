package compiler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar"

	"github.com/syssam/ormgen/compiler/gen"
	"github.com/syssam/ormgen/compiler/load"
)

// Outcome is the result of one unit of a run.
type Outcome struct {
	Unit
	// Result holds the per-entity outcomes. It is nil if Err is set.
	Result *gen.Result
	// Err is a failure of the whole unit: a schema that could not be
	// parsed or an output directory that could not be prepared.
	Err error
}

// Report is the outcome of a run.
type Report struct {
	// Files lists the schema files matched by the inputs.
	Files []string
	// Outcomes in execution order.
	Outcomes []*Outcome
	// Metrics of the writes of the run.
	Metrics gen.WriterMetrics
}

// Entities returns the number of entities compiled and failed.
func (r *Report) Entities() (ok, failed int) {
	for _, o := range r.Outcomes {
		if o.Result == nil {
			continue
		}
		n := len(o.Result.Failed())
		failed += n
		ok += len(o.Result.Entities) - n
	}
	return ok, failed
}

// Err joins all unit and entity failures of the run.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		switch {
		case o.Err != nil:
			errs = append(errs, o.Err)
		case o.Result != nil:
			for _, e := range o.Result.Failed() {
				errs = append(errs, fmt.Errorf("%s: %s: %w", o.File, e.Entity, e.Err))
			}
		}
	}
	return errors.Join(errs...)
}

// Generate runs the generator for every matched schema file, output
// directory and target, in that nesting order and one unit at a time.
// It fails only if the run cannot start: an invalid config, an input
// pattern that matches nothing, or an unknown target. Failures of single
// units and entities are collected in the report.
func Generate(ctx context.Context, cfg *Config) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	emitters := cfg.Emitters
	if emitters == nil {
		emitters = DefaultRegistry()
	}
	for _, t := range cfg.Targets {
		if _, err := emitters.Lookup(t); err != nil {
			return nil, err
		}
	}
	files, err := Expand(cfg.WorkDir, cfg.Inputs)
	if err != nil {
		return nil, err
	}
	w := gen.NewWriter()
	report := &Report{Files: files}
	for _, file := range files {
		schema, err := load.File(file)
		var perr *fs.PathError
		if errors.As(err, &perr) {
			err = &gen.FileError{Op: "read", Path: file, Cause: err}
		}
		if err != nil {
			report.Outcomes = append(report.Outcomes, &Outcome{Unit: Unit{File: file}, Err: err})
			continue
		}
		for _, dir := range cfg.OutDirs {
			for _, t := range cfg.Targets {
				if err := ctx.Err(); err != nil {
					report.Metrics = w.Metrics()
					return report, err
				}
				u := Unit{File: file, OutDir: cfg.outDir(dir, t), Target: t}
				report.Outcomes = append(report.Outcomes, compile(cfg, emitters, w, u, schema))
			}
		}
	}
	report.Metrics = w.Metrics()
	return report, nil
}

func compile(cfg *Config, emitters *gen.Registry, w *gen.Writer, u Unit, s *load.Schema) *Outcome {
	opts := cfg.Options[u.Target]
	if opts.MappingDir != "" {
		opts.MappingDir = cfg.abs(opts.MappingDir)
	}
	gc := &gen.Config{
		Target:   u.Target,
		OutDir:   u.OutDir,
		Options:  opts,
		Emitters: emitters,
		Writer:   w,
	}
	if cfg.BeforeGenerate != nil {
		gc.BeforeGenerate = func(entity string) { cfg.BeforeGenerate(u, entity) }
	}
	if cfg.AfterGenerate != nil {
		gc.AfterGenerate = func(entity string, err error) { cfg.AfterGenerate(u, entity, err) }
	}
	res, err := gen.Compile(gc, s)
	if err != nil {
		return &Outcome{Unit: u, Err: fmt.Errorf("%s: %w", u.File, err)}
	}
	return &Outcome{Unit: u, Result: res}
}

// outDir returns the output directory of a target. Several targets in
// one run each get their own subdirectory.
func (c *Config) outDir(dir string, t gen.Target) string {
	dir = c.abs(dir)
	if len(c.Targets) > 1 {
		return filepath.Join(dir, string(t))
	}
	return dir
}

func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.WorkDir, path)
}

// Expand resolves doublestar patterns relative to workDir. Matches of
// one pattern are sorted; a file matched by several patterns is listed
// once, at its first match. A pattern that matches nothing is a
// *ConfigError.
func Expand(workDir string, patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		pattern := p
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(workDir, pattern)
		}
		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return nil, NewConfigError("Inputs", p, err.Error())
		}
		if len(matches) == 0 {
			return nil, NewConfigError("Inputs", p, "pattern matches no files")
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !slices.Contains(files, m) {
				files = append(files, m)
			}
		}
	}
	return files, nil
}
