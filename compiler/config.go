// Package compiler runs the generator over a set of schema files, output
// directories and targets.
package compiler

import (
	"errors"
	"fmt"
	"slices"

	"github.com/syssam/ormgen/compiler/gen"
)

// ErrInvalidConfig indicates a run configuration that cannot be executed.
var ErrInvalidConfig = errors.New("ormgen: invalid configuration")

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("ormgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("ormgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// Unit identifies one compile call of a run.
type Unit struct {
	// File is the schema file.
	File string
	// OutDir is the output directory of the unit, including the target
	// subdirectory when several targets are generated.
	OutDir string
	// Target of the unit.
	Target gen.Target
}

// Config configures a generation run.
type Config struct {
	// WorkDir resolves relative inputs and output directories.
	WorkDir string
	// Inputs are doublestar glob patterns of schema files.
	Inputs []string
	// OutDirs receive the generated files.
	OutDirs []string
	// Targets to generate for.
	Targets []gen.Target
	// Options holds per-target settings.
	Options map[gen.Target]gen.TargetOptions
	// Emitters available to the run. Defaults to DefaultRegistry.
	Emitters *gen.Registry
	// BeforeGenerate is called before an entity is compiled.
	BeforeGenerate func(u Unit, entity string)
	// AfterGenerate is called after an entity was compiled, with the
	// error that aborted it or nil.
	AfterGenerate func(u Unit, entity string, err error)
}

// Option configures a run.
type Option func(*Config) error

// NewConfig returns a Config with the options applied.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		WorkDir: ".",
		Options: make(map[gen.Target]gen.TargetOptions),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithWorkDir sets the working directory.
func WithWorkDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("WorkDir", nil, "working directory cannot be empty")
		}
		c.WorkDir = dir
		return nil
	}
}

// WithInputs adds schema file patterns. Patterns follow doublestar
// syntax, so "schema/**/*.json" matches nested files.
func WithInputs(patterns ...string) Option {
	return func(c *Config) error {
		for _, p := range patterns {
			if p == "" {
				return NewConfigError("Inputs", nil, "input pattern cannot be empty")
			}
		}
		c.Inputs = append(c.Inputs, patterns...)
		return nil
	}
}

// WithOutDirs adds output directories.
func WithOutDirs(dirs ...string) Option {
	return func(c *Config) error {
		for _, d := range dirs {
			if d == "" {
				return NewConfigError("OutDirs", nil, "output directory cannot be empty")
			}
		}
		c.OutDirs = append(c.OutDirs, dirs...)
		return nil
	}
}

// WithTargets adds targets. Targets are validated against the emitters
// when the run starts.
func WithTargets(targets ...gen.Target) Option {
	return func(c *Config) error {
		for _, t := range targets {
			if t == "" {
				return NewConfigError("Targets", nil, "target cannot be empty")
			}
			if !slices.Contains(c.Targets, t) {
				c.Targets = append(c.Targets, t)
			}
		}
		return nil
	}
}

// WithMappingDir sets the directory of the NHibernate mapping files.
func WithMappingDir(dir string) Option {
	return func(c *Config) error {
		if c.Options == nil {
			c.Options = make(map[gen.Target]gen.TargetOptions)
		}
		opts := c.Options[gen.NHibernate]
		opts.MappingDir = dir
		c.Options[gen.NHibernate] = opts
		return nil
	}
}

// WithEmitters replaces the emitters of the run.
func WithEmitters(r *gen.Registry) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Emitters", nil, "registry cannot be nil")
		}
		c.Emitters = r
		return nil
	}
}

// WithCallbacks sets the progress callbacks. Either may be nil.
func WithCallbacks(before func(Unit, string), after func(Unit, string, error)) Option {
	return func(c *Config) error {
		c.BeforeGenerate = before
		c.AfterGenerate = after
		return nil
	}
}

// validate checks the parts of the config that Generate needs.
func (c *Config) validate() error {
	switch {
	case len(c.Inputs) == 0:
		return NewConfigError("Inputs", nil, "at least one input is required")
	case len(c.OutDirs) == 0:
		return NewConfigError("OutDirs", nil, "at least one output directory is required")
	case len(c.Targets) == 0:
		return NewConfigError("Targets", nil, "at least one target is required")
	}
	return nil
}
