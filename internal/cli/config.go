package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/ormgen/compiler"
	"github.com/syssam/ormgen/compiler/gen"
)

const (
	// DefaultConfigFile is read from the working directory when no
	// --config flag is given.
	DefaultConfigFile = "ormgen.yaml"
	// EnvPrefix prefixes the environment variables read by the CLI.
	EnvPrefix = "ORMGEN_"
)

// Settings are the resolved settings of a run. Sources are applied in
// order, each overriding the previous one: defaults, the config file,
// the .env file and the environment, and the command line.
type Settings struct {
	WorkDir    string   `yaml:"workdir"`
	Inputs     []string `yaml:"inputs"`
	OutDirs    []string `yaml:"out"`
	Targets    []string `yaml:"targets"`
	MappingDir string   `yaml:"mapping_dir"`
	Quiet      bool     `yaml:"quiet"`
}

// runFlags are the flags shared by generate and watch.
type runFlags struct {
	config     string
	workDir    string
	out        []string
	targets    []string
	mappingDir string
	quiet      bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "config file (default: "+DefaultConfigFile+" in the working directory)")
	fl.StringVarP(&f.workDir, "dir", "C", ".", "working directory for relative paths")
	fl.StringSliceVarP(&f.out, "out", "o", nil, "output directory (repeatable)")
	fl.StringSliceVarP(&f.targets, "target", "t", nil, "target: php, csharp, nhibernate or go (repeatable)")
	fl.StringVar(&f.mappingDir, "mapping-dir", "", "output directory of NHibernate mapping files")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "print only the summary")
}

// resolve layers the settings sources. Positional args are input patterns.
func (f *runFlags) resolve(cmd *cobra.Command, args []string) (*Settings, error) {
	s := &Settings{WorkDir: "."}
	changed := cmd.Flags().Changed
	if changed("dir") {
		s.WorkDir = f.workDir
	}

	path, explicit := f.config, f.config != ""
	if !explicit {
		path = filepath.Join(s.WorkDir, DefaultConfigFile)
	}
	fc, err := LoadConfigFile(path)
	switch {
	case err == nil:
		s.merge(fc, !changed("dir"))
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	env, err := environment(filepath.Join(s.WorkDir, ".env"))
	if err != nil {
		return nil, err
	}
	if err := s.applyEnv(env); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		s.Inputs = args
	}
	if changed("out") {
		s.OutDirs = f.out
	}
	if changed("target") {
		s.Targets = f.targets
	}
	if changed("mapping-dir") {
		s.MappingDir = f.mappingDir
	}
	if changed("quiet") {
		s.Quiet = f.quiet
	}
	return s, nil
}

// LoadConfigFile reads a YAML (or JSON) config file.
func LoadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Settings{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("ormgen: config file %s: %w", path, err)
	}
	return s, nil
}

// merge copies the set fields of o into s.
func (s *Settings) merge(o *Settings, workDir bool) {
	if workDir && o.WorkDir != "" {
		s.WorkDir = o.WorkDir
	}
	if len(o.Inputs) > 0 {
		s.Inputs = o.Inputs
	}
	if len(o.OutDirs) > 0 {
		s.OutDirs = o.OutDirs
	}
	if len(o.Targets) > 0 {
		s.Targets = o.Targets
	}
	if o.MappingDir != "" {
		s.MappingDir = o.MappingDir
	}
	if o.Quiet {
		s.Quiet = true
	}
}

// environment returns a lookup over the process environment, falling
// back to the variables of the .env file at path, if any.
func environment(path string) (func(string) (string, bool), error) {
	dotenv, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ormgen: env file %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// applyEnv applies the ORMGEN_* variables. Lists are comma separated.
func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "INPUTS"); ok && v != "" {
		s.Inputs = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "OUT"); ok && v != "" {
		s.OutDirs = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "TARGETS"); ok && v != "" {
		s.Targets = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "MAPPING_DIR"); ok && v != "" {
		s.MappingDir = v
	}
	if v, ok := lookup(EnvPrefix + "QUIET"); ok && v != "" {
		q, err := strconv.ParseBool(v)
		if err != nil {
			return compiler.NewConfigError("Quiet", v, "ORMGEN_QUIET must be a boolean")
		}
		s.Quiet = q
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Options converts the settings into compiler options.
func (s *Settings) Options() []compiler.Option {
	targets := make([]gen.Target, 0, len(s.Targets))
	for _, t := range s.Targets {
		targets = append(targets, gen.Target(strings.ToLower(strings.TrimSpace(t))))
	}
	opts := []compiler.Option{
		compiler.WithWorkDir(s.WorkDir),
		compiler.WithInputs(s.Inputs...),
		compiler.WithOutDirs(s.OutDirs...),
		compiler.WithTargets(targets...),
	}
	if s.MappingDir != "" {
		opts = append(opts, compiler.WithMappingDir(s.MappingDir))
	}
	return opts
}
