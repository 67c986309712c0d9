package gen

import (
	"errors"
	"fmt"

	"github.com/syssam/ormgen/compiler/load"
)

// Config configures one Compile call: one schema, one output directory,
// one target.
type Config struct {
	// Target selects the emitter.
	Target Target
	// OutDir is the output directory. Namespace segments are appended per class.
	OutDir string
	// Options of the target.
	Options TargetOptions
	// Emitters available to Compile.
	Emitters *Registry
	// Writer receives the artifacts. A new Writer is used if nil.
	Writer *Writer
	// BeforeGenerate is called before an entity is compiled.
	BeforeGenerate func(entity string)
	// AfterGenerate is called after an entity was compiled, with the
	// error that aborted it or nil.
	AfterGenerate func(entity string, err error)
}

// EntityResult is the outcome of one entity.
type EntityResult struct {
	// Entity is the raw entity key.
	Entity string
	// Written lists the files written.
	Written []string
	// Kept lists CreateOnly files left untouched because they existed.
	Kept []string
	// Err is the error that aborted the entity, or nil.
	Err error
}

// Result is the outcome of a Compile call.
type Result struct {
	Target   Target
	Entities []*EntityResult
}

// Failed returns the entities that failed.
func (r *Result) Failed() []*EntityResult {
	var failed []*EntityResult
	for _, e := range r.Entities {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}

// Err joins the errors of all failed entities.
func (r *Result) Err() error {
	var errs []error
	for _, e := range r.Failed() {
		errs = append(errs, e.Err)
	}
	return errors.Join(errs...)
}

// Compile generates every entity of the schema, in document order. A
// failing entity is reported through AfterGenerate and its EntityResult
// and does not stop the others. Compile returns an error only for failures
// that concern the whole call: an unknown target, an invalid namespace or
// an output directory that cannot be created.
func Compile(cfg *Config, s *load.Schema) (*Result, error) {
	if cfg == nil || cfg.OutDir == "" {
		return nil, errors.New("ormgen: missing output directory")
	}
	emitter, err := cfg.Emitters.Lookup(cfg.Target)
	if err != nil {
		return nil, err
	}
	ns, err := SplitNamespace(s.Namespace)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Path, err)
	}
	w := cfg.Writer
	if w == nil {
		w = NewWriter()
	}
	probe := &Context{Namespace: ns, OutDir: cfg.OutDir, Options: cfg.Options}
	if err := w.Prepare(probe.Dir()); err != nil {
		return nil, err
	}
	if cfg.Options.MappingDir != "" {
		if err := w.Prepare(probe.MappingDir()); err != nil {
			return nil, err
		}
	}
	res := &Result{Target: cfg.Target}
	for _, e := range s.Entities {
		if cfg.BeforeGenerate != nil {
			cfg.BeforeGenerate(e.Key)
		}
		er := compileEntity(cfg, emitter, w, ns, e)
		res.Entities = append(res.Entities, er)
		if cfg.AfterGenerate != nil {
			cfg.AfterGenerate(e.Key, er.Err)
		}
	}
	return res, nil
}

func compileEntity(cfg *Config, emitter Emitter, w *Writer, ns []string, e *load.Entity) *EntityResult {
	er := &EntityResult{Entity: e.Key}
	c, err := Normalize(ns, e, cfg.OutDir, cfg.Options)
	if err != nil {
		er.Err = err
		return er
	}
	artifacts, err := emitter.Render(c)
	if err != nil {
		er.Err = err
		return er
	}
	for _, a := range artifacts {
		written, err := w.Write(a)
		if err != nil {
			er.Err = err
			return er
		}
		if written {
			er.Written = append(er.Written, a.Path)
		} else {
			er.Kept = append(er.Kept, a.Path)
		}
	}
	return er
}
