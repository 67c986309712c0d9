package gen

import "sort"

// Emitter renders the artifacts of one entity for a target ecosystem.
// Render must not touch the filesystem; the compiler writes the returned
// artifacts in order.
type Emitter interface {
	// Target returns the target the emitter renders for.
	Target() Target
	// Render renders the artifacts of the entity described by c.
	Render(c *Context) ([]*Artifact, error)
}

// Registry maps targets to emitters.
type Registry struct {
	emitters map[Target]Emitter
}

// NewRegistry returns a registry holding the given emitters.
func NewRegistry(emitters ...Emitter) *Registry {
	r := &Registry{emitters: make(map[Target]Emitter)}
	for _, e := range emitters {
		r.Register(e)
	}
	return r
}

// Register adds e, replacing any emitter registered for the same target.
func (r *Registry) Register(e Emitter) {
	r.emitters[e.Target()] = e
}

// Lookup returns the emitter of the target.
func (r *Registry) Lookup(t Target) (Emitter, error) {
	if r != nil {
		if e, ok := r.emitters[t]; ok {
			return e, nil
		}
	}
	return nil, &TargetError{Target: t}
}

// Targets returns the registered targets sorted by name.
func (r *Registry) Targets() []Target {
	ts := make([]Target, 0, len(r.emitters))
	for t := range r.emitters {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}
