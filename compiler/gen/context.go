package gen

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/syssam/ormgen/compiler/load"
)

// Column is the canonical description of one entity column.
type Column struct {
	// Type is the trimmed, lower-cased semantic type tag. May be empty.
	Type string
	// ID marks a primary key column.
	ID bool
	// Auto marks a database generated column. Auto columns get no setter.
	Auto bool
	// Nullable marks a column that accepts null.
	Nullable bool
}

// TargetOptions holds per-target settings.
type TargetOptions struct {
	// MappingDir overrides the directory of auxiliary mapping files (nhibernate).
	// Empty means the class output directory.
	MappingDir string
}

// Context is the fully resolved input of one emitter call. A Context is
// built per entity and must not be shared between entities.
type Context struct {
	// Name is the validated class name.
	Name string
	// Table is the database table name.
	Table string
	// Namespace segments, outermost first.
	Namespace []string
	// Columns holds the column keys sorted case-insensitively.
	Columns []string
	// Column maps a column key to its metadata.
	Column map[string]*Column
	// Suffix maps a column key to its accessor name fragment.
	Suffix map[string]string
	// OutDir is the configured output directory, without namespace segments.
	OutDir string
	// Options of the selected target.
	Options TargetOptions
}

// Dir returns the output directory of the class: OutDir joined with one
// path segment per namespace component.
func (c *Context) Dir() string {
	return filepath.Join(append([]string{c.OutDir}, c.Namespace...)...)
}

// MappingDir returns the output directory of auxiliary mapping files.
func (c *Context) MappingDir() string {
	if c.Options.MappingDir == "" {
		return c.Dir()
	}
	return filepath.Join(append([]string{c.Options.MappingDir}, c.Namespace...)...)
}

// SplitNamespace splits a dot separated namespace into validated segments.
// Blank segments are dropped.
func SplitNamespace(ns string) ([]string, error) {
	var segs []string
	for _, s := range strings.Split(ns, ".") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		seg, err := ValidateIdentifier(s)
		if err != nil {
			err.(*IdentifierError).Message = "invalid namespace segment"
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// Normalize validates a raw entity and resolves its compilation context.
func Normalize(ns []string, e *load.Entity, outDir string, opts TargetOptions) (*Context, error) {
	name, err := ValidateIdentifier(e.Key)
	if err != nil {
		err.(*IdentifierError).Message = "invalid entity name"
		return nil, err
	}
	c := &Context{
		Name:      name,
		Table:     strings.TrimSpace(e.Table),
		Namespace: slices.Clone(ns),
		Column:    make(map[string]*Column, len(e.Columns)),
		Suffix:    make(map[string]string, len(e.Columns)),
		OutDir:    outDir,
		Options:   opts,
	}
	if c.Table == "" {
		c.Table = name
	}
	accessors := make(map[string]string, len(e.Columns))
	for _, entry := range e.Columns {
		key, err := ValidateIdentifier(entry.Key)
		if err != nil {
			ierr := err.(*IdentifierError)
			ierr.Entity, ierr.Column, ierr.Message = name, entry.Key, "invalid column name"
			return nil, ierr
		}
		if _, ok := c.Column[key]; ok {
			return nil, &ColumnError{Entity: name, Column: key}
		}
		suffix := MethodSuffix(key)
		if suffix == "" {
			return nil, &IdentifierError{Entity: name, Column: key, Name: entry.Key, Message: "column name derives an empty accessor name"}
		}
		if other, ok := accessors[suffix]; ok {
			return nil, &IdentifierError{Entity: name, Column: key, Name: entry.Key, Message: fmt.Sprintf("column derives the accessor name %q of column %q", suffix, other)}
		}
		accessors[suffix] = key
		c.Column[key] = canonicalColumn(entry.Column)
		c.Suffix[key] = suffix
		c.Columns = append(c.Columns, key)
	}
	SortNames(c.Columns)
	return c, nil
}

// canonicalColumn expands shorthand entries and normalizes the type tag.
func canonicalColumn(raw *load.Column) *Column {
	if raw == nil {
		return &Column{}
	}
	if raw.Short {
		return &Column{Type: NormalizeTag(raw.Type)}
	}
	return &Column{
		Type:     NormalizeTag(raw.Type),
		ID:       raw.ID,
		Auto:     raw.Auto,
		Nullable: raw.Null,
	}
}

// SortNames sorts names in case-insensitive lexical order. Names that are
// equal after case folding are ordered byte-wise.
func SortNames(names []string) {
	fold := cases.Fold()
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(fold.String(a), fold.String(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
