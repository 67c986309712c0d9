// Package golang renders entity structs for Go.
//
// Every entity produces two files in the namespace directory:
//
//	{name}.go        the struct and its accessors, regenerated on every run
//	{name}_hooks.go  the constructor and hand-written hook methods, created once
//
// Hooks are optional methods on the struct. The generated accessors
// detect them with interface assertions, so an entity without hooks
// pays nothing but the assertion.
package golang

import (
	"bytes"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/ormgen/compiler/gen"
)

const decimalPkg = "github.com/shopspring/decimal"

// DefaultPackage is the package name of entities without a namespace.
const DefaultPackage = "model"

// Emitter renders Go structs.
type Emitter struct{}

// New returns a Go emitter.
func New() *Emitter { return &Emitter{} }

// Target implements gen.Emitter.
func (*Emitter) Target() gen.Target { return gen.Go }

// Render implements gen.Emitter.
func (*Emitter) Render(c *gen.Context) ([]*gen.Artifact, error) {
	cls, err := gen.NewClass(c, gen.Go)
	if err != nil {
		return nil, err
	}
	if err := cls.CheckMembers(members); err != nil {
		return nil, err
	}
	pkg := PackageName(cls.Namespace)
	model, err := render(cls.Name, genModel(pkg, cls))
	if err != nil {
		return nil, err
	}
	hooks, err := render(cls.Name, genHooks(pkg, cls))
	if err != nil {
		return nil, err
	}
	base := FileName(cls.Name)
	dir := c.Dir()
	return []*gen.Artifact{
		{Path: filepath.Join(dir, base+".go"), Content: model, Mode: gen.Overwrite},
		{Path: filepath.Join(dir, base+"_hooks.go"), Content: hooks, Mode: gen.CreateOnly},
	}, nil
}

// members are the methods and fields of a struct. Accessors carry a
// Get or Set prefix, so only the fields can meet a fixed method name.
var members = gen.MemberSet{
	Fixed: []string{
		"TableName", "PrimaryKey", "Columns", "Getters", "Setters", "Assign", "CopyTo", "CopyMatching",
		"BeforeGet", "BeforeSet", "AfterSet", "AfterSetComplete",
	},
	Of: func(p *gen.Property) []string {
		return []string{structField(p), "Get" + p.Suffix, "Set" + p.Suffix}
	},
}

// PackageName returns the package name of a namespace: its last
// segment, lower-cased.
func PackageName(ns []string) string {
	if len(ns) == 0 {
		return DefaultPackage
	}
	name := strings.ToLower(ns[len(ns)-1])
	if token.Lookup(name).IsKeyword() {
		return name + "_"
	}
	return name
}

// FileName returns the base file name of an entity, in snake case.
func FileName(class string) string {
	return inflect.Underscore(class)
}

func render(name string, f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("ormgen: render go source of %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// structField returns the unexported field of a property. Fields that
// would be keywords or would not start with a letter get an underscore.
func structField(p *gen.Property) string {
	r, size := utf8.DecodeRuneInString(p.Suffix)
	name := string(unicode.ToLower(r)) + p.Suffix[size:]
	if token.Lookup(name).IsKeyword() || !unicode.IsLetter(r) {
		return "_" + name
	}
	return name
}

// baseType returns the native type of p without the pointer.
func baseType(p *gen.Property) jen.Code {
	switch p.Type.Tag {
	case "decimal":
		return jen.Qual(decimalPkg, "Decimal")
	case "datetime":
		return jen.Qual("time", "Time")
	case "json":
		return jen.Any()
	default:
		return jen.Id(p.Type.Base)
	}
}

// goType returns the native type of p.
func goType(p *gen.Property) jen.Code {
	if p.Type.Nullable {
		return jen.Op("*").Add(baseType(p))
	}
	return baseType(p)
}

// dynamic reports whether values of p need no type assertion.
func dynamic(p *gen.Property) bool {
	return p.Type.Kind == gen.KindDynamic
}
