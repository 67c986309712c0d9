// Package php renders entity classes for the trait-based PHP ORM.
//
// Every entity produces two files in the namespace directory:
//
//	{Name}.php       the class, regenerated on every run
//	{Name}Hooks.php  a trait for hand-written hooks, created once
package php

import (
	"embed"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/syssam/ormgen/compiler/gen"
)

//go:embed template/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("php").
		Funcs(gen.Funcs()).
		Funcs(template.FuncMap{
			"phpstr":  quote,
			"phpbool": func(b bool) string { return map[bool]string{true: "true", false: "false"}[b] },
			"doctype": docType,
		}).
		ParseFS(templateFS, "template/*.tmpl"),
)

// Emitter renders PHP classes.
type Emitter struct{}

// New returns a PHP emitter.
func New() *Emitter { return &Emitter{} }

// Target implements gen.Emitter.
func (*Emitter) Target() gen.Target { return gen.PHP }

// Render implements gen.Emitter.
func (*Emitter) Render(c *gen.Context) ([]*gen.Artifact, error) {
	cls, err := gen.NewClass(c, gen.PHP)
	if err != nil {
		return nil, err
	}
	if err := cls.CheckMembers(members); err != nil {
		return nil, err
	}
	class, err := gen.Execute(templates, "class.php.tmpl", cls)
	if err != nil {
		return nil, err
	}
	hooks, err := gen.Execute(templates, "hooks.php.tmpl", cls)
	if err != nil {
		return nil, err
	}
	dir := c.Dir()
	return []*gen.Artifact{
		{Path: filepath.Join(dir, c.Name+".php"), Content: class, Mode: gen.Overwrite},
		{Path: filepath.Join(dir, c.Name+"Hooks.php"), Content: hooks, Mode: gen.CreateOnly},
	}, nil
}

// members are the methods of a class. PHP method names are
// case-insensitive.
var members = gen.MemberSet{
	Fixed: []string{
		"getTableName", "getColumns", "getGetters", "getSetters", "setColumns", "copyColumnsTo",
		"__construct", "beforeGet", "beforeSet", "afterSet", "afterSetComplete",
	},
	Of: func(p *gen.Property) []string {
		if p.Auto {
			return []string{"get" + p.Suffix}
		}
		return []string{"get" + p.Suffix, "set" + p.Suffix}
	},
	Fold: true,
}

// quote returns s as a single-quoted PHP string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, `'`, `\'`) + "'"
}

// docType returns the phpdoc type of a property.
func docType(p *gen.Property) string {
	if p.Nullable && p.Type.Kind != gen.KindDynamic {
		return p.Type.Name + "|null"
	}
	return p.Type.Name
}
