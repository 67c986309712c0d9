// Package dotnet renders entity classes for the .NET ORM variants.
//
// Both variants produce a partial class and a hooks partial that is
// created once and never overwritten:
//
//	{Name}.cs        the class, regenerated on every run
//	{Name}.Hooks.cs  constructors and hand-written hooks
//
// The NHibernate variant annotates the class with mapping attributes
// and also writes {Name}.hbm.xml into the mapping directory.
package dotnet

import (
	"bytes"
	"embed"
	"encoding/xml"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/syssam/ormgen/compiler/gen"
)

//go:embed template/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("dotnet").
		Funcs(gen.Funcs()).
		Funcs(template.FuncMap{
			"csstr":  quote,
			"xmlesc": escapeXML,
		}).
		ParseFS(templateFS, "template/*.tmpl"),
)

// Emitter renders C# partial classes for one of the .NET targets.
type Emitter struct {
	target gen.Target
}

// NewCSharp returns an emitter of plain C# partial classes.
func NewCSharp() *Emitter { return &Emitter{target: gen.CSharp} }

// NewNHibernate returns an emitter of NHibernate mapped classes.
func NewNHibernate() *Emitter { return &Emitter{target: gen.NHibernate} }

// Target implements gen.Emitter.
func (e *Emitter) Target() gen.Target { return e.target }

// Render implements gen.Emitter.
func (e *Emitter) Render(c *gen.Context) ([]*gen.Artifact, error) {
	cls, err := gen.NewClass(c, e.target)
	if err != nil {
		return nil, err
	}
	data := &classData{Class: cls, NHibernate: e.target == gen.NHibernate}
	if err := cls.CheckMembers(data.members()); err != nil {
		return nil, err
	}
	body, err := gen.Execute(templates, "class", data)
	if err != nil {
		return nil, err
	}
	hooks, err := gen.Execute(templates, "hooks", data)
	if err != nil {
		return nil, err
	}
	dir := c.Dir()
	arts := []*gen.Artifact{
		{
			Path:    filepath.Join(dir, c.Name+".cs"),
			Content: source([]string{"// <auto-generated>", "//     " + gen.Header, "// </auto-generated>"}, data.usings(), cls.Namespace, body),
			Mode:    gen.Overwrite,
		},
		{
			Path:    filepath.Join(dir, c.Name+".Hooks.cs"),
			Content: source([]string{"// Created once by ormgen. Changes to this file are kept."}, []string{"System.Collections.Generic"}, cls.Namespace, hooks),
			Mode:    gen.CreateOnly,
		},
	}
	if data.NHibernate {
		mapping, err := Mapping(cls)
		if err != nil {
			return nil, err
		}
		arts = append(arts, &gen.Artifact{
			Path:    filepath.Join(c.MappingDir(), c.Name+".hbm.xml"),
			Content: mapping,
			Mode:    gen.Overwrite,
		})
	}
	return arts, nil
}

// classData is the template input of a class.
type classData struct {
	*gen.Class
	NHibernate bool
}

// Serialized is exposed to the templates for kind comparisons.
func (*classData) Serialized() gen.Kind { return gen.KindSerialized }

func (d *classData) usings() []string {
	us := []string{"System", "System.Collections.Generic", "System.Text.RegularExpressions"}
	if d.HasKind(gen.KindSerialized) {
		us = append(us, "Newtonsoft.Json")
	}
	if d.NHibernate {
		us = append(us, "NHibernate.Mapping.Attributes")
	}
	return us
}

// reserved holds member names the generated class already declares.
var reserved = map[string]bool{
	"TableName":     true,
	"GetColumns":    true,
	"GetGetters":    true,
	"GetSetters":    true,
	"SetColumns":    true,
	"CopyColumnsTo": true,
	"Equals":        true,
	"GetHashCode":   true,
	"GetType":       true,
	"ToString":      true,
}

// Prop returns the C# property name of p. Names that collide with the
// class name or a generated member get a "Value" suffix.
func (d *classData) Prop(p *gen.Property) string {
	name := p.Member()
	if name == d.Name || reserved[name] {
		name += "Value"
	}
	return name
}

// members returns the member names the class declares.
func (d *classData) members() gen.MemberSet {
	return gen.MemberSet{
		Fixed: []string{
			d.Name, "TableName", "GetColumns", "GetGetters", "GetSetters", "SetColumns", "CopyColumnsTo",
			"OnBeforeGet", "OnBeforeSet", "OnAfterSet", "OnAfterSetComplete",
		},
		Of: func(p *gen.Property) []string {
			names := []string{d.Prop(p), d.Field(p), "Get" + p.Suffix}
			if !p.Auto {
				names = append(names, "Set"+p.Suffix)
			}
			if p.Type.Kind == gen.KindSerialized {
				names = append(names, "Get"+p.Suffix+"Object")
				if !p.Auto {
					names = append(names, "Set"+p.Suffix+"Object")
				}
			}
			return names
		},
	}
}

// Field returns the backing field of p, following the
// field.camelcase-underscore naming strategy.
func (d *classData) Field(p *gen.Property) string {
	name := d.Prop(p)
	r, size := utf8.DecodeRuneInString(name)
	return "_" + string(unicode.ToLower(r)) + name[size:]
}

// Attributes returns the NHibernate mapping attributes of p.
func (d *classData) Attributes(p *gen.Property) []string {
	if !d.NHibernate {
		return nil
	}
	ids := d.IDs()
	switch {
	case p.ID && len(ids) == 1:
		return []string{
			"[Id(0, Name = " + quote(d.Prop(p)) + ", Column = " + quote(p.Column) + ", Access = \"field.camelcase-underscore\")]",
			"[Generator(1, Class = " + quote(generator(p)) + ")]",
		}
	case p.ID && ids[0] == p:
		attrs := []string{"[CompositeId(0)]"}
		for i, id := range ids {
			attrs = append(attrs, "[KeyProperty("+strconv.Itoa(i+1)+", Name = "+quote(d.Prop(id))+", Column = "+quote(id.Column)+", Access = \"field.camelcase-underscore\")]")
		}
		return attrs
	case p.ID:
		return nil
	}
	attr := "[Property(Column = " + quote(p.Column) + ", Access = \"field.camelcase-underscore\""
	if !p.Nullable {
		attr += ", NotNull = true"
	}
	if p.Auto {
		attr += ", Insert = false, Update = false, Generated = PropertyGeneration.Insert"
	}
	return []string{attr + ")]"}
}

func generator(p *gen.Property) string {
	if p.Auto {
		return "native"
	}
	return "assigned"
}

// source assembles a C# compilation unit. The body is indented into a
// namespace block when ns is not empty.
func source(header, usings, ns []string, body []byte) []byte {
	var b bytes.Buffer
	for _, h := range header {
		b.WriteString(h + "\n")
	}
	for _, u := range usings {
		b.WriteString("using " + u + ";\n")
	}
	b.WriteString("\n")
	if len(ns) == 0 {
		b.Write(body)
		return b.Bytes()
	}
	b.WriteString("namespace " + strings.Join(ns, ".") + "\n{\n")
	for _, line := range strings.SplitAfter(string(body), "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString("    ")
		}
		b.WriteString(line)
	}
	b.WriteString("}\n")
	return b.Bytes()
}

// quote returns s as a C# string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

func escapeXML(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
