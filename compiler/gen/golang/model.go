package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/ormgen/compiler/gen"
)

// receiver is the receiver name of generated methods.
const receiver = "_e"

var (
	beforeGetHook = jen.Interface(
		jen.Id("BeforeGet").Params(jen.Id("column").String(), jen.Id("value").Any()).Any(),
	)
	beforeSetHook = jen.Interface(
		jen.Id("BeforeSet").Params(jen.Id("column").String(), jen.List(jen.Id("value"), jen.Id("old")).Any()).Params(jen.Any(), jen.Bool()),
	)
	afterSetHook = jen.Interface(
		jen.Id("AfterSet").Params(jen.Id("column").String(), jen.List(jen.Id("value"), jen.Id("old")).Any()),
	)
	afterSetCompleteHook = jen.Interface(
		jen.Id("AfterSetComplete").Params(
			jen.Id("column").String(),
			jen.Id("wasSet").Bool(),
			jen.List(jen.Id("value"), jen.Id("old"), jen.Id("requested")).Any(),
		),
	)
)

// genModel generates the entity file ({name}.go).
func genModel(pkg string, cls *gen.Class) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(gen.Header)

	f.Commentf("%s maps the %q table.", cls.Name, cls.Table)
	f.Type().Id(cls.Name).StructFunc(func(g *jen.Group) {
		for _, p := range cls.Properties {
			g.Id(structField(p)).Add(goType(p)).Tag(map[string]string{"db": p.Column, "json": p.Column})
		}
	})

	f.Comment("TableName returns the name of the database table.")
	f.Func().Params(jen.Op("*").Id(cls.Name)).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(cls.Table)),
	)

	f.Comment("PrimaryKey returns the id columns.")
	f.Func().Params(jen.Op("*").Id(cls.Name)).Id("PrimaryKey").Params().Index().String().BlockFunc(func(g *jen.Group) {
		ids := cls.IDs()
		if len(ids) == 0 {
			g.Return(jen.Nil())
			return
		}
		g.Return(jen.Index().String().ValuesFunc(func(vals *jen.Group) {
			for _, p := range ids {
				vals.Lit(p.Column)
			}
		}))
	})

	for _, p := range cls.Properties {
		genGetter(f, cls, p)
		if !p.Auto {
			genSetter(f, cls, p)
		}
	}
	genBulk(f, cls)
	return f
}

func recv(cls *gen.Class) *jen.Statement {
	return jen.Id(receiver).Op("*").Id(cls.Name)
}

// accepts is the condition under which the asserted value nv of p may be
// stored: a value of the column type, or nil for pointer columns.
func accepts(p *gen.Property) *jen.Statement {
	if p.Type.Nullable {
		return jen.Id("ok").Op("||").Id("v").Op("==").Nil()
	}
	return jen.Id("ok")
}

// mismatch is the negation of accepts.
func mismatch(p *gen.Property) *jen.Statement {
	if p.Type.Nullable {
		return jen.Op("!").Id("ok").Op("&&").Id("v").Op("!=").Nil()
	}
	return jen.Op("!").Id("ok")
}

// genGetter generates Get{Suffix}, which runs the BeforeGet hook.
func genGetter(f *jen.File, cls *gen.Class, p *gen.Property) {
	field := structField(p)
	f.Commentf("Get%s returns the value of the %q column.", p.Suffix, p.Column)
	if !dynamic(p) {
		f.Comment("It panics if BeforeGet returns a value that is not of the column type.")
	}
	f.Func().Params(recv(cls)).Id("Get"+p.Suffix).Params().Add(goType(p)).BlockFunc(func(g *jen.Group) {
		g.Var().Id("v").Any().Op("=").Id(receiver).Dot(field)
		g.If(
			jen.List(jen.Id("h"), jen.Id("ok")).Op(":=").Any().Call(jen.Id(receiver)).Assert(beforeGetHook),
			jen.Id("ok"),
		).Block(
			jen.Id("v").Op("=").Id("h").Dot("BeforeGet").Call(jen.Lit(p.Column), jen.Id("v")),
		)
		if dynamic(p) {
			g.Return(jen.Id("v"))
			return
		}
		g.List(jen.Id("r"), jen.Id("ok")).Op(":=").Id("v").Assert(goType(p))
		g.If(mismatch(p)).Block(
			jen.Panic(jen.Qual("fmt", "Sprintf").Call(
				jen.Lit(fmt.Sprintf("%s.BeforeGet returned %%T for column %q, want %s", cls.Name, p.Column, p.Type.Name)),
				jen.Id("v"),
			)),
		)
		g.Return(jen.Id("r"))
	})
}

// genSetter generates Set{Suffix}. BeforeSet may replace the value or
// reject it by returning false; AfterSet runs only when the stored value
// changed and AfterSetComplete runs on every call.
func genSetter(f *jen.File, cls *gen.Class, p *gen.Property) {
	field := structField(p)
	f.Commentf("Set%s sets the value of the %q column and reports whether it was stored.", p.Suffix, p.Column)
	f.Func().Params(recv(cls)).Id("Set"+p.Suffix).Params(jen.Id("value").Add(goType(p))).Bool().BlockFunc(func(g *jen.Group) {
		g.Id("old").Op(":=").Id(receiver).Dot(field)
		g.Var().Id("v").Any().Op("=").Id("value")
		g.Id("wasSet").Op(":=").True()
		g.If(
			jen.List(jen.Id("h"), jen.Id("ok")).Op(":=").Any().Call(jen.Id(receiver)).Assert(beforeSetHook),
			jen.Id("ok"),
		).Block(
			jen.List(jen.Id("v"), jen.Id("wasSet")).Op("=").Id("h").Dot("BeforeSet").Call(jen.Lit(p.Column), jen.Id("v"), jen.Id("old")),
		)
		if dynamic(p) {
			g.If(jen.Id("wasSet")).Block(
				jen.Id(receiver).Dot(field).Op("=").Id("v"),
			)
		} else {
			g.If(jen.Id("wasSet")).Block(
				jen.List(jen.Id("nv"), jen.Id("ok")).Op(":=").Id("v").Assert(goType(p)),
				jen.If(
					jen.Id("wasSet").Op("=").Add(accepts(p)),
					jen.Id("wasSet"),
				).Block(
					jen.Id(receiver).Dot(field).Op("=").Id("nv"),
				),
			)
		}
		g.If(
			jen.Id("wasSet").Op("&&").Op("!").Qual("reflect", "DeepEqual").Call(jen.Id("old"), jen.Id(receiver).Dot(field)),
		).Block(
			jen.If(
				jen.List(jen.Id("h"), jen.Id("ok")).Op(":=").Any().Call(jen.Id(receiver)).Assert(afterSetHook),
				jen.Id("ok"),
			).Block(
				jen.Id("h").Dot("AfterSet").Call(jen.Lit(p.Column), jen.Id(receiver).Dot(field), jen.Id("old")),
			),
		)
		g.If(
			jen.List(jen.Id("h"), jen.Id("ok")).Op(":=").Any().Call(jen.Id(receiver)).Assert(afterSetCompleteHook),
			jen.Id("ok"),
		).Block(
			jen.Id("h").Dot("AfterSetComplete").Call(jen.Lit(p.Column), jen.Id("wasSet"), jen.Id(receiver).Dot(field), jen.Id("old"), jen.Id("value")),
		)
		g.Return(jen.Id("wasSet"))
	})
}

// genBulk generates the map based accessors.
func genBulk(f *jen.File, cls *gen.Class) {
	columns := jen.Map(jen.String()).Any()

	f.Comment("Columns returns the values of all columns, read through their getters.")
	f.Func().Params(recv(cls)).Id("Columns").Params().Add(columns.Clone()).Block(
		jen.Return(columns.Clone().Values(jen.DictFunc(func(d jen.Dict) {
			for _, p := range cls.Properties {
				d[jen.Lit(p.Column)] = jen.Id(receiver).Dot("Get" + p.Suffix).Call()
			}
		}))),
	)

	getter := jen.Func().Params().Any()
	f.Comment("Getters returns the getter of every column.")
	f.Func().Params(recv(cls)).Id("Getters").Params().Map(jen.String()).Add(getter.Clone()).Block(
		jen.Return(jen.Map(jen.String()).Add(getter.Clone()).Values(jen.DictFunc(func(d jen.Dict) {
			for _, p := range cls.Properties {
				d[jen.Lit(p.Column)] = jen.Func().Params().Any().Block(
					jen.Return(jen.Id(receiver).Dot("Get" + p.Suffix).Call()),
				)
			}
		}))),
	)

	setter := jen.Func().Params(jen.Any()).Bool()
	f.Comment("Setters returns the setter of every column that accepts values.")
	f.Comment("A setter rejects values that do not have the column type.")
	f.Func().Params(recv(cls)).Id("Setters").Params().Map(jen.String()).Add(setter.Clone()).Block(
		jen.Return(jen.Map(jen.String()).Add(setter.Clone()).Values(jen.DictFunc(func(d jen.Dict) {
			for _, p := range cls.Setters() {
				if dynamic(p) {
					d[jen.Lit(p.Column)] = jen.Id(receiver).Dot("Set" + p.Suffix)
					continue
				}
				d[jen.Lit(p.Column)] = jen.Func().Params(jen.Id("v").Any()).Bool().Block(
					jen.List(jen.Id("nv"), jen.Id("ok")).Op(":=").Id("v").Assert(goType(p)),
					jen.If(mismatch(p)).Block(
						jen.Return(jen.False()),
					),
					jen.Return(jen.Id(receiver).Dot("Set"+p.Suffix).Call(jen.Id("nv"))),
				)
			}
		}))),
	)

	f.Comment("Assign sets the given column values through their setters, in key order.")
	f.Comment("Keys are trimmed. Unknown keys and auto columns are ignored.")
	f.Func().Params(recv(cls)).Id("Assign").Params(jen.Id("columns").Add(columns.Clone())).Block(
		jen.Id("setters").Op(":=").Id(receiver).Dot("Setters").Call(),
		jen.For(jen.List(jen.Id("_"), jen.Id("k")).Op(":=").Range().Qual("slices", "Sorted").Call(
			jen.Qual("maps", "Keys").Call(jen.Id("columns")),
		)).Block(
			jen.If(
				jen.List(jen.Id("set"), jen.Id("ok")).Op(":=").Id("setters").Index(jen.Qual("strings", "TrimSpace").Call(jen.Id("k"))),
				jen.Id("ok"),
			).Block(
				jen.Id("set").Call(jen.Id("columns").Index(jen.Id("k"))),
			),
		),
	)

	f.Comment("CopyTo copies the column values accepted by filter into dst and returns it.")
	f.Comment("A nil filter accepts all columns and a nil dst is allocated.")
	f.Func().Params(recv(cls)).Id("CopyTo").Params(
		jen.Id("dst").Add(columns.Clone()),
		jen.Id("filter").Func().Params(jen.Id("column").String(), jen.Id("value").Any()).Bool(),
	).Add(columns.Clone()).Block(
		jen.If(jen.Id("dst").Op("==").Nil()).Block(
			jen.Id("dst").Op("=").Make(columns.Clone()),
		),
		jen.For(jen.List(jen.Id("k"), jen.Id("v")).Op(":=").Range().Id(receiver).Dot("Columns").Call()).Block(
			jen.If(jen.Id("filter").Op("==").Nil().Op("||").Id("filter").Call(jen.Id("k"), jen.Id("v"))).Block(
				jen.Id("dst").Index(jen.Id("k")).Op("=").Id("v"),
			),
		),
		jen.Return(jen.Id("dst")),
	)

	f.Comment("CopyMatching copies the values of the columns whose name matches re into dst.")
	f.Func().Params(recv(cls)).Id("CopyMatching").Params(
		jen.Id("dst").Add(columns.Clone()),
		jen.Id("re").Op("*").Qual("regexp", "Regexp"),
	).Add(columns.Clone()).Block(
		jen.Return(jen.Id(receiver).Dot("CopyTo").Call(
			jen.Id("dst"),
			jen.Func().Params(jen.Id("column").String(), jen.Id("_").Any()).Bool().Block(
				jen.Return(jen.Id("re").Dot("MatchString").Call(jen.Id("column"))),
			),
		)),
	)
}

// genHooks generates the hooks file ({name}_hooks.go). It is written
// once and then owned by the user.
func genHooks(pkg string, cls *gen.Class) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Created once by ormgen. Changes to this file are kept.")

	f.Commentf("New%s returns a %s with the given column values assigned.", cls.Name, cls.Name)
	f.Func().Id("New"+cls.Name).Params(jen.Id("columns").Map(jen.String()).Any()).Op("*").Id(cls.Name).Block(
		jen.Id(receiver).Op(":=").Op("&").Id(cls.Name).Values(),
		jen.Id(receiver).Dot("Assign").Call(jen.Id("columns")),
		jen.Return(jen.Id(receiver)),
	)

	r := "(" + receiver + " *" + cls.Name + ")"
	for _, line := range []string{
		"Uncomment the hooks you need. The accessors call them when present.",
		"The stubs are inert: a declared hook runs on every accessor call.",
		"",
		"func " + r + " BeforeGet(column string, value any) any {",
		"\treturn value",
		"}",
		"",
		"BeforeSet returns the value to store, and false to reject the assignment.",
		"func " + r + " BeforeSet(column string, value, old any) (any, bool) {",
		"\treturn value, true",
		"}",
		"",
		"AfterSet runs after a setter stored a value that differs from the old one.",
		"func " + r + " AfterSet(column string, value, old any) {",
		"}",
		"",
		"AfterSetComplete runs after every setter call.",
		"func " + r + " AfterSetComplete(column string, wasSet bool, value, old, requested any) {",
		"}",
	} {
		f.Comment(line)
	}
	return f
}
