package dotnet

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ormgen/compiler/gen"
	"github.com/syssam/ormgen/compiler/load"
)

func normalize(t *testing.T, ns []string, e *load.Entity, opts gen.TargetOptions) *gen.Context {
	t.Helper()
	c, err := gen.Normalize(ns, e, "out", opts)
	require.NoError(t, err)
	return c
}

func user() *load.Entity {
	return &load.Entity{
		Key:   "User",
		Table: "users",
		Columns: []load.ColumnEntry{
			{Key: "id", Column: &load.Column{Type: "int32", ID: true, Auto: true}},
			{Key: "name", Column: &load.Column{Type: "string", Short: true}},
		},
	}
}

func byPath(arts []*gen.Artifact) map[string]*gen.Artifact {
	m := make(map[string]*gen.Artifact)
	for _, a := range arts {
		m[filepath.Base(a.Path)] = a
	}
	return m
}

func TestRenderNHibernate(t *testing.T) {
	arts, err := NewNHibernate().Render(normalize(t, []string{"App", "Db"}, user(), gen.TargetOptions{}))
	require.NoError(t, err)
	require.Len(t, arts, 3)
	files := byPath(arts)

	class := files["User.cs"]
	require.NotNil(t, class)
	assert.Equal(t, filepath.Join("out", "App", "Db", "User.cs"), class.Path)
	assert.Equal(t, gen.Overwrite, class.Mode)
	src := string(class.Content)
	for _, want := range []string{
		"//     " + gen.Header,
		"using NHibernate.Mapping.Attributes;",
		"namespace App.Db\n{\n",
		`    [Class(Table = "users")]`,
		"    public partial class User\n    {",
		`        public const string TableName = "users";`,
		"        private int _id;",
		"        private string _name;",
		`        [Id(0, Name = "Id", Column = "id", Access = "field.camelcase-underscore")]`,
		`        [Generator(1, Class = "native")]`,
		`        [Property(Column = "name", Access = "field.camelcase-underscore", NotNull = true)]`,
		"        public virtual int Id\n        {\n            get { return GetId(); }\n        }",
		"        public virtual string Name\n        {\n            get { return GetName(); }\n            set { SetName(value); }\n        }",
		`            OnBeforeGet("id", ref value);`,
		"        public virtual bool SetName(string value)",
		"bool veto = !ReferenceEquals(newValue, requested) && newValue is bool accept && !accept;",
		`OnAfterSetComplete("name", wasSet, _name, oldValue, requested);`,
		`            ["name"] = value => SetName((string)value),`,
		"        public virtual IDictionary<string, object> CopyColumnsTo(IDictionary<string, object> target, Regex pattern)",
	} {
		assert.Contains(t, src, want)
	}
	assert.NotContains(t, src, "SetId(", "auto columns have no setter")
	assert.True(t, strings.HasSuffix(src, "    }\n}\n"))

	hooks := files["User.Hooks.cs"]
	require.NotNil(t, hooks)
	assert.Equal(t, gen.CreateOnly, hooks.Mode)
	ext := string(hooks.Content)
	assert.Contains(t, ext, "so the stubs start inert")
	assert.Contains(t, ext, "        public User(IDictionary<string, object> columns)")
	assert.Contains(t, ext, "            SetColumns(columns);")
	for _, hook := range []string{
		"OnBeforeGet(string column, ref object value)",
		"OnBeforeSet(string column, ref object value, object oldValue)",
		"OnAfterSet(string column, object value, object oldValue)",
		"OnAfterSetComplete(string column, bool wasSet, object value, object oldValue, object requestedValue)",
	} {
		assert.Contains(t, ext, "// partial void "+hook)
	}

	mapping := files["User.hbm.xml"]
	require.NotNil(t, mapping)
	assert.Equal(t, filepath.Join("out", "App", "Db", "User.hbm.xml"), mapping.Path)
	assert.Equal(t, gen.Overwrite, mapping.Mode)
}

func TestMapping(t *testing.T) {
	c := normalize(t, []string{"App", "Db"}, user(), gen.TargetOptions{})
	cls, err := gen.NewClass(c, gen.NHibernate)
	require.NoError(t, err)

	out, err := Mapping(cls)
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>
<!-- `+gen.Header+` -->
<hibernate-mapping xmlns="urn:nhibernate-mapping-2.2" namespace="App.Db">
  <class name="User" table="users">
    <id name="Id" column="id" type="Int32" access="field.camelcase-underscore">
      <generator class="native"></generator>
    </id>
    <property name="Name" column="name" type="String" access="field.camelcase-underscore" not-null="true"></property>
  </class>
</hibernate-mapping>
`, string(out))
}

func TestMappingIDsFirst(t *testing.T) {
	e := &load.Entity{
		Key: "Membership",
		Columns: []load.ColumnEntry{
			{Key: "alpha", Column: &load.Column{Type: "string", Null: true}},
			{Key: "user_id", Column: &load.Column{Type: "int64", ID: true}},
			{Key: "Group", Column: &load.Column{ID: true}},
			{Key: "created", Column: &load.Column{Type: "datetime", Auto: true}},
		},
	}
	cls, err := gen.NewClass(normalize(t, nil, e, gen.TargetOptions{}), gen.NHibernate)
	require.NoError(t, err)

	out, err := Mapping(cls)
	require.NoError(t, err)
	src := string(out)
	assert.NotContains(t, src, "namespace=")
	assert.Contains(t, src, `<key-property name="Group" column="Group" type="Int32" access="field.camelcase-underscore"></key-property>`)
	assert.Contains(t, src, `<property name="Created" column="created" type="DateTime" access="field.camelcase-underscore" not-null="true" insert="false" update="false" generated="insert"></property>`)
	assert.Contains(t, src, `<property name="Alpha" column="alpha" type="String" access="field.camelcase-underscore"></property>`)

	order := []string{`column="Group"`, `column="user_id"`, `column="alpha"`, `column="created"`}
	last := -1
	for _, col := range order {
		i := strings.Index(src, col)
		require.Greater(t, i, last, col)
		last = i
	}
}

func TestRenderCompositeIDAttributes(t *testing.T) {
	e := &load.Entity{
		Key: "Membership",
		Columns: []load.ColumnEntry{
			{Key: "user_id", Column: &load.Column{Type: "int64", ID: true}},
			{Key: "group_id", Column: &load.Column{Type: "int64", ID: true}},
		},
	}
	arts, err := NewNHibernate().Render(normalize(t, nil, e, gen.TargetOptions{}))
	require.NoError(t, err)
	src := string(byPath(arts)["Membership.cs"].Content)
	assert.Equal(t, 1, strings.Count(src, "[CompositeId(0)]"))
	assert.Contains(t, src, `[KeyProperty(1, Name = "GroupId", Column = "group_id", Access = "field.camelcase-underscore")]`)
	assert.Contains(t, src, `[KeyProperty(2, Name = "UserId", Column = "user_id", Access = "field.camelcase-underscore")]`)
	assert.Contains(t, src, "public virtual bool SetUserId(long value)")
}

func TestRenderCSharp(t *testing.T) {
	e := user()
	e.Columns = append(e.Columns,
		load.ColumnEntry{Key: "score", Column: &load.Column{Type: "decimal", Null: true}},
		load.ColumnEntry{Key: "data", Column: &load.Column{Type: "json"}},
	)
	arts, err := NewCSharp().Render(normalize(t, nil, e, gen.TargetOptions{}))
	require.NoError(t, err)
	require.Len(t, arts, 2, "no mapping file for plain C#")
	src := string(byPath(arts)["User.cs"].Content)

	assert.NotContains(t, src, "namespace")
	assert.NotContains(t, src, "NHibernate")
	assert.NotContains(t, src, "[Property(")
	assert.Contains(t, src, "public partial class User\n{")
	assert.Contains(t, src, "    private decimal? _score;")
	assert.Contains(t, src, "    private dynamic _data;")
	assert.Contains(t, src, "    public virtual bool SetScore(decimal? value)")
	assert.NotContains(t, src, "Newtonsoft")
}

func TestRenderSerializedJSON(t *testing.T) {
	e := &load.Entity{
		Key:     "Doc",
		Columns: []load.ColumnEntry{{Key: "body", Column: &load.Column{Type: "json", Short: true}}},
	}
	arts, err := NewNHibernate().Render(normalize(t, nil, e, gen.TargetOptions{}))
	require.NoError(t, err)
	src := string(byPath(arts)["Doc.cs"].Content)
	assert.Contains(t, src, "using Newtonsoft.Json;")
	assert.Contains(t, src, "    private string _body;")
	assert.Contains(t, src, "    public virtual dynamic GetBodyObject()")
	assert.Contains(t, src, "    public virtual bool SetBodyObject(object value)")

	mapping := string(byPath(arts)["Doc.hbm.xml"].Content)
	assert.Contains(t, mapping, `type="StringClob"`)
}

func TestRenderMappingDir(t *testing.T) {
	c := normalize(t, []string{"App"}, user(), gen.TargetOptions{MappingDir: "maps"})
	arts, err := NewNHibernate().Render(c)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("maps", "App", "User.hbm.xml"), byPath(arts)["User.hbm.xml"].Path)
	assert.Equal(t, filepath.Join("out", "App", "User.cs"), byPath(arts)["User.cs"].Path)
}

func TestPropNameCollisions(t *testing.T) {
	e := &load.Entity{
		Key: "Name",
		Columns: []load.ColumnEntry{
			{Key: "name", Column: &load.Column{Type: "string"}},
			{Key: "table_name", Column: &load.Column{Type: "string"}},
			{Key: "_1st", Column: &load.Column{Type: "string"}},
		},
	}
	cls, err := gen.NewClass(normalize(t, nil, e, gen.TargetOptions{}), gen.CSharp)
	require.NoError(t, err)
	d := &classData{Class: cls}

	props := map[string]string{}
	fields := map[string]string{}
	for _, p := range cls.Properties {
		props[p.Column] = d.Prop(p)
		fields[p.Column] = d.Field(p)
	}
	assert.Equal(t, map[string]string{"name": "NameValue", "table_name": "TableNameValue", "_1st": "Column1st"}, props)
	assert.Equal(t, map[string]string{"name": "_nameValue", "table_name": "_tableNameValue", "_1st": "_column1st"}, fields)
}

func TestRenderMemberCollisions(t *testing.T) {
	tests := []struct {
		name    string
		columns []load.ColumnEntry
	}{
		{"bulk getter", []load.ColumnEntry{{Key: "columns", Column: &load.Column{Type: "string"}}}},
		{"getters", []load.ColumnEntry{{Key: "getters", Column: &load.Column{Type: "string"}}}},
		{"property meets accessor", []load.ColumnEntry{
			{Key: "name", Column: &load.Column{Type: "string"}},
			{Key: "get_name", Column: &load.Column{Type: "string"}},
		}},
		{"object helper", []load.ColumnEntry{
			{Key: "data", Column: &load.Column{Type: "json"}},
			{Key: "data_object", Column: &load.Column{Type: "string"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := normalize(t, nil, &load.Entity{Key: "User", Columns: tt.columns}, gen.TargetOptions{})
			_, err := NewNHibernate().Render(c)
			assert.ErrorIs(t, err, gen.ErrInvalidIdentifier)
			var ierr *gen.IdentifierError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, "User", ierr.Entity)
		})
	}
}

func TestRenderCaseDistinctColumns(t *testing.T) {
	c := normalize(t, nil, &load.Entity{Key: "User", Columns: []load.ColumnEntry{
		{Key: "ID", Column: &load.Column{Type: "int32", ID: true}},
		{Key: "id", Column: &load.Column{Type: "int32"}},
	}}, gen.TargetOptions{})
	arts, err := NewCSharp().Render(c)
	require.NoError(t, err)
	src := string(arts[0].Content)
	assert.Equal(t, 1, strings.Count(src, "public virtual int GetID()"))
	assert.Equal(t, 1, strings.Count(src, "public virtual int GetId()"))
	assert.Contains(t, src, "private int _iD;")
	assert.Contains(t, src, "private int _id;")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"users"`, quote("users"))
	assert.Equal(t, `"a\"b\\c\n"`, quote("a\"b\\c\n"))
}

func TestTargets(t *testing.T) {
	assert.Equal(t, gen.CSharp, NewCSharp().Target())
	assert.Equal(t, gen.NHibernate, NewNHibernate().Target())
}
