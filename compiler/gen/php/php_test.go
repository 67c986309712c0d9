package php

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ormgen/compiler/gen"
	"github.com/syssam/ormgen/compiler/load"
)

func userContext(t *testing.T, ns []string) *gen.Context {
	t.Helper()
	c, err := gen.Normalize(ns, &load.Entity{
		Key:   "User",
		Table: "users",
		Columns: []load.ColumnEntry{
			{Key: "id", Column: &load.Column{Type: "int32", ID: true, Auto: true}},
			{Key: "user_email", Column: &load.Column{Type: "string", Null: true}},
			{Key: "payload", Column: &load.Column{Type: "json", Short: true}},
		},
	}, "out", gen.TargetOptions{})
	require.NoError(t, err)
	return c
}

func render(t *testing.T, c *gen.Context) (class, hooks *gen.Artifact) {
	t.Helper()
	arts, err := New().Render(c)
	require.NoError(t, err)
	require.Len(t, arts, 2)
	return arts[0], arts[1]
}

func TestRender(t *testing.T) {
	class, hooks := render(t, userContext(t, []string{"App", "Db"}))

	assert.Equal(t, filepath.Join("out", "App", "Db", "User.php"), class.Path)
	assert.Equal(t, gen.Overwrite, class.Mode)
	assert.Equal(t, filepath.Join("out", "App", "Db", "UserHooks.php"), hooks.Path)
	assert.Equal(t, gen.CreateOnly, hooks.Mode)

	src := string(class.Content)
	for _, want := range []string{
		"<?php\n// " + gen.Header,
		`namespace App\Db;`,
		"class User\n{\n    use UserHooks;",
		"const TABLE = 'users';",
		"const PRIMARY_KEY = ['id'];",
		"'id' => ['type' => 'int32', 'id' => true, 'auto' => true, 'null' => false],",
		"protected $user_email;",
		"@var string|null",
		"@var mixed\n",
		"public function getUserEmail()",
		"public function setUserEmail($value)",
		"public function getId()",
		"$value = $this->beforeGet('id', $value);",
		"$veto = $value === false;",
		"$this->afterSetComplete('user_email', $set, $this->user_email, $old, $requested);",
		"'payload' => [$this, 'getPayload'],",
		"public function setColumns(array $columns)",
		"public function copyColumnsTo(array &$target, $filter = null)",
	} {
		assert.Contains(t, src, want)
	}
	assert.NotContains(t, src, "function setId(", "auto columns have no setter")
	assert.NotContains(t, src, "'id' => [$this, 'setId']")

	ext := string(hooks.Content)
	assert.Contains(t, ext, "// The stubs are inert")
	assert.Contains(t, ext, "trait UserHooks")
	assert.Contains(t, ext, `namespace App\Db;`)
	assert.Contains(t, ext, "$this->setColumns($columns);")
	for _, hook := range []string{"beforeGet($column, $value)", "beforeSet($column, $value, $oldValue)", "afterSet($column, $value, $oldValue)", "afterSetComplete($column, $wasSet, $value, $oldValue, $requestedValue)"} {
		assert.Contains(t, ext, "// protected function "+hook)
	}
}

func TestRenderColumnOrder(t *testing.T) {
	class, _ := render(t, userContext(t, nil))
	src := string(class.Content)
	id := strings.Index(src, "protected $id;")
	payload := strings.Index(src, "protected $payload;")
	email := strings.Index(src, "protected $user_email;")
	assert.True(t, id < payload && payload < email)
}

func TestRenderWithoutNamespace(t *testing.T) {
	class, hooks := render(t, userContext(t, nil))
	assert.Equal(t, filepath.Join("out", "User.php"), class.Path)
	assert.NotContains(t, string(class.Content), "namespace")
	assert.NotContains(t, string(hooks.Content), "namespace")
}

func TestRenderIdempotent(t *testing.T) {
	a, _ := render(t, userContext(t, []string{"App"}))
	b, _ := render(t, userContext(t, []string{"App"}))
	assert.Equal(t, a.Content, b.Content)
}

func TestRenderUnsupportedType(t *testing.T) {
	c, err := gen.Normalize(nil, &load.Entity{
		Key:     "Event",
		Columns: []load.ColumnEntry{{Key: "at", Column: &load.Column{Type: "datetime", Short: true}}},
	}, "out", gen.TargetOptions{})
	require.NoError(t, err)

	_, err = New().Render(c)
	assert.ErrorIs(t, err, gen.ErrUnsupportedType)
}

func TestRenderMemberCollisions(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{"bulk getter", []string{"columns"}},
		{"getters", []string{"getters"}},
		{"setters", []string{"setters"}},
		{"table name", []string{"table_name"}},
		{"case-insensitive method names", []string{"ID", "id"}},
		{"folded bulk name", []string{"COLUMNS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &load.Entity{Key: "User"}
			for _, k := range tt.keys {
				e.Columns = append(e.Columns, load.ColumnEntry{Key: k, Column: &load.Column{Type: "string", Short: true}})
			}
			c, err := gen.Normalize(nil, e, "out", gen.TargetOptions{})
			require.NoError(t, err)
			_, err = New().Render(c)
			assert.ErrorIs(t, err, gen.ErrInvalidIdentifier)
			var ierr *gen.IdentifierError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, "User", ierr.Entity)
		})
	}
}

func TestRenderMethodsDeclaredOnce(t *testing.T) {
	class, _ := render(t, userContext(t, nil))
	src := string(class.Content)
	seen := map[string]bool{}
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "public ") || !strings.Contains(line, "function ") {
			continue
		}
		name := strings.ToLower(line[strings.Index(line, "function ")+len("function "):strings.Index(line, "(")])
		assert.False(t, seen[name], "%s declared twice", name)
		seen[name] = true
	}
	assert.True(t, seen["getcolumns"])
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'users'`, quote("users"))
	assert.Equal(t, `'it\'s'`, quote("it's"))
	assert.Equal(t, `'a\\b'`, quote(`a\b`))
}
