package gen

import (
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(Funcs()).Parse(
		`{{ define "ns" }}{{ join "\\" . }}{{ end }}{{ define "hdr" }}// {{ header }}{{ end }}` +
			`{{ define "last" }}{{ range $i, $s := . }}{{ lower $s }}{{ if not (last $i (len $)) }},{{ end }}{{ end }}{{ end }}`,
	))

	out, err := Execute(tmpl, "ns", []string{"App", "Db"})
	require.NoError(t, err)
	assert.Equal(t, `App\Db`, string(out))

	out, err = Execute(tmpl, "hdr", nil)
	require.NoError(t, err)
	assert.Equal(t, "// "+Header, string(out))

	out, err = Execute(tmpl, "last", []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", string(out))

	_, err = Execute(tmpl, "missing", nil)
	assert.ErrorContains(t, err, `execute template "missing"`)
}
