package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Header is the first line of every overwritten file, in the comment
// syntax of the target.
const Header = "Code generated by ormgen. DO NOT EDIT."

// Funcs returns the template functions shared by the template based emitters.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"join":   func(sep string, s []string) string { return strings.Join(s, sep) },
		"lower":  strings.ToLower,
		"header": func() string { return Header },
		"last":   func(i, n int) bool { return i == n-1 },
	}
}

// Execute runs the named template and returns its output.
func Execute(t *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("ormgen: execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}
