// Package load reads entity schema documents (JSON, YAML or XML) into an
// ordered, undecorated representation consumed by the generator.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Schema represents one schema document.
type Schema struct {
	// Path of the file the schema was read from. Empty for in-memory schemas.
	Path string `json:"-"`
	// Namespace is the dot separated namespace of all entities (e.g. "App.Db").
	Namespace string `json:"namespace,omitempty"`
	// Entities in document order.
	Entities []*Entity `json:"entities,omitempty"`
}

// Entity is one described class.
type Entity struct {
	// Key is the raw entity key, used as the class name.
	Key string `json:"key"`
	// Table is the optional database table name.
	Table string `json:"table,omitempty"`
	// Columns in document order. Keys are not validated and may repeat.
	Columns []ColumnEntry `json:"columns,omitempty"`
}

// ColumnEntry pairs a raw column key with its description.
type ColumnEntry struct {
	Key    string  `json:"key"`
	Column *Column `json:"column"`
}

// Column is a raw column description. Shorthand entries ("name": "string")
// only carry a Type and have Short set.
type Column struct {
	Type  string `json:"type,omitempty"`
	ID    bool   `json:"id,omitempty"`
	Auto  bool   `json:"auto,omitempty"`
	Null  bool   `json:"null,omitempty"`
	Short bool   `json:"-"`
}

// Entity returns the entity with the given key, or nil.
func (s *Schema) Entity(key string) *Entity {
	for _, e := range s.Entities {
		if e.Key == key {
			return e
		}
	}
	return nil
}

// put appends e, replacing an earlier entity with the same key in place.
func (s *Schema) put(e *Entity) {
	for i, prev := range s.Entities {
		if prev.Key == e.Key {
			s.Entities[i] = e
			return
		}
	}
	s.Entities = append(s.Entities, e)
}

// Format identifies a schema encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	XML  Format = "xml"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".xml":
		return XML, nil
	default:
		return "", fmt.Errorf("load: unknown schema format %q for %s", ext, path)
	}
}

// Parse decodes a schema document of the given format.
func Parse(data []byte, format Format) (*Schema, error) {
	switch format {
	case JSON:
		return parseJSON(data)
	case YAML:
		return parseYAML(data)
	case XML:
		return parseXML(data)
	default:
		return nil, fmt.Errorf("load: unsupported format %q", format)
	}
}

// File reads and decodes the schema file at path.
func File(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read schema: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}
