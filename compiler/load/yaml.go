package load

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// parseYAML decodes a YAML schema through the node tree to keep mapping order.
func parseYAML(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	s := &Schema{}
	root := resolve(&doc)
	if root == nil || isNull(root) {
		return s, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping at the document root", root.Line)
	}
	err := walkMapping(root, func(k, v *yaml.Node) error {
		switch k.Value {
		case "namespace":
			return v.Decode(&s.Namespace)
		case "entities":
			return walkMapping(v, func(k, v *yaml.Node) error {
				e := &Entity{Key: k.Value}
				if err := decodeYAMLEntity(v, e); err != nil {
					return fmt.Errorf("entity %q: %w", k.Value, err)
				}
				s.put(e)
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func decodeYAMLEntity(n *yaml.Node, e *Entity) error {
	return walkMapping(n, func(k, v *yaml.Node) error {
		switch k.Value {
		case "table":
			if isNull(v) {
				return nil
			}
			return v.Decode(&e.Table)
		case "columns":
			return walkMapping(v, func(k, v *yaml.Node) error {
				c := &Column{}
				switch {
				case v.Kind == yaml.ScalarNode && !isNull(v):
					c.Type, c.Short = v.Value, true
				case v.Kind == yaml.MappingNode:
					if err := decodeYAMLColumn(v, c); err != nil {
						return fmt.Errorf("column %q: %w", k.Value, err)
					}
				default:
					return fmt.Errorf("column %q (line %d): expected a type name or a mapping", k.Value, v.Line)
				}
				e.Columns = append(e.Columns, ColumnEntry{Key: k.Value, Column: c})
				return nil
			})
		}
		return nil
	})
}

// decodeYAMLColumn reads a column mapping by key text. A bare "null" key is
// a null scalar in YAML, which struct decoding would not match.
func decodeYAMLColumn(n *yaml.Node, c *Column) error {
	return walkMapping(n, func(k, v *yaml.Node) error {
		if isNull(v) {
			return nil
		}
		switch k.Value {
		case "type":
			return v.Decode(&c.Type)
		case "id":
			return v.Decode(&c.ID)
		case "auto":
			return v.Decode(&c.Auto)
		case "null":
			return v.Decode(&c.Null)
		}
		return nil
	})
}

// walkMapping calls fn for every key/value pair of a mapping node in order.
// A null node is treated as an empty mapping.
func walkMapping(n *yaml.Node, fn func(k, v *yaml.Node) error) error {
	n = resolve(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i], resolve(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
