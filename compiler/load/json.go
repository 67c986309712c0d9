package load

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// parseJSON decodes a JSON schema with a token stream so that entity and
// column order, and repeated column keys, survive decoding.
func parseJSON(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	s := &Schema{}
	err := walkObject(dec, func(key string) error {
		switch key {
		case "namespace":
			return dec.Decode(&s.Namespace)
		case "entities":
			return walkObject(dec, func(name string) error {
				e := &Entity{Key: name}
				if err := decodeEntity(dec, e); err != nil {
					return fmt.Errorf("entity %q: %w", name, err)
				}
				s.put(e)
				return nil
			})
		default:
			var skip json.RawMessage
			return dec.Decode(&skip)
		}
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func decodeEntity(dec *json.Decoder, e *Entity) error {
	return walkObject(dec, func(key string) error {
		switch key {
		case "table":
			var table *string
			if err := dec.Decode(&table); err != nil {
				return err
			}
			if table != nil {
				e.Table = *table
			}
			return nil
		case "columns":
			return walkObject(dec, func(name string) error {
				var raw json.RawMessage
				if err := dec.Decode(&raw); err != nil {
					return err
				}
				c, err := decodeColumn(raw)
				if err != nil {
					return fmt.Errorf("column %q: %w", name, err)
				}
				e.Columns = append(e.Columns, ColumnEntry{Key: name, Column: c})
				return nil
			})
		default:
			var skip json.RawMessage
			return dec.Decode(&skip)
		}
	})
}

// decodeColumn accepts either a bare type name or a column object.
func decodeColumn(raw json.RawMessage) (*Column, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty column description")
	}
	switch raw[0] {
	case '"':
		var typ string
		if err := json.Unmarshal(raw, &typ); err != nil {
			return nil, err
		}
		return &Column{Type: typ, Short: true}, nil
	case '{':
		c := &Column{}
		if err := json.Unmarshal(raw, c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("expected a type name or an object, got %s", raw)
	}
}

// walkObject consumes one JSON object from dec and calls fn for every key,
// leaving the decoder positioned at the key's value. A null value is
// treated as an empty object.
func walkObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected an object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	// Closing brace.
	_, err = dec.Token()
	return err
}
