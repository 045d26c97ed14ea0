package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metadata is an order-preserving string-keyed mapping for semi-structured
// documents. Unlike a plain map[string]any, marshaling reproduces the exact
// key order of the source document, which keeps serialization well-defined at
// the SDK boundary. Nested objects decode as Metadata, arrays as []any, and
// numbers as json.Number so large integers survive a round trip.
type Metadata []MetadataField

// MetadataField is a single key/value entry of a Metadata document.
type MetadataField struct {
	Key   string
	Value any
}

// Get returns the value for key and whether it was present. On duplicate keys
// the first occurrence wins.
func (m Metadata) Get(key string) (any, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// GetString returns the value for key if it is a string.
func (m Metadata) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set replaces the value of an existing key in place, or appends a new field.
func (m *Metadata) Set(key string, value any) {
	for i, f := range *m {
		if f.Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, MetadataField{Key: key, Value: value})
}

// MarshalJSON writes the document as a JSON object in field order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata key %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving the key order of the input.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metadata: expected JSON object, got %v", tok)
	}

	doc, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*m = doc
	return nil
}

// decodeObject reads key/value pairs until the closing '}' token.
func decodeObject(dec *json.Decoder) (Metadata, error) {
	var doc Metadata
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return doc, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("metadata: expected object key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", key, err)
		}
		doc = append(doc, MetadataField{Key: key, Value: val})
	}
}

// decodeValue reads a single JSON value, recursing into objects and arrays.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}
	switch d {
	case '{':
		return decodeObject(dec)
	case '[':
		// Non-nil so an empty array re-marshals as [] rather than null.
		arr := []any{}
		for {
			if !dec.More() {
				// consume the closing ']'
				if _, err := dec.Token(); err != nil {
					return nil, err
				}
				return arr, nil
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
	default:
		return nil, fmt.Errorf("metadata: unexpected delimiter %v", d)
	}
}
