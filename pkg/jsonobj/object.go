// Package jsonobj implements a JSON object that keeps its keys in insertion
// order, so merged configuration files keep the layout users gave them.
package jsonobj

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject is returned when a document or value is not a JSON object
var ErrNotObject = errors.New("not a JSON object")

// Object is an insertion-ordered JSON object. Values are kept as raw JSON.
type Object struct {
	keys   []string
	values map[string]json.RawMessage
}

// New returns an empty object
func New() *Object {
	return &Object{values: make(map[string]json.RawMessage)}
}

// Parse decodes data, which must hold exactly one JSON object. Blank input
// yields an empty object. Duplicate keys keep their first position and
// their last value.
func Parse(data []byte) (*Object, error) {
	obj := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return obj, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		obj.Set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}
	return obj, nil
}

// Keys returns the keys in order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys
func (o *Object) Len() int {
	return len(o.keys)
}

// Get returns the raw value stored under key
func (o *Object) Get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key. An existing key keeps its position.
func (o *Object) Set(key string, value json.RawMessage) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// SetObject stores child under key
func (o *Object) SetObject(key string, child *Object) error {
	data, err := child.MarshalJSON()
	if err != nil {
		return err
	}
	o.Set(key, data)
	return nil
}

// Object returns the child object stored under key. A missing key yields a
// new empty object; a value that is not an object yields ErrNotObject.
func (o *Object) Object(key string) (*Object, error) {
	raw, ok := o.values[key]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return New(), nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%q: %w", key, ErrNotObject)
	}
	return Parse(trimmed)
}

// Delete removes key
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Merge copies every key of other into o, later values winning
func (o *Object) Merge(other *Object) {
	for _, k := range other.keys {
		o.Set(k, other.values[k])
	}
}

// MarshalJSON renders the object compactly in key order
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(o.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Pretty renders the object indented by two spaces with a trailing newline
func (o *Object) Pretty() (string, error) {
	compact, err := o.MarshalJSON()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return "", err
	}
	out.WriteByte('\n')
	return out.String(), nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
