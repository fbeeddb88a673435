package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MissingKeyError reports a key a provider needed but the document lacked.
type MissingKeyError struct {
	Path string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key %q", e.Path)
}

// Doc reads values out of a decoded JSON document by path. Path elements are
// object keys (string) or array indexes (int). The first failure sticks:
// later reads return zero values and Err reports the original problem, so an
// extractor can read every field and check once.
type Doc struct {
	v      any
	prefix string
	state  *docState
}

type docState struct {
	err error
}

// ParseDoc decodes raw. Numbers are kept as json.Number so integer fields
// survive without float rounding.
func ParseDoc(raw json.RawMessage) (Doc, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Doc{}, fmt.Errorf("failed to decode document: %w", err)
	}
	return Doc{v: v, state: &docState{}}, nil
}

// Err returns the first read failure, if any.
func (d Doc) Err() error {
	if d.state == nil {
		return nil
	}
	return d.state.err
}

// Has reports whether path resolves to a non-null value. It never fails the
// document.
func (d Doc) Has(path ...any) bool {
	v, _, ok := d.walk(path)
	return ok && v != nil
}

// Sub returns the document rooted at path.
func (d Doc) Sub(path ...any) Doc {
	v, p, ok := d.lookup(path)
	if !ok {
		return Doc{prefix: p, state: d.state}
	}
	return Doc{v: v, prefix: p, state: d.state}
}

// List returns the elements of the array at path.
func (d Doc) List(path ...any) []Doc {
	v, p, ok := d.lookup(path)
	if !ok || v == nil {
		return nil
	}
	arr, isArr := v.([]any)
	if !isArr {
		d.fail(fmt.Errorf("key %q: expected array, got %s", p, kind(v)))
		return nil
	}
	docs := make([]Doc, len(arr))
	for i, el := range arr {
		docs[i] = Doc{v: el, prefix: fmt.Sprintf("%s[%d]", p, i), state: d.state}
	}
	return docs
}

// String returns the string at path. A null value reads as "".
func (d Doc) String(path ...any) string {
	v, p, ok := d.lookup(path)
	if !ok || v == nil {
		return ""
	}
	s, isStr := v.(string)
	if !isStr {
		d.fail(fmt.Errorf("key %q: expected string, got %s", p, kind(v)))
		return ""
	}
	return s
}

// Int returns the integer at path. Numeric strings are accepted. A null value
// reads as 0.
func (d Doc) Int(path ...any) int {
	v, p, ok := d.lookup(path)
	if !ok || v == nil {
		return 0
	}

	var text string
	switch n := v.(type) {
	case json.Number:
		text = n.String()
	case string:
		text = strings.TrimSpace(n)
	default:
		d.fail(fmt.Errorf("key %q: expected number, got %s", p, kind(v)))
		return 0
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && f == math.Trunc(f) {
		return int(f)
	}
	d.fail(fmt.Errorf("key %q: %q is not an integer", p, text))
	return 0
}

// Bool returns the boolean at path. A null value reads as false.
func (d Doc) Bool(path ...any) bool {
	v, p, ok := d.lookup(path)
	if !ok || v == nil {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		d.fail(fmt.Errorf("key %q: expected boolean, got %s", p, kind(v)))
		return false
	}
	return b
}

func (d Doc) lookup(path []any) (any, string, bool) {
	if d.Err() != nil {
		return nil, d.prefix, false
	}
	v, p, ok := d.walk(path)
	if !ok {
		d.fail(&MissingKeyError{Path: p})
	}
	return v, p, ok
}

// walk follows path without touching the error state. On failure the
// returned path names the element that was missing.
func (d Doc) walk(path []any) (any, string, bool) {
	cur := d.v
	p := d.prefix
	for _, el := range path {
		p = joinPath(p, el)
		switch key := el.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, p, false
			}
			next, ok := obj[key]
			if !ok {
				return nil, p, false
			}
			cur = next
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, p, false
			}
			cur = arr[key]
		default:
			return nil, p, false
		}
	}
	return cur, p, true
}

func (d Doc) fail(err error) {
	if d.state != nil && d.state.err == nil {
		d.state.err = err
	}
}

func joinPath(prefix string, el any) string {
	if i, ok := el.(int); ok {
		return fmt.Sprintf("%s[%d]", prefix, i)
	}
	if prefix == "" {
		return fmt.Sprint(el)
	}
	return prefix + "." + fmt.Sprint(el)
}

func kind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
