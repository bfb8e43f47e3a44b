// Package jsonmap extracts typed fields from decoded JSON objects.
//
// Every model in the SDK is built from a fixed table of required and optional
// fields. A required lookup that finds the key absent, null, or of the wrong
// type voids the whole record; an optional lookup degrades to the zero value
// and never fails the record.
package jsonmap

import (
	"encoding/json"
	"fmt"
	"time"
)

// Map is one decoded JSON object.
type Map = map[string]any

// FieldError reports a required field that was absent or of the wrong type.
type FieldError struct {
	Key  string
	Want string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: missing or not a %s", e.Key, e.Want)
}

// Decoder reads typed fields out of a single JSON object. Required lookups
// record the first failure and keep returning zero values afterwards, so a
// model constructor can list its fields linearly and check Err once.
type Decoder struct {
	m   Map
	err error
}

// New returns a Decoder over the supplied object.
func New(m Map) *Decoder {
	return &Decoder{m: m}
}

// Err returns the first required-field failure, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Has reports whether the key is present with a non-null value.
func (d *Decoder) Has(key string) bool {
	v, ok := d.m[key]
	return ok && v != nil
}

func (d *Decoder) fail(key, want string) {
	if d.err == nil {
		d.err = &FieldError{Key: key, Want: want}
	}
}

// String returns the required string field under key.
func (d *Decoder) String(key string) string {
	if s, ok := asString(d.m[key]); ok {
		return s
	}
	d.fail(key, "string")
	return ""
}

// OptString returns the string under key, or "" when absent or mismatched.
func (d *Decoder) OptString(key string) string {
	s, _ := asString(d.m[key])
	return s
}

// Bool returns the required boolean field under key.
func (d *Decoder) Bool(key string) bool {
	if b, ok := asBool(d.m[key]); ok {
		return b
	}
	d.fail(key, "bool")
	return false
}

// OptBool returns the boolean under key, or false when absent or mismatched.
func (d *Decoder) OptBool(key string) bool {
	b, _ := asBool(d.m[key])
	return b
}

// Int returns the required integer field under key. JSON numbers with a
// fractional part do not qualify.
func (d *Decoder) Int(key string) int {
	if n, ok := asInt64(d.m[key]); ok {
		return int(n)
	}
	d.fail(key, "integer")
	return 0
}

// OptInt returns the integer under key, or 0 when absent or mismatched.
func (d *Decoder) OptInt(key string) int {
	n, _ := asInt64(d.m[key])
	return int(n)
}

// Int64 returns the required 64-bit integer field under key.
func (d *Decoder) Int64(key string) int64 {
	if n, ok := asInt64(d.m[key]); ok {
		return n
	}
	d.fail(key, "integer")
	return 0
}

// OptInt64 returns the 64-bit integer under key, or 0 when absent or mismatched.
func (d *Decoder) OptInt64(key string) int64 {
	n, _ := asInt64(d.m[key])
	return n
}

// Float returns the required numeric field under key.
func (d *Decoder) Float(key string) float64 {
	if f, ok := asFloat(d.m[key]); ok {
		return f
	}
	d.fail(key, "number")
	return 0
}

// OptFloat returns the number under key, or 0 when absent or mismatched.
func (d *Decoder) OptFloat(key string) float64 {
	f, _ := asFloat(d.m[key])
	return f
}

// Time returns the required RFC 3339 timestamp field under key.
func (d *Decoder) Time(key string) time.Time {
	if t, ok := asTime(d.m[key]); ok {
		return t
	}
	d.fail(key, "RFC 3339 timestamp")
	return time.Time{}
}

// OptTime returns the timestamp under key, or the zero time when absent or
// mismatched.
func (d *Decoder) OptTime(key string) time.Time {
	t, _ := asTime(d.m[key])
	return t
}

// Object returns the required nested object field under key.
func (d *Decoder) Object(key string) Map {
	if m, ok := asMap(d.m[key]); ok {
		return m
	}
	d.fail(key, "object")
	return nil
}

// OptObject returns the nested object under key, or nil when absent or
// mismatched.
func (d *Decoder) OptObject(key string) Map {
	m, _ := asMap(d.m[key])
	return m
}

// Objects returns the required array-of-objects field under key.
func (d *Decoder) Objects(key string) []Map {
	if ms, ok := asMaps(d.m[key]); ok {
		return ms
	}
	d.fail(key, "array of objects")
	return nil
}

// OptObjects returns the array of objects under key, or nil when absent or
// mismatched.
func (d *Decoder) OptObjects(key string) []Map {
	ms, _ := asMaps(d.m[key])
	return ms
}

// LatLng returns the required two-element [latitude, longitude] field under key.
func (d *Decoder) LatLng(key string) [2]float64 {
	if c, ok := asLatLng(d.m[key]); ok {
		return c
	}
	d.fail(key, "[lat, lng] pair")
	return [2]float64{}
}

// OptLatLng returns the coordinate pair under key, or zeroes when absent or
// mismatched.
func (d *Decoder) OptLatLng(key string) [2]float64 {
	c, _ := asLatLng(d.m[key])
	return c
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		i := int64(n)
		if float64(i) == n {
			return i, true
		}
		return 0, false
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func asMap(v any) (Map, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asMaps(v any) ([]Map, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Map, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		out = append(out, m)
	}
	return out, true
}

func asLatLng(v any) ([2]float64, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return [2]float64{}, false
	}
	lat, ok := asFloat(arr[0])
	if !ok {
		return [2]float64{}, false
	}
	lng, ok := asFloat(arr[1])
	if !ok {
		return [2]float64{}, false
	}
	return [2]float64{lat, lng}, true
}
