// Package schema maps JSON documents onto Go records strictly: every key in
// the document must belong to a field, every required field must be present,
// and naming follows a per-section Convention instead of per-field tags.
//
// It exists because encoding/json silently drops unknown keys, matches names
// case-insensitively and never reports missing fields, which hides upstream
// schema drift.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/tidwall/gjson"
)

var unmarshalerType = reflect.TypeFor[json.Unmarshaler]()

type options struct {
	conv      Convention
	discKey   string
	discValue string
}

type Option func(*options)

// WithConvention sets the naming convention of the top-level record and of
// nested records that do not declare their own.
func WithConvention(c Convention) Option {
	return func(o *options) { o.conv = c }
}

// WithDiscriminant admits key on the top-level object when decoding and writes
// key:value first when encoding. The caller is responsible for having selected
// the target type from the discriminant's value.
func WithDiscriminant(key, value string) Option {
	return func(o *options) {
		o.discKey = key
		o.discValue = value
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Unmarshal decodes a JSON object into the struct pointed to by v.
func Unmarshal(data []byte, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: Unmarshal needs a non-nil struct pointer, got %T", v)
	}
	o := buildOptions(opts)
	return decodeObject(data, rv.Elem(), o.conv, "", o.discKey)
}

func decodeObject(raw []byte, v reflect.Value, conv Convention, path, reserved string) error {
	if isNull(raw) {
		return mismatch(path, "expected object, got null")
	}
	obj, err := members(raw, path)
	if err != nil {
		return err
	}

	conv = typeConvention(v.Type(), conv)
	fields := structFields(v.Type(), conv)
	byKey := make(map[string]int, len(fields))
	for i, f := range fields {
		byKey[f.key] = i
		for _, a := range f.aliases {
			byKey[a] = i
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make([]bool, len(fields))
	for _, k := range keys {
		if reserved != "" && k == reserved {
			continue
		}
		i, ok := byKey[k]
		if !ok {
			return mismatch(joinPath(path, k), "unknown field")
		}
		f := fields[i]
		if seen[i] {
			return mismatch(joinPath(path, k), fmt.Sprintf("duplicate of field %q", f.key))
		}
		seen[i] = true

		fv := v.FieldByIndex(f.index)
		if f.optional && isNull(obj[k]) {
			fv.SetZero()
			continue
		}
		if err := decodeValue(obj[k], fv, conv, joinPath(path, k)); err != nil {
			return err
		}
	}

	for i, f := range fields {
		if !seen[i] && !f.optional {
			return mismatch(joinPath(path, f.key), "missing field")
		}
	}
	return nil
}

func decodeValue(raw []byte, v reflect.Value, conv Convention, path string) error {
	if isNull(raw) {
		if v.Kind() == reflect.Pointer {
			v.SetZero()
			return nil
		}
		return mismatch(path, "null value")
	}

	if v.Kind() == reflect.Pointer {
		ptr := reflect.New(v.Type().Elem())
		if err := decodeValue(raw, ptr.Elem(), conv, path); err != nil {
			return err
		}
		v.Set(ptr)
		return nil
	}

	if u, ok := v.Addr().Interface().(json.Unmarshaler); ok {
		return leafError(path, u.UnmarshalJSON(raw))
	}

	switch {
	case v.Kind() == reflect.Struct:
		return decodeObject(raw, v, conv, path, "")
	case v.Kind() == reflect.Slice && isStrictStruct(v.Type().Elem()):
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return &MismatchError{Path: path, Reason: "expected array", Err: err}
		}
		s := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeValue(item, s.Index(i), conv, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		v.Set(s)
		return nil
	}

	return leafError(path, json.Unmarshal(raw, v.Addr().Interface()))
}

// leafError attaches path to errors coming out of a leaf decode. Raw JSON
// type errors are schema mismatches; domain sentinels keep their identity.
func leafError(path string, err error) error {
	if err == nil {
		return nil
	}
	var me *MismatchError
	if errors.As(err, &me) {
		if me.Path == "" {
			me.Path = path
		}
		return err
	}
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	if errors.As(err, &typeErr) || errors.As(err, &syntaxErr) {
		return &MismatchError{Path: path, Reason: "invalid value", Err: err}
	}
	return fmt.Errorf("%s: %w", path, err)
}

func isStrictStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && !reflect.PointerTo(t).Implements(unmarshalerType)
}

// members splits a JSON object into its keys. A key given twice is a
// mismatch; a plain map would keep only the last value.
func members(raw []byte, path string) (map[string]json.RawMessage, error) {
	if !gjson.ValidBytes(raw) {
		return nil, mismatch(path, "expected object, got invalid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, mismatch(path, "expected object")
	}

	obj := make(map[string]json.RawMessage)
	var dup error
	doc.ForEach(func(key, value gjson.Result) bool {
		if _, ok := obj[key.Str]; ok {
			dup = mismatch(joinPath(path, key.Str), "duplicate field")
			return false
		}
		obj[key.Str] = json.RawMessage(value.Raw)
		return true
	})
	if dup != nil {
		return nil, dup
	}
	return obj, nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
