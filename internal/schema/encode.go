package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

var marshalerType = reflect.TypeFor[json.Marshaler]()

// Marshal encodes a struct with the same key rules Unmarshal accepts, so a
// decoded record re-encodes to the upstream shape. Aliases are never written.
func Marshal(v any, opts ...Option) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return []byte("null"), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: Marshal needs a struct, got %T", v)
	}
	o := buildOptions(opts)

	var buf bytes.Buffer
	if err := encodeObject(&buf, rv, o.conv, o.discKey, o.discValue); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeObject(buf *bytes.Buffer, v reflect.Value, conv Convention, discKey, discValue string) error {
	conv = typeConvention(v.Type(), conv)

	buf.WriteByte('{')
	first := true
	writeKey := func(k string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		b, _ := json.Marshal(k)
		buf.Write(b)
		buf.WriteByte(':')
	}

	if discKey != "" {
		writeKey(discKey)
		b, _ := json.Marshal(discValue)
		buf.Write(b)
	}
	for _, f := range structFields(v.Type(), conv) {
		writeKey(f.key)
		if err := encodeValue(buf, v.FieldByIndex(f.index), conv); err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeValue(buf *bytes.Buffer, v reflect.Value, conv Convention) error {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return encodeValue(buf, v.Elem(), conv)
	}

	marshaler := v.Type().Implements(marshalerType)
	switch {
	case marshaler:
	case v.Kind() == reflect.Struct:
		return encodeObject(buf, v, conv, "", "")
	case v.Kind() == reflect.Slice && v.IsNil():
		buf.WriteString("[]")
		return nil
	case v.Kind() == reflect.Slice && isStrictStruct(v.Type().Elem()):
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, v.Index(i), conv); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	b, err := json.Marshal(v.Interface())
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
