package schema

import (
	"reflect"
	"strings"
	"unicode"
)

// Convention selects how Go field names map to JSON keys when a field carries
// no explicit name.
type Convention int

const (
	// CamelCase lowers the leading word: SummonerName -> summonerName, ID -> id.
	CamelCase Convention = iota
	// PascalCase keeps the Go name as is: EventTime -> EventTime.
	PascalCase
)

func (c Convention) String() string {
	switch c {
	case CamelCase:
		return "camelCase"
	case PascalCase:
		return "PascalCase"
	default:
		return "unknown"
	}
}

// FieldName renders a Go field name under the convention.
func (c Convention) FieldName(goName string) string {
	if c == PascalCase {
		return goName
	}
	return lowerCamel(goName)
}

// Conventioner lets a record type pin its own naming convention regardless of
// the section it is nested in.
type Conventioner interface {
	SchemaConvention() Convention
}

var conventionerType = reflect.TypeFor[Conventioner]()

func typeConvention(t reflect.Type, fallback Convention) Convention {
	if reflect.PointerTo(t).Implements(conventionerType) {
		return reflect.New(t).Interface().(Conventioner).SchemaConvention()
	}
	return fallback
}

func lowerCamel(name string) string {
	r := []rune(name)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	if n == 0 {
		return name
	}
	// Keep the last capital of a leading initialism when it starts the next word
	// (URLPath -> urlPath).
	if n > 1 && n < len(r) && unicode.IsLower(r[n]) {
		n--
	}
	for i := 0; i < n; i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// field is one decodable struct member, possibly promoted from an embedded struct.
type field struct {
	index    []int
	key      string
	aliases  []string
	optional bool
}

// structFields lists the keys of t under conv. Tag syntax:
//
//	schema:"Name,alias=other|another,optional"
//	schema:"-"
func structFields(t reflect.Type, conv Convention) []field {
	var out []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("schema")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			for _, f := range structFields(sf.Type, conv) {
				f.index = append([]int{i}, f.index...)
				out = append(out, f)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}

		f := field{
			index:    []int{i},
			key:      name,
			optional: sf.Type.Kind() == reflect.Pointer,
		}
		if f.key == "" {
			f.key = conv.FieldName(sf.Name)
		}
		for _, opt := range strings.Split(opts, ",") {
			switch {
			case strings.HasPrefix(opt, "alias="):
				f.aliases = append(f.aliases, strings.Split(strings.TrimPrefix(opt, "alias="), "|")...)
			case opt == "optional":
				f.optional = true
			}
		}
		out = append(out, f)
	}
	return out
}
