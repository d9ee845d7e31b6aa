package snode

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

const tagKey = "backloop"

// fieldInfo describes one exported struct field as seen by From.
type fieldInfo struct {
	index    int
	name     string
	embedded bool // anonymous struct or *struct field whose members are flattened
}

var structFieldsCache sync.Map // map[reflect.Type][]fieldInfo

// structFields returns the mapped fields of struct type typ in declaration
// order.
func structFields(typ reflect.Type) ([]fieldInfo, error) {
	if cached, ok := structFieldsCache.Load(typ); ok {
		return cached.([]fieldInfo), nil
	}
	res := make([]fieldInfo, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() && !field.Anonymous {
			continue
		}
		tag, err := parseStructTag(field.Tag.Get(tagKey))
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", typ.Name(), field.Name, err)
		}
		if _, omit := tag["omit"]; omit {
			continue
		}
		name := field.Name
		if renamed := tag["field"]; renamed != "" {
			name = renamed
		}
		info := fieldInfo{index: i, name: name}
		if field.Anonymous {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() != reflect.Struct {
				if !field.IsExported() {
					continue
				}
			} else if tag["field"] == "" {
				info.embedded = true
			}
		}
		res = append(res, info)
	}
	cached, _ := structFieldsCache.LoadOrStore(typ, res)
	return cached.([]fieldInfo), nil
}

// parseStructTag parses a tag of the form `backloop:"field=name,omit"`.
func parseStructTag(tag string) (map[string]string, error) {
	res := map[string]string{}
	if tag == "" {
		return res, nil
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, hasValue := strings.Cut(part, "=")
		switch k {
		case "field":
			if !hasValue || v == "" {
				return nil, fmt.Errorf("tag %q: field requires a name", tag)
			}
		case "omit":
			if hasValue {
				return nil, fmt.Errorf("tag %q: omit takes no value", tag)
			}
		default:
			return nil, fmt.Errorf("tag %q: unknown key %q", tag, k)
		}
		res[k] = v
	}
	return res, nil
}
