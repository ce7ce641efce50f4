// Package util provides reflection helpers for struct-tag driven column lists.
package util

import (
	"errors"
	"reflect"
	"strings"
)

// Field describes one struct field mapped to a database column.
type Field struct {
	Name   string // Go field name
	Column string // column name from the db tag, or the field name
	String bool   // field holds text (string or *string)
}

// parseDBTag extracts the column name from a db tag.
//
// Supported formats:
//   - "column"       -> column
//   - "column,pk"    -> column (options are ignored)
//   - "-"            -> skip field
func parseDBTag(tag string) string {
	column, _, _ := strings.Cut(tag, ",")
	return strings.TrimSpace(column)
}

// StructFields returns the column mapping of a struct type in declaration order.
//
// Rules:
//   - Unexported fields are skipped.
//   - db:"-" fields are skipped.
//   - db:"column_name" or db:"column_name,pk" maps to column_name.
//   - Fields without db tag use field name.
//   - Anonymous embedded structs without a tag are flattened.
//
// Returns error if model is not a struct, *struct or nil.
func StructFields(model interface{}) ([]Field, error) {
	if model == nil {
		return nil, errors.New("StructFields: nil model")
	}

	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.New("StructFields: expected struct, got " + t.Kind().String())
	}

	return appendFields(nil, t), nil
}

func appendFields(fields []Field, t reflect.Type) []Field {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, tagged := field.Tag.Lookup("db")

		if field.Anonymous && !tagged {
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				fields = appendFields(fields, ft)
				continue
			}
		}

		if !field.IsExported() {
			continue
		}

		column := field.Name
		if tagged {
			column = parseDBTag(tag)
			if column == "-" {
				continue
			}
		}

		fields = append(fields, Field{
			Name:   field.Name,
			Column: column,
			String: isText(field.Type),
		})
	}
	return fields
}

func isText(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.String
}
