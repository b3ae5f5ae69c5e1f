package binder

import (
	"encoding"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
)

// Path creates a binder filling `path:"name"` struct fields from extractor,
// typically chi.URLParam. Supported field types are string, signed integers
// and any type implementing encoding.TextUnmarshaler (uuid.UUID among them).
//
//	type DismissRequest struct {
//		ID uuid.UUID `path:"id"`
//	}
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrInvalidPath)
		}
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			sf := rt.Field(i)

			name, ok := sf.Tag.Lookup("path")
			if !ok || name == "-" || !field.CanSet() {
				continue
			}

			value := extractor(r, name)
			if value == "" {
				continue
			}
			if err := setField(field, value); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidPath, sf.Name, err)
			}
		}
		return nil
	}
}

func setField(field reflect.Value, value string) error {
	if u, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(value))
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
