package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Query binds URL query parameters into fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindTagged(v, "query", func(name string) []string { return q[name] })
	}
}

// Path binds router path parameters into fields tagged `path:"name"`:
//
//	r.Get("/translations/{lang}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, bundleRequest](binder.Path(chi.URLParam)),
//	))
func Path(param func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if param == nil {
			return fmt.Errorf("%w: nil path extractor", ErrInvalidParam)
		}
		return bindTagged(v, "path", func(name string) []string {
			if val := param(r, name); val != "" {
				return []string{val}
			}
			return nil
		})
	}
}

// bindTagged sets string, bool, integer and []string fields of the struct
// pointed to by v. Fields without the tag, or tagged "-", are left alone.
func bindTagged(v any, tag string, values func(name string) []string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrInvalidParam)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		field := rt.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}
		vals := values(name)
		if len(vals) == 0 {
			continue
		}
		if err := setField(rv.Field(i), vals); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidParam, name, err)
		}
	}
	return nil
}

func setField(f reflect.Value, vals []string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(vals[0])
	case reflect.Bool:
		b, err := strconv.ParseBool(vals[0])
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(vals[0], 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(n)
	case reflect.Slice:
		if f.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", f.Type())
		}
		f.Set(reflect.ValueOf(append([]string(nil), vals...)).Convert(f.Type()))
	default:
		return fmt.Errorf("unsupported type %s", f.Type())
	}
	return nil
}
