package helper

import (
	"fmt"
	"html"
	"reflect"
	"strings"
	"time"
)

// Standard returns the helpers every worker-created view starts with:
//   - upper - Convert value to uppercase
//   - lower - Convert value to lowercase
//   - trim - Trim surrounding whitespace
//   - join - Join list elements with a separator
//   - default - Return the fallback when the value is empty
//   - escape - HTML-escape a value
//   - date - Format a time.Time (or the current time) with a Go layout
func Standard() map[string]Func {
	return map[string]Func{
		"upper": func(args ...any) (any, error) {
			s, err := stringArg("upper", args, 0)
			if err != nil {
				return nil, err
			}
			return strings.ToUpper(s), nil
		},
		"lower": func(args ...any) (any, error) {
			s, err := stringArg("lower", args, 0)
			if err != nil {
				return nil, err
			}
			return strings.ToLower(s), nil
		},
		"trim": func(args ...any) (any, error) {
			s, err := stringArg("trim", args, 0)
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s), nil
		},
		"join": func(args ...any) (any, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("join: expected 2 arguments, got %d", len(args))
			}
			return joinValues(args[0], fmt.Sprint(args[1])), nil
		},
		"default": func(args ...any) (any, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("default: expected 2 arguments, got %d", len(args))
			}
			if isEmpty(args[0]) {
				return args[1], nil
			}
			return args[0], nil
		},
		"escape": func(args ...any) (any, error) {
			s, err := stringArg("escape", args, 0)
			if err != nil {
				return nil, err
			}
			return html.EscapeString(s), nil
		},
		"date": func(args ...any) (any, error) {
			layout, err := stringArg("date", args, 0)
			if err != nil {
				return nil, err
			}
			t := time.Now()
			if len(args) > 1 {
				v, ok := args[1].(time.Time)
				if !ok {
					return nil, fmt.Errorf("date: expected time value, got %T", args[1])
				}
				t = v
			}
			return t.Format(layout), nil
		},
	}
}

func stringArg(name string, args []any, i int) (string, error) {
	if len(args) <= i {
		return "", fmt.Errorf("%s: missing argument %d", name, i+1)
	}
	if args[i] == nil {
		return "", nil
	}
	return fmt.Sprint(args[i]), nil
}

func joinValues(list any, sep string) string {
	v := reflect.ValueOf(list)
	if !v.IsValid() {
		return ""
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Sprint(list)
	}

	strs := make([]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		strs[i] = fmt.Sprint(v.Index(i).Interface())
	}
	return strings.Join(strs, sep)
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}
