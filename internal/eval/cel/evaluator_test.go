package cel

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Variables(t *testing.T) {
	ev, err := NewEvaluator([]string{"year", "name", "tags"}, nil)
	require.NoError(t, err)

	vars := map[string]interface{}{
		"year": 2024,
		"name": "ada",
		"tags": []string{"a", "b"},
	}

	tests := []struct {
		expression string
		want       interface{}
	}{
		{"year", int64(2024)},
		{"year + 1", int64(2025)},
		{"name + '!'", "ada!"},
		{"year > 2000 ? 'new' : 'old'", "new"},
		{"size(tags)", int64(2)},
		{"'b' in tags", true},
		{"null", nil},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := ev.Evaluate(context.Background(), tt.expression, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_Functions(t *testing.T) {
	ev, err := NewEvaluator([]string{"year"}, map[string]Func{
		"copyrightLine": func(args ...any) (any, error) {
			return "(c) 2024", nil
		},
		"concat": func(args ...any) (any, error) {
			out := ""
			for _, a := range args {
				out += fmt.Sprint(a)
			}
			return out, nil
		},
	})
	require.NoError(t, err)

	vars := map[string]interface{}{"year": 2024}

	got, err := ev.Evaluate(context.Background(), "copyrightLine()", vars)
	require.NoError(t, err)
	assert.Equal(t, "(c) 2024", got)

	got, err = ev.Evaluate(context.Background(), "concat(year)", vars)
	require.NoError(t, err)
	assert.Equal(t, "2024", got)

	got, err = ev.Evaluate(context.Background(), "concat('a', 'b')", vars)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)

	got, err = ev.Evaluate(context.Background(), "concat('a', 1, true, year)", vars)
	require.NoError(t, err)
	assert.Equal(t, "a1true2024", got)
}

func TestEvaluator_FunctionReceivesLists(t *testing.T) {
	var received any
	ev, err := NewEvaluator(nil, map[string]Func{
		"capture": func(args ...any) (any, error) {
			received = args[0]
			return len(args), nil
		},
	})
	require.NoError(t, err)

	got, err := ev.Evaluate(context.Background(), "capture([1, 'x'])", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
	assert.Equal(t, []any{int64(1), "x"}, received)
}

func TestEvaluator_FunctionError(t *testing.T) {
	boom := errors.New("boom")
	ev, err := NewEvaluator(nil, map[string]Func{
		"explode": func(args ...any) (any, error) { return nil, boom },
	})
	require.NoError(t, err)

	_, err = ev.Evaluate(context.Background(), "explode()", nil)
	require.Error(t, err)

	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "explode", callErr.Func)
	assert.Same(t, boom, callErr.Err)
	assert.ErrorIs(t, err, boom)
}

func TestEvaluator_CompileErrors(t *testing.T) {
	ev, err := NewEvaluator([]string{"known"}, nil)
	require.NoError(t, err)

	_, err = ev.Evaluate(context.Background(), "unknown + 1", nil)
	assert.Error(t, err)

	_, err = ev.Evaluate(context.Background(), "known +", nil)
	assert.Error(t, err)

	assert.NoError(t, ev.ValidateExpression("known"))
	assert.Error(t, ev.ValidateExpression("missingFn()"))
}

func TestEvaluator_SkipsInvalidNames(t *testing.T) {
	ev, err := NewEvaluator([]string{"ok", "not-valid", "in", "1x"}, map[string]Func{
		"bad-name": func(args ...any) (any, error) { return nil, nil },
	})
	require.NoError(t, err)
	assert.NoError(t, ev.ValidateExpression("ok"))
	assert.Error(t, ev.ValidateExpression("in"))
}

func TestEvaluator_Cache(t *testing.T) {
	ev, err := NewEvaluator([]string{"x"}, nil)
	require.NoError(t, err)

	_, err = ev.Evaluate(context.Background(), "x * 2", map[string]interface{}{"x": 2})
	require.NoError(t, err)
	assert.Len(t, ev.cache, 1)

	ev.ClearCache()
	assert.Empty(t, ev.cache)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("year"))
	assert.True(t, IsIdentifier("_x1"))
	assert.False(t, IsIdentifier("user-name"))
	assert.False(t, IsIdentifier("true"))
	assert.False(t, IsIdentifier(""))
}

func TestEvaluator_BuiltinNameCollisions(t *testing.T) {
	greet := func(args ...any) (any, error) { return "hi", nil }
	named := func(name string) Func {
		return func(args ...any) (any, error) { return name, nil }
	}

	for _, name := range []string{"size", "string", "int", "matches", "duration", "has", "contains", "exists"} {
		t.Run(name, func(t *testing.T) {
			ev, err := NewEvaluator([]string{"items"}, map[string]Func{
				name:    named(name),
				"greet": greet,
			})
			require.NoError(t, err)

			got, err := ev.Evaluate(context.Background(), "greet()", nil)
			require.NoError(t, err)
			assert.Equal(t, "hi", got)

			got, err = ev.Evaluate(context.Background(), fmt.Sprintf("%s(%q, 1)", DispatchFunc, name), nil)
			require.NoError(t, err)
			assert.Equal(t, name, got)
		})
	}

	ev, err := NewEvaluator([]string{"items"}, map[string]Func{"size": named("mine")})
	require.NoError(t, err)
	got, err := ev.Evaluate(context.Background(), "size(items)", map[string]interface{}{"items": []int{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestEvaluator_Dispatch(t *testing.T) {
	boom := errors.New("boom")
	ev, err := NewEvaluator(nil, map[string]Func{
		"join": func(args ...any) (any, error) { return fmt.Sprint(args...), nil },
		"fail": func(args ...any) (any, error) { return nil, boom },
	})
	require.NoError(t, err)

	got, err := ev.Evaluate(context.Background(), `helper("join", "a", "b")`, nil)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)

	_, err = ev.Evaluate(context.Background(), `helper("fail")`, nil)
	assert.ErrorIs(t, err, boom)

	_, err = ev.Evaluate(context.Background(), `helper("absent")`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no function "absent"`)

	own, err := NewEvaluator(nil, map[string]Func{
		DispatchFunc: func(args ...any) (any, error) { return "own", nil },
	})
	require.NoError(t, err)
	got, err = own.Evaluate(context.Background(), `helper()`, nil)
	require.NoError(t, err)
	assert.Equal(t, "own", got)
}
